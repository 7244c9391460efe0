package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mvasiljevic/projekti-api/internal/config"
	"github.com/mvasiljevic/projekti-api/internal/database"
	"github.com/mvasiljevic/projekti-api/internal/handlers"
	"github.com/mvasiljevic/projekti-api/internal/repository"
	"github.com/mvasiljevic/projekti-api/internal/services"
	"github.com/mvasiljevic/projekti-api/internal/storage"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database (bounded retry while the DB container starts)
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Object storage: one long-lived client, bucket ensured up front
	ctx := context.Background()
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure bucket %q: %v", cfg.S3Bucket, err)
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	deadlineRepo := repository.NewDeadlineRepository(database.GetDB())
	authService := services.NewAuthService(userRepo)
	deadlineService := services.NewDeadlineService(deadlineRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler()
	projectHandler := handlers.NewProjectHandler(deadlineService, store, cfg.PublicBaseURL)
	voteHandler := handlers.NewVoteHandler()
	commentHandler := handlers.NewCommentHandler()
	fileHandler := handlers.NewFileHandler(store, cfg.PublicBaseURL)
	deadlineHandler := handlers.NewDeadlineHandler(deadlineService)

	r := gin.Default()

	// Static pages
	r.StaticFile("/", "./public/login.html")
	r.StaticFile("/gallery", "./public/gallery.html")
	r.StaticFile("/deadlines", "./public/deadlines.html")
	r.StaticFile("/script.js", "./public/script.js")
	r.StaticFile("/style.css", "./public/style.css")
	r.GET("/project/:id", func(c *gin.Context) {
		c.File("./public/project.html")
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)

		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects/:id", projectHandler.GetProject)
		api.POST("/projects/:id/view", projectHandler.RecordView)
		api.POST("/projects/:id/vote", voteHandler.Vote)
		api.POST("/projects/:id/comments", commentHandler.AddComment)
		api.POST("/projects/:id/upload", fileHandler.Upload)
		api.GET("/projects/:id/files", fileHandler.ListProjectFiles)

		api.GET("/deadlines", deadlineHandler.List)
		api.POST("/deadlines", deadlineHandler.Create)
		api.PUT("/deadlines/:id", deadlineHandler.Update)
		api.DELETE("/deadlines/:id", deadlineHandler.Delete)
		api.GET("/registration-status", deadlineHandler.RegistrationStatus)
	}

	// File downloads
	r.GET("/files", fileHandler.DownloadByKey)
	r.GET("/files/:projectId/:filename", fileHandler.DownloadByPath)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
