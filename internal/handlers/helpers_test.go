package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvasiljevic/projekti-api/internal/database"
	"github.com/mvasiljevic/projekti-api/internal/models"
	"github.com/mvasiljevic/projekti-api/internal/repository"
	"github.com/mvasiljevic/projekti-api/internal/services"
	"github.com/mvasiljevic/projekti-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testBaseURL = "http://localhost:3000"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Vote{},
		&models.Comment{},
		&models.ProjectView{},
		&models.ProjectFile{},
		&models.Deadline{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// newTestRouter wires the full route table against the current test database.
func newTestRouter(store storage.ObjectStore) *gin.Engine {
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	deadlineRepo := repository.NewDeadlineRepository(db)
	authService := services.NewAuthService(userRepo)
	deadlineService := services.NewDeadlineService(deadlineRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler()
	projectHandler := NewProjectHandler(deadlineService, store, testBaseURL)
	voteHandler := NewVoteHandler()
	commentHandler := NewCommentHandler()
	fileHandler := NewFileHandler(store, testBaseURL)
	deadlineHandler := NewDeadlineHandler(deadlineService)

	r := gin.New()
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
	r.GET("/files", fileHandler.DownloadByKey)
	r.GET("/files/:projectId/:filename", fileHandler.DownloadByPath)

	return r
}

func performJSON(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, userID uint64, naziv string, createdAt time.Time) models.Project {
	t.Helper()

	project := models.Project{
		UserID:    userID,
		Naziv:     naziv,
		Opis:      "opis",
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func createSubmissionDeadline(t *testing.T, db *gorm.DB, date time.Time) models.Deadline {
	t.Helper()

	deadline := models.Deadline{
		Title:        "Prijava projekata",
		DeadlineDate: date,
		CreatedBy:    1,
	}
	require.NoError(t, db.Create(&deadline).Error)
	return deadline
}

// memStore is an in-memory ObjectStore double for handler tests.
type memStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]memObject)}
}

func (m *memStore) EnsureBucket(ctx context.Context) error {
	return nil
}

func (m *memStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *memStore) Download(ctx context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}
