package database

import (
	"fmt"
	"log"
	"time"

	"github.com/mvasiljevic/projekti-api/internal/config"
	"github.com/mvasiljevic/projekti-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxConnectRetries = 10
	connectRetryDelay = 3 * time.Second
	maxOpenConns      = 10
)

var DB *gorm.DB

// Connect opens the MySQL connection with a bounded retry loop so the server
// can start while the database container is still coming up.
func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	var err error
	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			sqlDB, dbErr := DB.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					sqlDB.SetMaxOpenConns(maxOpenConns)
					log.Println("Database connection established")
					return nil
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}
		log.Printf("Database connection attempt %d/%d failed: %v", attempt, maxConnectRetries, err)
		if attempt < maxConnectRetries {
			time.Sleep(connectRetryDelay)
		}
	}

	return fmt.Errorf("failed to connect to database after %d attempts: %w", maxConnectRetries, err)
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Vote{},
		&models.Comment{},
		&models.ProjectView{},
		&models.ProjectFile{},
		&models.Deadline{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
