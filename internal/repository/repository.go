package repository

import (
	"time"

	"github.com/mvasiljevic/projekti-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email, the platform's login key
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// DeadlineRepository defines the interface for deadline data access
type DeadlineRepository interface {
	// Create creates a new deadline
	Create(deadline *models.Deadline) error

	// FindByID finds a deadline by ID
	FindByID(id uint64) (*models.Deadline, error)

	// List returns all deadlines ordered by date
	List() ([]models.Deadline, error)

	// Update updates a deadline's editable fields; a missing target is
	// reported as gorm.ErrRecordNotFound (zero affected rows)
	Update(deadline *models.Deadline) error

	// Delete removes a deadline; a missing target is reported as
	// gorm.ErrRecordNotFound (zero affected rows)
	Delete(id uint64) error

	// NextSubmissionDeadline returns the earliest deadline whose title
	// contains the submission marker and whose date is not yet past
	NextSubmissionDeadline(now time.Time) (*models.Deadline, error)
}
