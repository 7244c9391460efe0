package repository

import (
	"time"

	"github.com/mvasiljevic/projekti-api/internal/models"
	"gorm.io/gorm"
)

// submissionMarker tags the deadlines that gate project creation. The
// original data has no category column; intent is inferred from the title
// ("Prijava projekata" and variants), matched case-insensitively.
const submissionMarker = "prijav"

// GormDeadlineRepository is a GORM implementation of DeadlineRepository
type GormDeadlineRepository struct {
	db *gorm.DB
}

// NewDeadlineRepository creates a new DeadlineRepository
func NewDeadlineRepository(db *gorm.DB) DeadlineRepository {
	return &GormDeadlineRepository{db: db}
}

// Create creates a new deadline
func (r *GormDeadlineRepository) Create(deadline *models.Deadline) error {
	return r.db.Create(deadline).Error
}

// FindByID finds a deadline by ID
func (r *GormDeadlineRepository) FindByID(id uint64) (*models.Deadline, error) {
	var deadline models.Deadline
	if err := r.db.First(&deadline, id).Error; err != nil {
		return nil, err
	}
	return &deadline, nil
}

// List returns all deadlines ordered by date ascending
func (r *GormDeadlineRepository) List() ([]models.Deadline, error) {
	var deadlines []models.Deadline
	if err := r.db.Order("deadline_date ASC").Find(&deadlines).Error; err != nil {
		return nil, err
	}
	return deadlines, nil
}

// Update rewrites the editable fields of a deadline. Zero affected rows means
// the target does not exist.
func (r *GormDeadlineRepository) Update(deadline *models.Deadline) error {
	res := r.db.Model(&models.Deadline{}).
		Where("id = ?", deadline.ID).
		Updates(map[string]interface{}{
			"title":         deadline.Title,
			"description":   deadline.Description,
			"deadline_date": deadline.DeadlineDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a deadline. Zero affected rows means the target does not exist.
func (r *GormDeadlineRepository) Delete(id uint64) error {
	res := r.db.Delete(&models.Deadline{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NextSubmissionDeadline selects the earliest future deadline whose title
// contains the submission marker. Both the registration-status endpoint and
// the project-creation gate derive from this one query.
func (r *GormDeadlineRepository) NextSubmissionDeadline(now time.Time) (*models.Deadline, error) {
	var deadline models.Deadline
	err := r.db.
		Where("LOWER(title) LIKE ?", "%"+submissionMarker+"%").
		Where("deadline_date >= ?", now).
		Order("deadline_date ASC").
		First(&deadline).Error
	if err != nil {
		return nil, err
	}
	return &deadline, nil
}
