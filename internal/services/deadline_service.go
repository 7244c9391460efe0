package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mvasiljevic/projekti-api/internal/models"
	"github.com/mvasiljevic/projekti-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrDateRequired     = errors.New("deadline date is required")
	ErrCreatorRequired  = errors.New("created_by is required")
	ErrDeadlineNotFound = errors.New("deadline not found")
)

// DeadlineService handles deadline CRUD and the submission gate.
type DeadlineService struct {
	deadlineRepo repository.DeadlineRepository
}

// NewDeadlineService creates a new DeadlineService.
func NewDeadlineService(deadlineRepo repository.DeadlineRepository) *DeadlineService {
	return &DeadlineService{
		deadlineRepo: deadlineRepo,
	}
}

// DeadlineInput holds the writable deadline fields.
type DeadlineInput struct {
	Title        string
	Description  *string
	DeadlineDate time.Time
	CreatedBy    uint64
}

func (s *DeadlineService) Create(input DeadlineInput) (*models.Deadline, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.DeadlineDate.IsZero() {
		return nil, ErrDateRequired
	}
	if input.CreatedBy == 0 {
		return nil, ErrCreatorRequired
	}

	deadline := &models.Deadline{
		Title:        input.Title,
		Description:  input.Description,
		DeadlineDate: input.DeadlineDate,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.deadlineRepo.Create(deadline); err != nil {
		return nil, fmt.Errorf("failed to create deadline: %w", err)
	}

	return deadline, nil
}

func (s *DeadlineService) List() ([]models.Deadline, error) {
	return s.deadlineRepo.List()
}

// Update rewrites title, description and date of an existing deadline.
func (s *DeadlineService) Update(id uint64, input DeadlineInput) (*models.Deadline, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.DeadlineDate.IsZero() {
		return nil, ErrDateRequired
	}

	deadline := &models.Deadline{
		ID:           id,
		Title:        input.Title,
		Description:  input.Description,
		DeadlineDate: input.DeadlineDate,
	}
	if err := s.deadlineRepo.Update(deadline); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeadlineNotFound
		}
		return nil, fmt.Errorf("failed to update deadline: %w", err)
	}

	return s.deadlineRepo.FindByID(id)
}

func (s *DeadlineService) Delete(id uint64) error {
	if err := s.deadlineRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeadlineNotFound
		}
		return fmt.Errorf("failed to delete deadline: %w", err)
	}
	return nil
}

// RegistrationStatus is the derived submission-window state.
type RegistrationStatus struct {
	IsOpen   bool
	Deadline *models.Deadline
	DaysLeft int
}

// RegistrationStatus reports whether project submissions are open at the
// given instant. The status endpoint and the project-creation gate both call
// this, so the two can never disagree on which deadline applies.
func (s *DeadlineService) RegistrationStatus(now time.Time) (*RegistrationStatus, error) {
	deadline, err := s.deadlineRepo.NextSubmissionDeadline(now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RegistrationStatus{IsOpen: false}, nil
		}
		return nil, fmt.Errorf("failed to look up submission deadline: %w", err)
	}

	daysLeft := int(math.Ceil(deadline.DeadlineDate.Sub(now).Hours() / 24))
	return &RegistrationStatus{
		IsOpen:   true,
		Deadline: deadline,
		DaysLeft: daysLeft,
	}, nil
}
