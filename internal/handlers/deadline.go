package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mvasiljevic/projekti-api/internal/errors"
	"github.com/mvasiljevic/projekti-api/internal/services"
)

// DeadlineHandler serves deadline CRUD and the registration-status endpoint.
type DeadlineHandler struct {
	deadlineService *services.DeadlineService
}

func NewDeadlineHandler(deadlineService *services.DeadlineService) *DeadlineHandler {
	return &DeadlineHandler{
		deadlineService: deadlineService,
	}
}

type deadlineRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	DeadlineDate string  `json:"deadline_date"`
	CreatedBy    uint64  `json:"created_by"`
}

// parseDeadlineDate accepts full timestamps as well as the bare date and
// datetime-local formats browser forms post.
func parseDeadlineDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}

func (h *DeadlineHandler) List(c *gin.Context) {
	deadlines, err := h.deadlineService.List()
	if err != nil {
		log.Printf("Error fetching deadlines: %v", err)
		apierrors.InternalError(c, "Greška pri učitavanju rokova")
		return
	}

	c.JSON(http.StatusOK, deadlines)
}

func (h *DeadlineHandler) Create(c *gin.Context) {
	var req deadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Naziv, datum i kreator su obavezni")
		return
	}

	var date time.Time
	if req.DeadlineDate != "" {
		parsed, err := parseDeadlineDate(req.DeadlineDate)
		if err != nil {
			apierrors.BadRequest(c, "Nevažeći format datuma")
			return
		}
		date = parsed
	}

	deadline, err := h.deadlineService.Create(services.DeadlineInput{
		Title:        req.Title,
		Description:  req.Description,
		DeadlineDate: date,
		CreatedBy:    req.CreatedBy,
	})
	if err != nil {
		h.respondDeadlineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, deadline)
}

func (h *DeadlineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID roka")
		return
	}

	var req deadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Naziv i datum su obavezni")
		return
	}

	var date time.Time
	if req.DeadlineDate != "" {
		parsed, err := parseDeadlineDate(req.DeadlineDate)
		if err != nil {
			apierrors.BadRequest(c, "Nevažeći format datuma")
			return
		}
		date = parsed
	}

	deadline, err := h.deadlineService.Update(id, services.DeadlineInput{
		Title:        req.Title,
		Description:  req.Description,
		DeadlineDate: date,
	})
	if err != nil {
		h.respondDeadlineError(c, err)
		return
	}

	c.JSON(http.StatusOK, deadline)
}

func (h *DeadlineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID roka")
		return
	}

	if err := h.deadlineService.Delete(id); err != nil {
		h.respondDeadlineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rok je obrisan",
	})
}

// RegistrationStatus reports whether the submission window is open, with the
// applicable deadline and days remaining.
func (h *DeadlineHandler) RegistrationStatus(c *gin.Context) {
	status, err := h.deadlineService.RegistrationStatus(time.Now())
	if err != nil {
		log.Printf("Error checking registration status: %v", err)
		apierrors.InternalError(c, "Greška pri proveri statusa prijave")
		return
	}

	if !status.IsOpen {
		c.JSON(http.StatusOK, gin.H{
			"isOpen":   false,
			"message":  "Prijava projekata je zatvorena",
			"deadline": nil,
			"daysLeft": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isOpen":   true,
		"message":  "Prijava projekata je otvorena",
		"deadline": status.Deadline,
		"daysLeft": status.DaysLeft,
	})
}

func (h *DeadlineHandler) respondDeadlineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDateRequired),
		errors.Is(err, services.ErrCreatorRequired):
		apierrors.BadRequest(c, "Naziv, datum i kreator su obavezni")
	case errors.Is(err, services.ErrDeadlineNotFound):
		apierrors.NotFound(c, "Rok nije pronađen")
	default:
		log.Printf("Deadline error: %v", err)
		apierrors.InternalError(c, "Greška pri obradi roka")
	}
}
