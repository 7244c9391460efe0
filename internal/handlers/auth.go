package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mvasiljevic/projekti-api/internal/errors"
	"github.com/mvasiljevic/projekti-api/internal/services"
)

// AuthHandler coordinates registration and login HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user keyed by email.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Ime i email su obavezni")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired), errors.Is(err, services.ErrEmailRequired):
			apierrors.BadRequest(c, "Ime i email su obavezni")
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.BadRequest(c, "Korisnik sa tim email-om već postoji")
		default:
			log.Printf("Error creating user: %v", err)
			apierrors.InternalError(c, "Greška pri registraciji")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Login looks the user up by email. There is no credential check; email-only
// identity is the platform's contract.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email je obavezan")
		return
	}

	user, err := h.authService.Login(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "Korisnik ne postoji")
			return
		}
		log.Printf("Error during login: %v", err)
		apierrors.InternalError(c, "Greška pri prijavi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
