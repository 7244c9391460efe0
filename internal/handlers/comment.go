package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvasiljevic/projekti-api/internal/database"
	"github.com/mvasiljevic/projekti-api/internal/models"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// AddComment appends a comment to a project. Whitespace-only text is
// rejected; what gets stored is the trimmed text.
func (h *CommentHandler) AddComment(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	type commentRequest struct {
		UserID  uint64 `json:"userId"`
		Comment string `json:"comment"`
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	text := strings.TrimSpace(req.Comment)
	if req.UserID == 0 || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	comment := models.Comment{
		ProjectID: projectID,
		UserID:    req.UserID,
		Comment:   text,
	}
	if err := database.GetDB().Create(&comment).Error; err != nil {
		log.Printf("Error adding comment to project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment added successfully",
	})
}
