package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mvasiljevic/projekti-api/internal/database"
	"github.com/mvasiljevic/projekti-api/internal/models"
	"gorm.io/gorm/clause"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Vote records or replaces the user's vote on a project. The write is a
// single upsert against the (project_id, user_id) unique index, so two
// concurrent votes for the same pair can never leave duplicate rows.
func (h *VoteHandler) Vote(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote data"})
		return
	}

	type voteRequest struct {
		UserID   uint64          `json:"userId"`
		VoteType models.VoteType `json:"voteType"`
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || !req.VoteType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote data"})
		return
	}

	vote := models.Vote{
		ProjectID: projectID,
		UserID:    req.UserID,
		VoteType:  req.VoteType,
	}
	err = database.GetDB().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote_type"}),
		}).
		Create(&vote).Error
	if err != nil {
		log.Printf("Error recording vote for project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vote recorded successfully",
	})
}
