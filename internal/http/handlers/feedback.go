package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

type feedbackRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /api/feedback
func CreateFeedback(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var req feedbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	id, err := repositories.FeedbackRepository{}.Create(models.Feedback{
		UserID:  int64(p.UserID),
		Subject: utils.NormalizeSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "feedback recorded"})
}

// GET /api/feedback (admin)
func GetFeedback(c *gin.Context) {
	items, err := repositories.FeedbackRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": items})
}
