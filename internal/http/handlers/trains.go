package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

type trainPayload struct {
	Name       string `json:"name" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Type       string `json:"type"`
	TotalSeats int    `json:"total_seats" binding:"required"`
	Status     string `json:"status"`
}

func (p trainPayload) toModel() models.Train {
	t := models.Train{
		Name:       utils.NormalizeSpace(p.Name),
		Number:     strings.TrimSpace(p.Number),
		Type:       p.Type,
		TotalSeats: p.TotalSeats,
		Status:     p.Status,
	}
	if t.Type == "" {
		t.Type = "train"
	}
	if t.Status == "" {
		t.Status = "active"
	}
	return t
}

// GET /api/trains
func GetTrains(c *gin.Context) {
	trains, err := repositories.TrainRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

// GET /api/trains/:id
func GetTrainByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	train, err := repositories.TrainRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": train})
}

// POST /api/trains (admin)
func CreateTrain(c *gin.Context) {
	var p trainPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.TotalSeats <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "total_seats must be positive", nil)
		return
	}

	id, err := repositories.TrainRepository{}.Create(p.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	train, err := repositories.TrainRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"train": train})
}

// PUT /api/trains/:id (admin)
func UpdateTrain(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p trainPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.TotalSeats <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "total_seats must be positive", nil)
		return
	}

	repo := repositories.TrainRepository{}
	if err := repo.Update(id, p.toModel()); err != nil {
		RespondDomainError(c, err)
		return
	}

	train, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": train})
}

// DELETE /api/trains/:id (admin)
func DeleteTrain(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.TrainRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "train deleted"})
}
