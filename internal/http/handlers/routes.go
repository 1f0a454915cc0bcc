package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

type routePayload struct {
	TrainID         int64  `json:"train_id" binding:"required"`
	Source          string `json:"source" binding:"required"`
	Destination     string `json:"destination" binding:"required"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	Duration        string `json:"duration"`
	Fare            int64  `json:"fare" binding:"required"`
	AvailableSeats  int    `json:"available_seats"`
	DaysOfOperation string `json:"days_of_operation"`
	Status          string `json:"status"`
}

func (p routePayload) toModel() models.Route {
	rt := models.Route{
		TrainID:         p.TrainID,
		Source:          strings.TrimSpace(p.Source),
		Destination:     strings.TrimSpace(p.Destination),
		DepartureTime:   p.DepartureTime,
		ArrivalTime:     p.ArrivalTime,
		Duration:        p.Duration,
		Fare:            p.Fare,
		AvailableSeats:  p.AvailableSeats,
		DaysOfOperation: p.DaysOfOperation,
		Status:          p.Status,
	}
	if rt.Status == "" {
		rt.Status = "active"
	}
	return rt
}

// GET /api/routes?source=&destination=
func GetRoutes(c *gin.Context) {
	source := strings.TrimSpace(c.Query("source"))
	destination := strings.TrimSpace(c.Query("destination"))

	repo := repositories.RouteRepository{}
	var (
		routes []models.Route
		err    error
	)
	if source != "" || destination != "" {
		routes, err = repo.Search(source, destination)
	} else {
		routes, err = repo.List()
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	route, err := repositories.RouteRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// POST /api/routes (admin). New routes open with the full seat pool of
// their train unless available_seats is given explicitly.
func CreateRoute(c *gin.Context) {
	var p routePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.Fare <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "fare must be positive", nil)
		return
	}

	rt := p.toModel()
	if rt.AvailableSeats <= 0 {
		train, err := repositories.TrainRepository{}.GetByID(rt.TrainID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		rt.AvailableSeats = train.TotalSeats
	}

	repo := repositories.RouteRepository{}
	id, err := repo.Create(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	route, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// PUT /api/routes/:id (admin). Never touches available_seats; that counter
// moves only through bookings and cancellations.
func UpdateRoute(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p routePayload
	if !BindJSONOrError(c, &p) {
		return
	}

	repo := repositories.RouteRepository{}
	if err := repo.Update(id, p.toModel()); err != nil {
		RespondDomainError(c, err)
		return
	}

	route, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DELETE /api/routes/:id (admin)
func DeleteRoute(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.RouteRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
