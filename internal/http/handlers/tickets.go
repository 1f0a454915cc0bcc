package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/services"
)

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		TicketRepo: repositories.TicketRepository{},
		RouteRepo:  repositories.RouteRepository{},
		Inventory:  repositories.InventoryRepo{},
		RequestID:  middleware.GetRequestID(c),
	}
}

// POST /api/tickets
func BookTicket(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	ticket, err := ticketService(c).Book(p, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// GET /api/tickets/my-tickets
func GetMyTickets(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	tickets, err := ticketService(c).ListMine(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// GET /api/tickets/:id
func GetTicketByID(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}
	ticket, err := ticketService(c).GetByID(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// PUT /api/tickets/:id/cancel
func CancelTicket(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}
	ticket, err := ticketService(c).Cancel(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "message": "ticket cancelled, seats released"})
}

// PUT /api/tickets/:id/complete (admin)
func CompleteTicket(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	ticket, err := ticketService(c).Complete(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// GET /api/tickets/admin/all (admin)
func GetAllTickets(c *gin.Context) {
	tickets, err := ticketService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// GET /api/tickets/admin/stats (admin)
func GetTicketStats(c *gin.Context) {
	stats, err := ticketService(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /api/tickets/:id/e-ticket
func GetTicketPDF(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	ticket, err := ticketService(c).GetByID(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if ticket.Status != models.TicketBooked && ticket.Status != models.TicketCompleted {
		respondError(c, http.StatusConflict, "conflict", "cancelled tickets have no e-ticket", nil)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateETicket(ticket)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ServePDF(c, pdfBytes, filename)
}
