package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// TicketService drives the booking state machine. Seat accounting and the
// ticket row mutation always share one transaction.
type TicketService struct {
	TicketRepo repositories.TicketRepository
	RouteRepo  repositories.RouteRepository
	Inventory  repositories.InventoryRepo
	DB         *sql.DB
	RequestID  string
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// BookingInput carries the fields required to book a ticket.
type BookingInput struct {
	RouteID         int64  `json:"route_id"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    int    `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
	TravelDate      string `json:"travel_date"`
	NumberOfSeats   int    `json:"number_of_seats"`
}

func (in BookingInput) validate() error {
	if in.RouteID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "required"}
	}
	if strings.TrimSpace(in.PassengerName) == "" {
		return domain.ValidationError{Field: "passenger_name", Msg: "required"}
	}
	if in.PassengerAge <= 0 {
		return domain.ValidationError{Field: "passenger_age", Msg: "required"}
	}
	switch in.PassengerGender {
	case "male", "female", "other":
	default:
		return domain.ValidationError{Field: "passenger_gender", Msg: "must be male, female or other"}
	}
	if _, err := utils.ParseDate(in.TravelDate); err != nil {
		return domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD"}
	}
	if in.NumberOfSeats <= 0 {
		return domain.ValidationError{Field: "number_of_seats", Msg: "must be positive"}
	}
	return nil
}

// Book reserves seats and creates the ticket in booked state. The total
// fare is fixed here (route fare x seats) and never recomputed.
func (s TicketService) Book(principal domain.Principal, in BookingInput) (models.Ticket, error) {
	if err := in.validate(); err != nil {
		return models.Ticket{}, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var fare int64
	if err := tx.QueryRow(`SELECT fare FROM routes WHERE id = ?`, in.RouteID).Scan(&fare); err != nil {
		if err == sql.ErrNoRows {
			return models.Ticket{}, domain.NotFoundError{Resource: "route"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	if err := s.Inventory.ReserveRouteSeats(tx, in.RouteID, in.NumberOfSeats); err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		TicketCode:      utils.NewTicketCode(),
		UserID:          int64(principal.UserID),
		RouteID:         in.RouteID,
		PassengerName:   strings.TrimSpace(in.PassengerName),
		PassengerAge:    in.PassengerAge,
		PassengerGender: in.PassengerGender,
		TravelDate:      in.TravelDate,
		NumberOfSeats:   in.NumberOfSeats,
		TotalFare:       utils.ComputeTotalFare(fare, in.NumberOfSeats),
		Status:          models.TicketBooked,
	}

	id, err := s.TicketRepo.Insert(tx, ticket)
	if err != nil {
		return models.Ticket{}, err
	}
	ticket.ID = id

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "ticket", "book",
		fmt.Sprintf("ticket_id=%d route_id=%d seats=%d fare=%d", id, in.RouteID, in.NumberOfSeats, ticket.TotalFare))
	return ticket, nil
}

// Cancel flips a booked ticket to cancelled and returns its seats to the
// route, all in one transaction.
func (s TicketService) Cancel(principal domain.Principal, ticketID int64) (models.Ticket, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	ticket, err := s.TicketRepo.GetByID(tx, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if !principal.Owns(domain.ID(ticket.UserID)) {
		return models.Ticket{}, domain.UnauthorizedError{Msg: "not authorized to cancel this ticket"}
	}

	switch ticket.Status {
	case models.TicketCancelled:
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "already cancelled"}
	case models.TicketCompleted:
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "completed tickets cannot be cancelled"}
	}

	flipped, err := s.TicketRepo.MarkCancelled(tx, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if !flipped {
		// Lost the race against a concurrent cancel.
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "already cancelled"}
	}

	if err := s.Inventory.ReleaseRouteSeats(tx, ticket.RouteID, ticket.NumberOfSeats); err != nil {
		return models.Ticket{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	ticket.Status = models.TicketCancelled
	utils.LogEvent(s.RequestID, "ticket", "cancel",
		fmt.Sprintf("ticket_id=%d seats_released=%d", ticketID, ticket.NumberOfSeats))
	return ticket, nil
}

// Complete marks a booked ticket as completed after travel. No inventory
// effect: the run has already happened.
func (s TicketService) Complete(ticketID int64) (models.Ticket, error) {
	db := s.db()

	ticket, err := s.TicketRepo.GetByID(db, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if ticket.Status == models.TicketCompleted {
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "already completed"}
	}
	if ticket.Status == models.TicketCancelled {
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "cancelled tickets cannot be completed"}
	}

	flipped, err := s.TicketRepo.MarkCompleted(db, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if !flipped {
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "already completed"}
	}

	ticket.Status = models.TicketCompleted
	utils.LogEvent(s.RequestID, "ticket", "complete", fmt.Sprintf("ticket_id=%d", ticketID))
	return ticket, nil
}

// GetByID returns a ticket with its route, owner or admin only.
func (s TicketService) GetByID(principal domain.Principal, ticketID int64) (models.Ticket, error) {
	ticket, err := s.TicketRepo.GetByID(s.db(), ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if !principal.Owns(domain.ID(ticket.UserID)) {
		return models.Ticket{}, domain.UnauthorizedError{Msg: "not authorized to access this ticket"}
	}

	if route, err := s.RouteRepo.GetByID(ticket.RouteID); err == nil {
		ticket.Route = &route
	}
	return ticket, nil
}

func (s TicketService) ListMine(principal domain.Principal) ([]models.Ticket, error) {
	return s.TicketRepo.ListByUser(int64(principal.UserID))
}

func (s TicketService) ListAll() ([]models.Ticket, error) {
	return s.TicketRepo.ListAll()
}

func (s TicketService) Stats() (models.TicketStats, error) {
	return s.TicketRepo.Stats()
}
