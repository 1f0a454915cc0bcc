package models

import "time"

// Ticket statuses. Cancelled and completed are terminal.
const (
	TicketBooked    = "booked"
	TicketCancelled = "cancelled"
	TicketCompleted = "completed"
)

// Ticket is a seat booking against a route. TotalFare is computed once at
// creation (route fare x seats) and never recomputed.
type Ticket struct {
	ID              int64     `json:"id"`
	TicketCode      string    `json:"ticket_code"`
	UserID          int64     `json:"user_id"`
	RouteID         int64     `json:"route_id"`
	PassengerName   string    `json:"passenger_name"`
	PassengerAge    int       `json:"passenger_age"`
	PassengerGender string    `json:"passenger_gender"`
	TravelDate      string    `json:"travel_date"`
	NumberOfSeats   int       `json:"number_of_seats"`
	TotalFare       int64     `json:"total_fare"`
	Status          string    `json:"status"`
	BookingDate     time.Time `json:"booking_date"`

	// Populated on detail reads.
	Route *Route `json:"route,omitempty"`
}

// TicketStats aggregates counts and revenue for the admin dashboard.
type TicketStats struct {
	Total        int   `json:"total"`
	Booked       int   `json:"booked"`
	Cancelled    int   `json:"cancelled"`
	Completed    int   `json:"completed"`
	TotalRevenue int64 `json:"total_revenue"`
}
