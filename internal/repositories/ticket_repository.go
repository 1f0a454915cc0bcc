package repositories

import (
	"database/sql"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB { return fallbackDB(r.DB) }

const ticketColumns = `id, ticket_code, user_id, route_id, passenger_name, passenger_age,
       passenger_gender, DATE_FORMAT(travel_date, '%Y-%m-%d'), number_of_seats, total_fare, status, booking_date`

func scanTicket(row interface{ Scan(...any) error }) (models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(&t.ID, &t.TicketCode, &t.UserID, &t.RouteID, &t.PassengerName, &t.PassengerAge,
		&t.PassengerGender, &t.TravelDate, &t.NumberOfSeats, &t.TotalFare, &t.Status, &t.BookingDate)
	return t, err
}

// Insert writes a new ticket inside the booking transaction.
func (r TicketRepository) Insert(ex Execer, t models.Ticket) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO tickets (ticket_code, user_id, route_id, passenger_name, passenger_age,
		                     passenger_gender, travel_date, number_of_seats, total_fare, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TicketCode, t.UserID, t.RouteID, t.PassengerName, t.PassengerAge,
		t.PassengerGender, t.TravelDate, t.NumberOfSeats, t.TotalFare, t.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r TicketRepository) GetByID(ex Execer, id int64) (models.Ticket, error) {
	t, err := scanTicket(ex.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TicketRepository) ListByUser(userID int64) ([]models.Ticket, error) {
	return r.list(`SELECT `+ticketColumns+` FROM tickets WHERE user_id = ? ORDER BY booking_date DESC`, userID)
}

func (r TicketRepository) ListAll() ([]models.Ticket, error) {
	return r.list(`SELECT ` + ticketColumns + ` FROM tickets ORDER BY booking_date DESC`)
}

func (r TicketRepository) list(q string, args ...any) ([]models.Ticket, error) {
	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkCancelled flips booked -> cancelled. The status guard lives in the
// statement itself so a second cancel touches no row.
func (r TicketRepository) MarkCancelled(ex Execer, id int64) (bool, error) {
	res, err := ex.Exec(`UPDATE tickets SET status = ? WHERE id = ? AND status = ?`,
		models.TicketCancelled, id, models.TicketBooked)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// MarkCompleted flips booked -> completed.
func (r TicketRepository) MarkCompleted(ex Execer, id int64) (bool, error) {
	res, err := ex.Exec(`UPDATE tickets SET status = ? WHERE id = ? AND status = ?`,
		models.TicketCompleted, id, models.TicketBooked)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// Stats aggregates counts per status and revenue over non-cancelled tickets.
func (r TicketRepository) Stats() (models.TicketStats, error) {
	var s models.TicketStats
	err := r.db().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'booked'), 0),
		       COALESCE(SUM(status = 'cancelled'), 0),
		       COALESCE(SUM(status = 'completed'), 0),
		       COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_fare ELSE 0 END), 0)
		FROM tickets`).
		Scan(&s.Total, &s.Booked, &s.Cancelled, &s.Completed, &s.TotalRevenue)
	if err != nil {
		return models.TicketStats{}, domain.InternalError{Err: err}
	}
	return s, nil
}
