package repositories

import (
	"database/sql"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
)

// InventoryRepo implements the capacity ledger over routes and books.
// Reserve operations are single conditional decrements: the availability
// check and the write happen in one statement, so concurrent requests for
// the last seat cannot both succeed. Callers run these inside the same
// transaction as the ticket/loan row mutation.
type InventoryRepo struct{}

// ReserveRouteSeats decrements available_seats by qty, failing when fewer
// than qty seats remain.
func (InventoryRepo) ReserveRouteSeats(ex Execer, routeID int64, qty int) error {
	if qty <= 0 {
		return domain.ValidationError{Field: "number_of_seats", Msg: "must be positive"}
	}

	res, err := ex.Exec(`UPDATE routes SET available_seats = available_seats - ? WHERE id = ? AND available_seats >= ?`,
		qty, routeID, qty)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return reserveFailure(ex, `SELECT available_seats FROM routes WHERE id = ?`, routeID, "route", "seats", qty)
	}
	return nil
}

// ReleaseRouteSeats returns qty seats to the route. Idempotence is the
// caller's responsibility; the increment itself is unconditional.
func (InventoryRepo) ReleaseRouteSeats(ex Execer, routeID int64, qty int) error {
	if qty <= 0 {
		return domain.ValidationError{Field: "number_of_seats", Msg: "must be positive"}
	}
	if _, err := ex.Exec(`UPDATE routes SET available_seats = available_seats + ? WHERE id = ?`, qty, routeID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// ReserveBookCopy decrements available_copies by one, failing when no copy
// remains.
func (InventoryRepo) ReserveBookCopy(ex Execer, bookID int64) error {
	res, err := ex.Exec(`UPDATE books SET available_copies = available_copies - 1 WHERE id = ? AND available_copies >= 1`, bookID)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return reserveFailure(ex, `SELECT available_copies FROM books WHERE id = ?`, bookID, "book", "copies", 1)
	}
	return nil
}

// ReleaseBookCopy returns one copy to the book's pool.
func (InventoryRepo) ReleaseBookCopy(ex Execer, bookID int64) error {
	if _, err := ex.Exec(`UPDATE books SET available_copies = available_copies + 1 WHERE id = ?`, bookID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// reserveFailure distinguishes a missing resource from an exhausted one
// after a conditional decrement touched no row.
func reserveFailure(ex Execer, query string, id int64, resource, unit string, requested int) error {
	var available int
	err := ex.QueryRow(query, id).Scan(&available)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: resource}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return domain.CapacityError{Resource: unit, Available: available, Requested: requested}
}
