// Package repositories holds the SQL access layer. Every capacity counter
// (route seats, book copies) is mutated only through conditional updates so
// concurrent bookings cannot lose writes.
package repositories

import (
	"database/sql"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
)

// Execer is satisfied by *sql.DB and *sql.Tx, letting repositories run
// inside or outside a transaction.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func fallbackDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}
