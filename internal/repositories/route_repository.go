package repositories

import (
	"database/sql"
	"strings"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB { return fallbackDB(r.DB) }

const routeColumns = `r.id, r.train_id, r.source, r.destination, r.departure_time, r.arrival_time,
       r.duration, r.fare, r.available_seats, r.days_of_operation, r.status`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := row.Scan(&rt.ID, &rt.TrainID, &rt.Source, &rt.Destination, &rt.DepartureTime,
		&rt.ArrivalTime, &rt.Duration, &rt.Fare, &rt.AvailableSeats, &rt.DaysOfOperation, &rt.Status)
	return rt, err
}

// GetByID loads a route together with its train.
func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	row := r.db().QueryRow(`
		SELECT `+routeColumns+`,
		       t.id, t.name, t.number, t.type, t.total_seats, t.status
		FROM routes r
		JOIN trains t ON t.id = r.train_id
		WHERE r.id = ? LIMIT 1`, id)

	var rt models.Route
	var tr models.Train
	err := row.Scan(&rt.ID, &rt.TrainID, &rt.Source, &rt.Destination, &rt.DepartureTime,
		&rt.ArrivalTime, &rt.Duration, &rt.Fare, &rt.AvailableSeats, &rt.DaysOfOperation, &rt.Status,
		&tr.ID, &tr.Name, &tr.Number, &tr.Type, &tr.TotalSeats, &tr.Status)
	if err == sql.ErrNoRows {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	rt.Train = &tr
	return rt, nil
}

func (r RouteRepository) List() ([]models.Route, error) {
	return r.query(`SELECT ` + routeColumns + ` FROM routes r ORDER BY r.id`)
}

// Search finds active routes between two stops (case-insensitive).
func (r RouteRepository) Search(source, destination string) ([]models.Route, error) {
	return r.query(`
		SELECT `+routeColumns+`
		FROM routes r
		WHERE LOWER(r.source) = LOWER(?) AND LOWER(r.destination) = LOWER(?) AND r.status = 'active'
		ORDER BY r.departure_time`,
		strings.TrimSpace(source), strings.TrimSpace(destination))
}

func (r RouteRepository) query(q string, args ...any) ([]models.Route, error) {
	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) Create(rt models.Route) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (train_id, source, destination, departure_time, arrival_time, duration,
		                    fare, available_seats, days_of_operation, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.TrainID, strings.TrimSpace(rt.Source), strings.TrimSpace(rt.Destination),
		rt.DepartureTime, rt.ArrivalTime, rt.Duration,
		rt.Fare, rt.AvailableSeats, rt.DaysOfOperation, rt.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

// Update touches schedule and status fields only. available_seats belongs to
// the inventory ledger and is never written here.
func (r RouteRepository) Update(id int64, rt models.Route) error {
	res, err := r.db().Exec(`
		UPDATE routes SET source = ?, destination = ?, departure_time = ?, arrival_time = ?,
		       duration = ?, fare = ?, days_of_operation = ?, status = ?
		WHERE id = ?`,
		strings.TrimSpace(rt.Source), strings.TrimSpace(rt.Destination), rt.DepartureTime,
		rt.ArrivalTime, rt.Duration, rt.Fare, rt.DaysOfOperation, rt.Status, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}
