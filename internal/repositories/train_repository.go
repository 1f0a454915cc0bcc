package repositories

import (
	"database/sql"
	"strings"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type TrainRepository struct {
	DB *sql.DB
}

func (r TrainRepository) db() *sql.DB { return fallbackDB(r.DB) }

func (r TrainRepository) GetByID(id int64) (models.Train, error) {
	var t models.Train
	err := r.db().QueryRow(`
		SELECT id, name, number, type, total_seats, status
		FROM trains WHERE id = ? LIMIT 1`, id).
		Scan(&t.ID, &t.Name, &t.Number, &t.Type, &t.TotalSeats, &t.Status)
	if err == sql.ErrNoRows {
		return models.Train{}, domain.NotFoundError{Resource: "train"}
	}
	if err != nil {
		return models.Train{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TrainRepository) List() ([]models.Train, error) {
	rows, err := r.db().Query(`
		SELECT id, name, number, type, total_seats, status
		FROM trains ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(&t.ID, &t.Name, &t.Number, &t.Type, &t.TotalSeats, &t.Status); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TrainRepository) Create(t models.Train) (int64, error) {
	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM trains WHERE number = ?`, t.Number).Scan(&exists); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "train", Msg: "number already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO trains (name, number, type, total_seats, status)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(t.Name), strings.TrimSpace(t.Number), t.Type, t.TotalSeats, t.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r TrainRepository) Update(id int64, t models.Train) error {
	res, err := r.db().Exec(`
		UPDATE trains SET name = ?, type = ?, total_seats = ?, status = ? WHERE id = ?`,
		strings.TrimSpace(t.Name), t.Type, t.TotalSeats, t.Status, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "train"}
	}
	return nil
}

func (r TrainRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trains WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "train"}
	}
	return nil
}
