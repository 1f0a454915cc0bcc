package repositories

import (
	"database/sql"
	"strings"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type FeedbackRepository struct {
	DB *sql.DB
}

func (r FeedbackRepository) db() *sql.DB { return fallbackDB(r.DB) }

func (r FeedbackRepository) Create(f models.Feedback) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO feedback (user_id, subject, message) VALUES (?, ?, ?)`,
		f.UserID, strings.TrimSpace(f.Subject), strings.TrimSpace(f.Message))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r FeedbackRepository) List() ([]models.Feedback, error) {
	rows, err := r.db().Query(`
		SELECT f.id, f.user_id, f.subject, f.message, f.created_at, u.name
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Subject, &f.Message, &f.CreatedAt, &f.UserName); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
