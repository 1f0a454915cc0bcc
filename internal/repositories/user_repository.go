package repositories

import (
	"database/sql"
	"strings"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB { return fallbackDB(r.DB) }

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE id = ? LIMIT 1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// Exists is the tx-scoped lookup used when a record is created on another
// user's behalf and the schema carries no foreign key to catch a bad id.
func (r UserRepository) Exists(ex Execer, id int64) (bool, error) {
	var n int
	if err := ex.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n); err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email = ? LIMIT 1`, strings.TrimSpace(strings.ToLower(email))).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) Create(u models.User) (int64, error) {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(u.Name), email, u.PasswordHash, u.Role)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, email, password_hash, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Update(id int64, name, role string) error {
	res, err := r.db().Exec(`UPDATE users SET name = ?, role = ? WHERE id = ?`,
		strings.TrimSpace(name), role, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
