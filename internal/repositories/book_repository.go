package repositories

import (
	"database/sql"
	"strings"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type BookRepository struct {
	DB *sql.DB
}

func (r BookRepository) db() *sql.DB { return fallbackDB(r.DB) }

const bookColumns = `id, title, author, genre, isbn, published_year, total_copies, available_copies`

func scanBook(row interface{ Scan(...any) error }) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ISBN, &b.PublishedYear,
		&b.TotalCopies, &b.AvailableCopies)
	return b, err
}

func (r BookRepository) GetByID(ex Execer, id int64) (models.Book, error) {
	b, err := scanBook(ex.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return models.Book{}, domain.NotFoundError{Resource: "book"}
	}
	if err != nil {
		return models.Book{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BookRepository) List() ([]models.Book, error) {
	rows, err := r.db().Query(`SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create registers a new title. available_copies starts at total_copies.
func (r BookRepository) Create(b models.Book) (int64, error) {
	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM books WHERE isbn = ?`, b.ISBN).Scan(&exists); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "book", Msg: "ISBN already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO books (title, author, genre, isbn, published_year, total_copies, available_copies)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(b.Title), strings.TrimSpace(b.Author), b.Genre,
		strings.TrimSpace(b.ISBN), b.PublishedYear, b.TotalCopies, b.TotalCopies)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

// Update touches bibliographic fields only; copy counters belong to the
// inventory ledger.
func (r BookRepository) Update(id int64, b models.Book) error {
	res, err := r.db().Exec(`
		UPDATE books SET title = ?, author = ?, genre = ?, published_year = ? WHERE id = ?`,
		strings.TrimSpace(b.Title), strings.TrimSpace(b.Author), b.Genre, b.PublishedYear, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "book"}
	}
	return nil
}

func (r BookRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "book"}
	}
	return nil
}
