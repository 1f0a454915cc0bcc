package repositories

import (
	"database/sql"
	"time"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type LoanRepository struct {
	DB *sql.DB
}

func (r LoanRepository) db() *sql.DB { return fallbackDB(r.DB) }

// HasOpenLoan reports whether the user already holds a non-returned loan
// for this book. Exactly one open loan per (user, book) at a time.
func (r LoanRepository) HasOpenLoan(ex Execer, userID, bookID int64) (bool, error) {
	var count int
	err := ex.QueryRow(`
		SELECT COUNT(*) FROM loans
		WHERE user_id = ? AND book_id = ? AND status <> ?`,
		userID, bookID, models.LoanReturned).Scan(&count)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return count > 0, nil
}

// Insert writes a new loan inside the borrow transaction. The NOT EXISTS
// guard repeats the open-loan check at write time, so two concurrent borrows
// of the same (user, book) cannot both create a loan.
func (r LoanRepository) Insert(ex Execer, l models.Loan) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO loans (loan_code, user_id, book_id, borrow_date, due_date, status)
		SELECT ?, ?, ?, ?, ?, ?
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM loans WHERE user_id = ? AND book_id = ? AND status <> ?
		)`,
		l.LoanCode, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.Status,
		l.UserID, l.BookID, models.LoanReturned)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if n == 0 {
		return 0, domain.ConflictError{Resource: "loan", Msg: "this book is already borrowed by the user"}
	}
	return res.LastInsertId()
}

func (r LoanRepository) GetByID(ex Execer, id int64) (models.Loan, error) {
	var l models.Loan
	var ret sql.NullTime
	err := ex.QueryRow(`
		SELECT l.id, l.loan_code, l.user_id, l.book_id, l.borrow_date, l.due_date, l.return_date, l.status,
		       b.title, b.author, b.isbn
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.id = ? LIMIT 1`, id).
		Scan(&l.ID, &l.LoanCode, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &ret, &l.Status,
			&l.BookTitle, &l.BookAuthor, &l.BookISBN)
	if err == sql.ErrNoRows {
		return models.Loan{}, domain.NotFoundError{Resource: "loan"}
	}
	if err != nil {
		return models.Loan{}, domain.InternalError{Err: err}
	}
	if ret.Valid {
		t := ret.Time
		l.ReturnDate = &t
	}
	return l, nil
}

// MarkReturned flips the loan to returned, guarding against double returns
// in the statement itself. Returns false when the loan was already returned.
func (r LoanRepository) MarkReturned(ex Execer, id int64, returnDate time.Time) (bool, error) {
	res, err := ex.Exec(`
		UPDATE loans SET status = ?, return_date = ? WHERE id = ? AND status <> ?`,
		models.LoanReturned, returnDate, id, models.LoanReturned)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r LoanRepository) ListByUser(userID int64) ([]models.Loan, error) {
	return r.list(`
		SELECT l.id, l.loan_code, l.user_id, l.book_id, l.borrow_date, l.due_date, l.return_date, l.status,
		       b.title, b.author, b.isbn, '', ''
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.user_id = ?
		ORDER BY l.borrow_date DESC`, userID)
}

func (r LoanRepository) ListAll() ([]models.Loan, error) {
	return r.list(`
		SELECT l.id, l.loan_code, l.user_id, l.book_id, l.borrow_date, l.due_date, l.return_date, l.status,
		       b.title, b.author, b.isbn, u.name, u.email
		FROM loans l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.user_id
		ORDER BY l.borrow_date DESC`)
}

func (r LoanRepository) list(q string, args ...any) ([]models.Loan, error) {
	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Loan{}
	for rows.Next() {
		var l models.Loan
		var ret sql.NullTime
		if err := rows.Scan(&l.ID, &l.LoanCode, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate,
			&ret, &l.Status, &l.BookTitle, &l.BookAuthor, &l.BookISBN, &l.UserName, &l.UserEmail); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		if ret.Valid {
			t := ret.Time
			l.ReturnDate = &t
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
