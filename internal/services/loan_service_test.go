package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

func newLoanService(t *testing.T, now time.Time) (LoanService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	svc := LoanService{
		LoanRepo:         repositories.LoanRepository{DB: db},
		BookRepo:         repositories.BookRepository{DB: db},
		PaymentRepo:      repositories.PaymentRepository{DB: db},
		UserRepo:         repositories.UserRepository{DB: db},
		Inventory:        repositories.InventoryRepo{},
		DB:               db,
		LoanDurationDays: 14,
		LateFeePerDay:    50,
		Now:              func() time.Time { return now },
	}
	return svc, mock
}

func bookRow(id int64, available int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "author", "genre", "isbn", "published_year", "total_copies", "available_copies",
	}).AddRow(id, "Norwegian Wood", "Haruki Murakami", "fiction", "978-0375704024", 1987, 5, available)
}

func loanRow(id, userID, bookID int64, borrow, due time.Time, returned *time.Time, status string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "loan_code", "user_id", "book_id", "borrow_date", "due_date", "return_date", "status",
		"title", "author", "isbn",
	})
	if returned != nil {
		rows.AddRow(id, "loan-code-1", userID, bookID, borrow, due, *returned, status, "Norwegian Wood", "Haruki Murakami", "978-0375704024")
	} else {
		rows.AddRow(id, "loan-code-1", userID, bookID, borrow, due, nil, status, "Norwegian Wood", "Haruki Murakami", "978-0375704024")
	}
	return rows
}

func TestBorrowReservesCopyAndSetsDueDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE id").WithArgs(int64(4)).
		WillReturnRows(bookRow(4, 2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans").
		WithArgs(int64(11), int64(4), models.LoanReturned).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loans").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	loan, err := svc.Borrow(principal, 4, 0)
	if err != nil {
		t.Fatalf("borrow error: %v", err)
	}
	if loan.ID != 5 {
		t.Fatalf("expected loan id 5, got %d", loan.ID)
	}
	wantDue := now.AddDate(0, 0, 14)
	if !loan.DueDate.Equal(wantDue) {
		t.Fatalf("expected due date %v, got %v", wantDue, loan.DueDate)
	}
	if loan.Status != models.LoanBorrowed {
		t.Fatalf("expected status borrowed, got %s", loan.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBorrowDuplicateOpenLoan(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE id").WithArgs(int64(4)).
		WillReturnRows(bookRow(4, 2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans").
		WithArgs(int64(11), int64(4), models.LoanReturned).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Borrow(principal, 4, 0); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate open loan, got %v", err)
	}
}

func TestBorrowNoCopiesAvailable(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE id").WithArgs(int64(4)).
		WillReturnRows(bookRow(4, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT available_copies FROM books").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"available_copies"}).AddRow(0))
	mock.ExpectRollback()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Borrow(principal, 4, 0); !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestBorrowForOtherUserRequiresAdmin(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newLoanService(t, now)

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Borrow(principal, 4, 22); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestBorrowForUnknownUser(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE id").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	if _, err := svc.Borrow(admin, 4, 42); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for missing target user, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBorrowConcurrentDuplicateLosesAtInsert(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, mock := newLoanService(t, now)

	// A racing borrow committed between the read check and the write: the
	// count still says zero but the guarded insert touches no row.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE id").WithArgs(int64(4)).
		WillReturnRows(bookRow(4, 2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans").
		WithArgs(int64(11), int64(4), models.LoanReturned).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loans").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Borrow(principal, 4, 0); !domain.IsConflict(err) {
		t.Fatalf("expected conflict when the guarded insert loses the race, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReturnOverdueCreatesOnePendingLateFee(t *testing.T) {
	borrow := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 14)
	// Returned three days and one hour past due: ceiling says 4 days.
	now := due.Add(3*24*time.Hour + time.Hour)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans l").WithArgs(int64(5)).
		WillReturnRows(loanRow(5, 11, 4, borrow, due, nil, models.LoanBorrowed))
	mock.ExpectExec("UPDATE loans SET status").
		WithArgs(models.LoanReturned, now, int64(5), models.LoanReturned).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET available_copies = available_copies \\+ 1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	result, err := svc.Return(principal, 5)
	if err != nil {
		t.Fatalf("return error: %v", err)
	}
	if result.DaysOverdue != 4 {
		t.Fatalf("expected 4 days overdue, got %d", result.DaysOverdue)
	}
	if result.LateFee != 200 {
		t.Fatalf("expected late fee 200, got %d", result.LateFee)
	}
	if result.Payment == nil {
		t.Fatal("expected a pending payment to be created")
	}
	if result.Payment.Status != models.PaymentPending {
		t.Fatalf("late fee must start pending, got %s", result.Payment.Status)
	}
	if result.Payment.PaymentType != models.PayTypeLateFee {
		t.Fatalf("expected late_fee type, got %s", result.Payment.PaymentType)
	}
	if result.Loan.Status != models.LoanReturned {
		t.Fatalf("expected returned, got %s", result.Loan.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReturnOnTimeCreatesNoPayment(t *testing.T) {
	borrow := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 14)
	now := due.Add(-time.Hour)
	svc, mock := newLoanService(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans l").WithArgs(int64(5)).
		WillReturnRows(loanRow(5, 11, 4, borrow, due, nil, models.LoanBorrowed))
	mock.ExpectExec("UPDATE loans SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET available_copies = available_copies \\+ 1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	result, err := svc.Return(principal, 5)
	if err != nil {
		t.Fatalf("return error: %v", err)
	}
	if result.LateFee != 0 || result.Payment != nil {
		t.Fatalf("on-time return must not create a fee, got fee=%d payment=%v", result.LateFee, result.Payment)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReturnAlreadyReturned(t *testing.T) {
	borrow := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 14)
	returned := due.Add(-time.Hour)
	svc, mock := newLoanService(t, due)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans l").WithArgs(int64(5)).
		WillReturnRows(loanRow(5, 11, 4, borrow, due, &returned, models.LoanReturned))
	mock.ExpectRollback()

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Return(principal, 5); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestEffectiveStatusProjectsOverdue(t *testing.T) {
	due := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	loan := models.Loan{Status: models.LoanBorrowed, DueDate: due}

	if got := loan.EffectiveStatus(due.Add(-time.Minute)); got != models.LoanBorrowed {
		t.Fatalf("before due: expected borrowed, got %s", got)
	}
	if got := loan.EffectiveStatus(due.Add(time.Minute)); got != models.LoanOverdue {
		t.Fatalf("past due: expected overdue, got %s", got)
	}

	ret := due.Add(time.Hour)
	loan.Status = models.LoanReturned
	loan.ReturnDate = &ret
	if got := loan.EffectiveStatus(due.Add(48 * time.Hour)); got != models.LoanReturned {
		t.Fatalf("returned loans never project overdue, got %s", got)
	}
}
