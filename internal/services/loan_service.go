package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// LoanService drives the borrow/return state machine. Copy accounting, the
// loan row mutation and late-fee creation always share one transaction.
type LoanService struct {
	LoanRepo    repositories.LoanRepository
	BookRepo    repositories.BookRepository
	PaymentRepo repositories.PaymentRepository
	UserRepo    repositories.UserRepository
	Inventory   repositories.InventoryRepo
	DB          *sql.DB
	RequestID   string

	LoanDurationDays int
	LateFeePerDay    int64

	// Now is overridable in tests.
	Now func() time.Time
}

func (s LoanService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s LoanService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s LoanService) loanDuration() int {
	if s.LoanDurationDays > 0 {
		return s.LoanDurationDays
	}
	return 14
}

func (s LoanService) feePerDay() int64 {
	if s.LateFeePerDay > 0 {
		return s.LateFeePerDay
	}
	return 50
}

// Borrow reserves one copy and opens a loan. Admins may issue a loan to
// another user; everyone else borrows for themselves.
func (s LoanService) Borrow(principal domain.Principal, bookID, forUserID int64) (models.Loan, error) {
	if bookID <= 0 {
		return models.Loan{}, domain.ValidationError{Field: "book_id", Msg: "required"}
	}

	targetUser := int64(principal.UserID)
	if forUserID > 0 && forUserID != targetUser {
		if !principal.IsAdmin() {
			return models.Loan{}, domain.UnauthorizedError{Msg: "only admins can issue loans to other users"}
		}
		targetUser = forUserID
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Loan{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	// No FK backs loans.user_id, so an admin-issued loan has to confirm the
	// target user before the insert silently succeeds for a ghost.
	if targetUser != int64(principal.UserID) {
		exists, err := s.UserRepo.Exists(tx, targetUser)
		if err != nil {
			return models.Loan{}, err
		}
		if !exists {
			return models.Loan{}, domain.NotFoundError{Resource: "user"}
		}
	}

	book, err := s.BookRepo.GetByID(tx, bookID)
	if err != nil {
		return models.Loan{}, err
	}

	open, err := s.LoanRepo.HasOpenLoan(tx, targetUser, bookID)
	if err != nil {
		return models.Loan{}, err
	}
	if open {
		return models.Loan{}, domain.ConflictError{Resource: "loan", Msg: "this book is already borrowed by the user"}
	}

	if err := s.Inventory.ReserveBookCopy(tx, bookID); err != nil {
		return models.Loan{}, err
	}

	borrowDate := s.now()
	loan := models.Loan{
		LoanCode:   utils.NewLoanCode(),
		UserID:     targetUser,
		BookID:     bookID,
		BorrowDate: borrowDate,
		DueDate:    borrowDate.AddDate(0, 0, s.loanDuration()),
		Status:     models.LoanBorrowed,
	}

	id, err := s.LoanRepo.Insert(tx, loan)
	if err != nil {
		return models.Loan{}, err
	}
	loan.ID = id
	loan.BookTitle = book.Title
	loan.BookAuthor = book.Author
	loan.BookISBN = book.ISBN

	if err := tx.Commit(); err != nil {
		return models.Loan{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "loan", "borrow",
		fmt.Sprintf("loan_id=%d book_id=%d user_id=%d due=%s", id, bookID, targetUser, utils.FormatDate(loan.DueDate)))
	return loan, nil
}

// ReturnResult reports the outcome of a return, including any late fee.
type ReturnResult struct {
	Loan        models.Loan     `json:"loan"`
	LateFee     int64           `json:"late_fee"`
	DaysOverdue int             `json:"days_overdue"`
	Payment     *models.Payment `json:"payment,omitempty"`
}

// Return closes a loan: flips it to returned, releases the copy, and when
// the return is past due creates exactly one pending late-fee payment.
func (s LoanService) Return(principal domain.Principal, loanID int64) (ReturnResult, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return ReturnResult{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	loan, err := s.LoanRepo.GetByID(tx, loanID)
	if err != nil {
		return ReturnResult{}, err
	}
	if !principal.Owns(domain.ID(loan.UserID)) {
		return ReturnResult{}, domain.UnauthorizedError{Msg: "not authorized to return this loan"}
	}
	if loan.Status == models.LoanReturned {
		return ReturnResult{}, domain.ConflictError{Resource: "loan", Msg: "already returned"}
	}

	returnDate := s.now()
	flipped, err := s.LoanRepo.MarkReturned(tx, loanID, returnDate)
	if err != nil {
		return ReturnResult{}, err
	}
	if !flipped {
		return ReturnResult{}, domain.ConflictError{Resource: "loan", Msg: "already returned"}
	}

	if err := s.Inventory.ReleaseBookCopy(tx, loan.BookID); err != nil {
		return ReturnResult{}, err
	}

	result := ReturnResult{}
	amount, daysOverdue := utils.ComputeLateFee(loan.DueDate, returnDate, s.feePerDay())
	if amount > 0 {
		payment := models.Payment{
			UserID:        loan.UserID,
			LoanID:        &loan.ID,
			Amount:        amount,
			PaymentType:   models.PayTypeLateFee,
			PaymentMethod: models.PayMethodCash,
			Status:        models.PaymentPending,
			Description:   fmt.Sprintf("Late fee for %q (%d days overdue)", loan.BookTitle, daysOverdue),
			TransactionID: utils.NewTransactionID(),
			DueDate:       &returnDate,
		}
		pid, err := s.PaymentRepo.Insert(tx, payment)
		if err != nil {
			return ReturnResult{}, err
		}
		payment.ID = pid
		result.Payment = &payment
	}

	if err := tx.Commit(); err != nil {
		return ReturnResult{}, domain.InternalError{Err: err}
	}

	loan.Status = models.LoanReturned
	loan.ReturnDate = &returnDate
	result.Loan = loan
	result.LateFee = amount
	result.DaysOverdue = daysOverdue

	utils.LogEvent(s.RequestID, "loan", "return",
		fmt.Sprintf("loan_id=%d late_fee=%d days_overdue=%d", loanID, amount, daysOverdue))
	return result, nil
}

// ListMine returns the principal's loans with overdue status projected.
func (s LoanService) ListMine(principal domain.Principal) ([]models.Loan, error) {
	loans, err := s.LoanRepo.ListByUser(int64(principal.UserID))
	if err != nil {
		return nil, err
	}
	return s.project(loans), nil
}

// ListAll returns every loan (admin) with overdue status projected.
func (s LoanService) ListAll() ([]models.Loan, error) {
	loans, err := s.LoanRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return s.project(loans), nil
}

func (s LoanService) project(loans []models.Loan) []models.Loan {
	now := s.now()
	for i := range loans {
		loans[i].Status = loans[i].EffectiveStatus(now)
	}
	return loans
}
