package models

import "time"

// Persisted loan statuses. Overdue is never stored; it is derived at read
// time by EffectiveStatus.
const (
	LoanBorrowed = "borrowed"
	LoanReturned = "returned"
	LoanOverdue  = "overdue"
)

// Loan is one borrow of one book copy by one user.
type Loan struct {
	ID         int64      `json:"id"`
	LoanCode   string     `json:"loan_code"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`

	// Populated on reads.
	BookTitle  string `json:"book_title,omitempty"`
	BookAuthor string `json:"book_author,omitempty"`
	BookISBN   string `json:"book_isbn,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	UserEmail  string `json:"user_email,omitempty"`
}

// EffectiveStatus projects the overdue state for open loans past their due
// date. The stored status only changes on an explicit return.
func (l Loan) EffectiveStatus(now time.Time) string {
	if l.Status == LoanBorrowed && l.ReturnDate == nil && now.After(l.DueDate) {
		return LoanOverdue
	}
	return l.Status
}
