package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

func newPaymentService(t *testing.T, now time.Time) (PaymentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return now },
	}
	return svc, mock
}

func paymentRow(id, userID int64, amount int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "loan_id", "amount", "payment_type", "payment_method", "status",
		"description", "transaction_id", "due_date", "paid_date", "gateway_session_id", "gateway_payment_ref",
	}).AddRow(id, userID, nil, amount, models.PayTypeLateFee, models.PayMethodCash, status,
		"Late fee", "TXN-abc", time.Now(), nil, "", "")
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newPaymentService(t, time.Now())

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Create(principal, CreateInput{Amount: 0}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := svc.Create(principal, CreateInput{Amount: -50}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}

func TestCreatePaymentStartsPending(t *testing.T) {
	svc, mock := newPaymentService(t, time.Now())

	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(9, 1))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	payment, err := svc.Create(principal, CreateInput{Amount: 500, PaymentType: models.PayTypeMembership})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("payments must start pending, got %s", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Fatal("expected a transaction id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlePaymentRecordsPaidDate(t *testing.T) {
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	svc, mock := newPaymentService(t, now)

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 11, 200, models.PaymentPending))
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentCompleted, models.PayMethodUPI, now, "", "", int64(9), models.PaymentCompleted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	payment, err := svc.Settle(principal, 9, models.PayMethodUPI)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("expected completed, got %s", payment.Status)
	}
	if payment.PaidDate == nil || !payment.PaidDate.Equal(now) {
		t.Fatalf("expected paid date %v, got %v", now, payment.PaidDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlePaymentAlreadyCompleted(t *testing.T) {
	svc, mock := newPaymentService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 11, 200, models.PaymentCompleted))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	if _, err := svc.Settle(principal, 9, ""); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSettlePaymentNotOwner(t *testing.T) {
	svc, mock := newPaymentService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 11, 200, models.PaymentPending))

	stranger := domain.Principal{UserID: 42, Role: domain.RoleUser}
	if _, err := svc.Settle(stranger, 9, ""); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminMaySettleAnyPayment(t *testing.T) {
	now := time.Now()
	svc, mock := newPaymentService(t, now)

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 11, 200, models.PaymentPending))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	payment, err := svc.Settle(admin, 9, models.PayMethodCash)
	if err != nil {
		t.Fatalf("admin settle error: %v", err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("expected completed, got %s", payment.Status)
	}
}

func TestWaiveOnlyPending(t *testing.T) {
	svc, mock := newPaymentService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 11, 200, models.PaymentPending))
	mock.ExpectExec("UPDATE payments SET status").
		WithArgs(models.PaymentWaived, int64(9), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payment, err := svc.Waive(9)
	if err != nil {
		t.Fatalf("waive error: %v", err)
	}
	if payment.Status != models.PaymentWaived {
		t.Fatalf("expected waived, got %s", payment.Status)
	}

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(10)).
		WillReturnRows(paymentRow(10, 11, 200, models.PaymentCompleted))
	if _, err := svc.Waive(10); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for completed payment, got %v", err)
	}
}
