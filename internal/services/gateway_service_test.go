package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/gateway"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

const testWebhookSecret = "whsec_test"

func newGatewayService(t *testing.T, now time.Time) (GatewayService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	svc := GatewayService{
		PaymentRepo:   repositories.PaymentRepository{DB: db},
		DB:            db,
		MinAmount:     50,
		WebhookSecret: testWebhookSecret,
		FrontendURL:   "http://localhost:5173",
		Now:           func() time.Time { return now },
	}
	return svc, mock
}

func sessionPayment(id int64, status, sessionID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "loan_id", "amount", "payment_type", "payment_method", "status",
		"description", "transaction_id", "due_date", "paid_date", "gateway_session_id", "gateway_payment_ref",
	}).AddRow(id, 11, nil, 200, models.PayTypeLateFee, models.PayMethodCash, status,
		"Late fee", "TXN-abc", time.Now(), nil, sessionID, "")
}

func completedEvent(t *testing.T, sessionID, ref string) []byte {
	t.Helper()
	payload, err := json.Marshal(gateway.WebhookEvent{
		Type: gateway.EventCheckoutCompleted,
		Session: gateway.CheckoutSession{
			ID:         sessionID,
			Status:     gateway.SessionPaid,
			PaymentRef: ref,
		},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return payload
}

func TestCheckoutBelowGatewayMinimum(t *testing.T) {
	svc, mock := newGatewayService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "loan_id", "amount", "payment_type", "payment_method", "status",
			"description", "transaction_id", "due_date", "paid_date", "gateway_session_id", "gateway_payment_ref",
		}).AddRow(9, 11, nil, 30, models.PayTypeLateFee, models.PayMethodCash, models.PaymentPending,
			"Late fee", "TXN-abc", time.Now(), nil, "", ""))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	_, err := svc.CreateCheckout(context.Background(), principal, 9)
	if !domain.IsBelowMinimum(err) {
		t.Fatalf("expected below-minimum error for amount under the floor, got %v", err)
	}
	if domain.IsValidation(err) {
		t.Fatalf("below-minimum must be its own error type, got validation: %v", err)
	}
}

func TestVerifyCheckoutSessionMismatch(t *testing.T) {
	svc, mock := newGatewayService(t, time.Now())

	// The payment was opened with cs_1; a paid session for some other
	// payment must not settle it.
	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(sessionPayment(9, models.PaymentPending, "cs_1"))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	_, err := svc.VerifyCheckout(context.Background(), principal, 9, "cs_2")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for foreign session, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyCheckoutWithoutSessionRejected(t *testing.T) {
	svc, mock := newGatewayService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").WithArgs(int64(9)).
		WillReturnRows(sessionPayment(9, models.PaymentPending, ""))

	principal := domain.Principal{UserID: 11, Role: domain.RoleUser}
	_, err := svc.VerifyCheckout(context.Background(), principal, 9, "cs_1")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error when no checkout was opened, got %v", err)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, _ := newGatewayService(t, time.Now())

	payload := completedEvent(t, "cs_1", "ref_1")
	err := svc.HandleWebhook(payload, "deadbeef")
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error for bad signature, got %v", err)
	}

	err = svc.HandleWebhook(payload, "")
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error for missing signature, got %v", err)
	}
}

func TestWebhookSettlesPayment(t *testing.T) {
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	svc, mock := newGatewayService(t, now)

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE gateway_session_id").WithArgs("cs_1").
		WillReturnRows(sessionPayment(9, models.PaymentPending, "cs_1"))
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentCompleted, models.PayMethodGateway, now, "ref_1", "ref_1", int64(9), models.PaymentCompleted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := completedEvent(t, "cs_1", "ref_1")
	if err := svc.HandleWebhook(payload, gateway.Sign(payload, testWebhookSecret)); err != nil {
		t.Fatalf("webhook error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	svc, mock := newGatewayService(t, time.Now())

	// Second delivery of the same event: the payment is already completed,
	// so no update statement runs at all.
	mock.ExpectQuery("SELECT (.+) FROM payments WHERE gateway_session_id").WithArgs("cs_1").
		WillReturnRows(sessionPayment(9, models.PaymentCompleted, "cs_1"))

	payload := completedEvent(t, "cs_1", "ref_1")
	if err := svc.HandleWebhook(payload, gateway.Sign(payload, testWebhookSecret)); err != nil {
		t.Fatalf("duplicate webhook error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookUnknownSessionIgnored(t *testing.T) {
	svc, mock := newGatewayService(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE gateway_session_id").WithArgs("cs_unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payload := completedEvent(t, "cs_unknown", "ref_x")
	if err := svc.HandleWebhook(payload, gateway.Sign(payload, testWebhookSecret)); err != nil {
		t.Fatalf("unknown session must not error, got %v", err)
	}
}
