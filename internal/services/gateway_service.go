package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/gateway"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// GatewayService connects the payment ledger to the hosted-checkout
// provider. The user-initiated verify path and the asynchronous webhook
// both converge on the same conditional settle, so duplicate or racing
// confirmations cannot double-settle a payment.
type GatewayService struct {
	PaymentRepo repositories.PaymentRepository
	Client      *gateway.Client
	DB          *sql.DB
	RequestID   string

	MinAmount     int64
	WebhookSecret string
	FrontendURL   string

	// Now is overridable in tests.
	Now func() time.Time
}

func (s GatewayService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s GatewayService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s GatewayService) minAmount() int64 {
	if s.MinAmount > 0 {
		return s.MinAmount
	}
	return 50
}

// CheckoutResult is returned to the frontend to redirect the user.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckout opens a hosted checkout for a pending payment. Amounts
// below the gateway floor are rejected; they must be settled through a
// non-gateway method.
func (s GatewayService) CreateCheckout(ctx context.Context, principal domain.Principal, paymentID int64) (CheckoutResult, error) {
	db := s.db()

	payment, err := s.PaymentRepo.GetByID(db, paymentID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !principal.Owns(domain.ID(payment.UserID)) {
		return CheckoutResult{}, domain.UnauthorizedError{Msg: "this payment does not belong to you"}
	}
	if payment.Status == models.PaymentCompleted {
		return CheckoutResult{}, domain.ConflictError{Resource: "payment", Msg: "already completed"}
	}
	if payment.Amount < s.minAmount() {
		return CheckoutResult{}, domain.BelowMinimumError{Minimum: s.minAmount(), Amount: payment.Amount}
	}

	desc := payment.Description
	if desc == "" {
		desc = "Payment " + payment.TransactionID
	}

	session, err := s.Client.CreateCheckoutSession(ctx, gateway.CheckoutRequest{
		Amount:      payment.Amount,
		Currency:    "inr",
		Description: desc,
		Reference:   payment.TransactionID,
		SuccessURL:  s.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}&payment_id=" + fmt.Sprint(paymentID),
		CancelURL:   s.FrontendURL + "/payment-cancelled?payment_id=" + fmt.Sprint(paymentID),
	})
	if err != nil {
		return CheckoutResult{}, domain.GatewayError{Msg: "failed to create checkout session", Err: err}
	}

	if err := s.PaymentRepo.SetGatewaySession(db, paymentID, session.ID); err != nil {
		return CheckoutResult{}, err
	}

	utils.LogEvent(s.RequestID, "gateway", "checkout",
		fmt.Sprintf("payment_id=%d session_id=%s amount=%d", paymentID, session.ID, payment.Amount))
	return CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// VerifyCheckout is the user-initiated confirmation path after the gateway
// redirect. It pulls the session state and applies the idempotent settle.
func (s GatewayService) VerifyCheckout(ctx context.Context, principal domain.Principal, paymentID int64, sessionID string) (models.Payment, error) {
	db := s.db()

	payment, err := s.PaymentRepo.GetByID(db, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if !principal.Owns(domain.ID(payment.UserID)) {
		return models.Payment{}, domain.UnauthorizedError{Msg: "this payment does not belong to you"}
	}
	// The session must be the one opened for this payment, otherwise a paid
	// session for one payment could settle another.
	if payment.GatewaySessionID == "" || payment.GatewaySessionID != sessionID {
		return models.Payment{}, domain.ValidationError{Field: "session_id", Msg: "does not belong to this payment"}
	}

	session, err := s.Client.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return models.Payment{}, domain.GatewayError{Msg: "failed to retrieve checkout session", Err: err}
	}
	if session.Status != gateway.SessionPaid {
		return models.Payment{}, domain.GatewayError{Msg: "payment not completed at gateway, status: " + session.Status}
	}

	return s.settleFromGateway(payment, session.PaymentRef)
}

// HandleWebhook processes an asynchronous gateway event. Unverified
// payloads are rejected without touching any payment. Duplicate or
// out-of-order deliveries of the same confirmation are no-ops.
func (s GatewayService) HandleWebhook(payload []byte, signature string) error {
	ev, err := gateway.ParseEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		utils.LogEvent(s.RequestID, "gateway", "webhook", "rejected: "+err.Error())
		return domain.GatewayError{Msg: "webhook verification failed", Err: err}
	}

	switch ev.Type {
	case gateway.EventCheckoutCompleted:
		payment, err := s.PaymentRepo.GetBySessionID(s.db(), ev.Session.ID)
		if err != nil {
			if domain.IsNotFound(err) {
				utils.LogEvent(s.RequestID, "gateway", "webhook", "unknown session "+ev.Session.ID)
				return nil
			}
			return err
		}
		if _, err := s.settleFromGateway(payment, ev.Session.PaymentRef); err != nil {
			return err
		}
	case gateway.EventPaymentFailed:
		utils.LogEvent(s.RequestID, "gateway", "webhook", "payment failed for session "+ev.Session.ID)
	default:
		utils.LogEvent(s.RequestID, "gateway", "webhook", "unhandled event type "+ev.Type)
	}
	return nil
}

// settleFromGateway applies the terminal transition. The conditional
// update inside MarkCompleted makes repeated confirmations converge on one
// completed state with a single paid date.
func (s GatewayService) settleFromGateway(payment models.Payment, paymentRef string) (models.Payment, error) {
	db := s.db()

	if payment.Status == models.PaymentCompleted {
		return payment, nil
	}

	paidDate := s.now()
	flipped, err := s.PaymentRepo.MarkCompleted(db, payment.ID, models.PayMethodGateway, paidDate, paymentRef)
	if err != nil {
		return models.Payment{}, err
	}
	if flipped {
		payment.Status = models.PaymentCompleted
		payment.PaymentMethod = models.PayMethodGateway
		payment.PaidDate = &paidDate
		payment.GatewayPaymentRef = paymentRef
		utils.LogEvent(s.RequestID, "gateway", "settle",
			fmt.Sprintf("payment_id=%d ref=%s", payment.ID, paymentRef))
		return payment, nil
	}

	// Lost the race against the other confirmation path; reload the
	// already-settled record.
	return s.PaymentRepo.GetByID(db, payment.ID)
}
