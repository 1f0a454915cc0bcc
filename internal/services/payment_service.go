package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// PaymentService is the payment ledger: it records obligations and settles
// them exactly once, whether the trigger is a user, an admin or the gateway.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	DB          *sql.DB
	RequestID   string

	// Now is overridable in tests.
	Now func() time.Time
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// CreateInput carries the fields for a user-initiated payment record.
type CreateInput struct {
	Amount        int64  `json:"amount"`
	PaymentType   string `json:"payment_type"`
	PaymentMethod string `json:"payment_method"`
	Description   string `json:"description"`
}

// Create records a new pending obligation. Payments are never created in
// the completed state.
func (s PaymentService) Create(principal domain.Principal, in CreateInput) (models.Payment, error) {
	if in.Amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}

	ptype := strings.TrimSpace(in.PaymentType)
	if ptype == "" {
		ptype = models.PayTypeMembership
	}
	if !models.ValidPaymentType(ptype) {
		return models.Payment{}, domain.ValidationError{Field: "payment_type", Msg: "unknown payment type"}
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = models.PayMethodCash
	}
	if !models.ValidPaymentMethod(method) {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}

	now := s.now()
	payment := models.Payment{
		UserID:        int64(principal.UserID),
		Amount:        in.Amount,
		PaymentType:   ptype,
		PaymentMethod: method,
		Status:        models.PaymentPending,
		Description:   strings.TrimSpace(in.Description),
		TransactionID: utils.NewTransactionID(),
		DueDate:       &now,
	}

	id, err := s.PaymentRepo.Insert(s.db(), payment)
	if err != nil {
		return models.Payment{}, err
	}
	payment.ID = id

	utils.LogEvent(s.RequestID, "payment", "create",
		fmt.Sprintf("payment_id=%d amount=%d type=%s", id, in.Amount, ptype))
	return payment, nil
}

// Settle completes a pending payment. Only the owning user or an admin may
// settle; a payment already completed cannot be settled again.
func (s PaymentService) Settle(principal domain.Principal, paymentID int64, method string) (models.Payment, error) {
	db := s.db()

	payment, err := s.PaymentRepo.GetByID(db, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if !principal.Owns(domain.ID(payment.UserID)) {
		return models.Payment{}, domain.UnauthorizedError{Msg: "this payment does not belong to you"}
	}
	if payment.Status == models.PaymentCompleted {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already completed"}
	}

	method = strings.TrimSpace(method)
	if method == "" {
		method = payment.PaymentMethod
	}
	if !models.ValidPaymentMethod(method) {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}

	paidDate := s.now()
	flipped, err := s.PaymentRepo.MarkCompleted(db, paymentID, method, paidDate, "")
	if err != nil {
		return models.Payment{}, err
	}
	if !flipped {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already completed"}
	}

	payment.Status = models.PaymentCompleted
	payment.PaymentMethod = method
	payment.PaidDate = &paidDate

	utils.LogEvent(s.RequestID, "payment", "settle",
		fmt.Sprintf("payment_id=%d method=%s", paymentID, method))
	return payment, nil
}

// Waive forgives a pending payment (admin only, enforced at the route).
func (s PaymentService) Waive(paymentID int64) (models.Payment, error) {
	db := s.db()

	payment, err := s.PaymentRepo.GetByID(db, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.Status != models.PaymentPending {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "only pending payments can be waived"}
	}

	flipped, err := s.PaymentRepo.MarkWaived(db, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if !flipped {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "only pending payments can be waived"}
	}

	payment.Status = models.PaymentWaived
	utils.LogEvent(s.RequestID, "payment", "waive", fmt.Sprintf("payment_id=%d", paymentID))
	return payment, nil
}

// GetOwned loads a payment the principal may see.
func (s PaymentService) GetOwned(principal domain.Principal, paymentID int64) (models.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(s.db(), paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if !principal.Owns(domain.ID(payment.UserID)) {
		return models.Payment{}, domain.UnauthorizedError{Msg: "this payment does not belong to you"}
	}
	return payment, nil
}

func (s PaymentService) ListAll(onlyPending bool) ([]models.Payment, error) {
	return s.PaymentRepo.ListAll(onlyPending)
}

func (s PaymentService) ListMine(principal domain.Principal, onlyPending bool) ([]models.Payment, error) {
	return s.PaymentRepo.ListByUser(int64(principal.UserID), onlyPending)
}
