package models

import "time"

// Payment statuses. Completed is terminal; payments are never created in it.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentWaived    = "waived"
)

// Payment types.
const (
	PayTypeLateFee    = "late_fee"
	PayTypeMembership = "membership"
	PayTypeLostBook   = "lost_book"
	PayTypeDamage     = "damage"
)

// Payment methods.
const (
	PayMethodCard    = "card"
	PayMethodUPI     = "upi"
	PayMethodCash    = "cash"
	PayMethodOnline  = "online"
	PayMethodGateway = "gateway"
)

// Payment is an obligation owed by a user, optionally tied to a loan.
type Payment struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	LoanID            *int64     `json:"loan_id"`
	Amount            int64      `json:"amount"`
	PaymentType       string     `json:"payment_type"`
	PaymentMethod     string     `json:"payment_method"`
	Status            string     `json:"status"`
	Description       string     `json:"description"`
	TransactionID     string     `json:"transaction_id"`
	DueDate           *time.Time `json:"due_date"`
	PaidDate          *time.Time `json:"paid_date"`
	GatewaySessionID  string     `json:"gateway_session_id,omitempty"`
	GatewayPaymentRef string     `json:"gateway_payment_ref,omitempty"`

	// Populated on admin reads.
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

func validIn(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ValidPaymentType reports whether t is a known payment type.
func ValidPaymentType(t string) bool {
	return validIn(t, PayTypeLateFee, PayTypeMembership, PayTypeLostBook, PayTypeDamage)
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	return validIn(m, PayMethodCard, PayMethodUPI, PayMethodCash, PayMethodOnline, PayMethodGateway)
}
