package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTransactionID returns a unique payment transaction identifier.
func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}

// NewLoanCode returns a unique loan identifier.
func NewLoanCode() string {
	return uuid.NewString()
}

// NewTicketCode returns a short, human-readable ticket code.
func NewTicketCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TKT" + raw[:10]
}
