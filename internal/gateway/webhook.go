package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SignatureHeader carries the HMAC of the webhook payload.
const SignatureHeader = "X-Gateway-Signature"

// Webhook event types delivered by the gateway.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentFailed     = "payment.failed"
)

// WebhookEvent is the asynchronous confirmation delivered by the gateway.
// Events may arrive duplicated or out of order.
type WebhookEvent struct {
	Type    string          `json:"type"`
	Session CheckoutSession `json:"data"`
}

// Sign computes the hex HMAC-SHA256 of payload under secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the webhook signature in constant time.
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseEvent verifies the signature and decodes the event. Unverified
// payloads are rejected before any decoding happens.
func ParseEvent(payload []byte, signature, secret string) (*WebhookEvent, error) {
	if !VerifySignature(payload, signature, secret) {
		return nil, fmt.Errorf("webhook signature verification failed")
	}

	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}
