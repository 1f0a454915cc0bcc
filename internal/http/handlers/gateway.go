package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/gateway"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/services"
)

func gatewayService(c *gin.Context) services.GatewayService {
	return services.GatewayService{
		PaymentRepo:   repositories.PaymentRepository{},
		Client:        gatewayClient,
		RequestID:     middleware.GetRequestID(c),
		MinAmount:     cfg.GatewayMinAmount,
		WebhookSecret: cfg.GatewayWebhookSecret,
		FrontendURL:   cfg.FrontendURL,
	}
}

type checkoutRequest struct {
	PaymentID int64 `json:"payment_id" binding:"required"`
}

// POST /api/payments/gateway/checkout-session
func CreateCheckoutSession(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := gatewayService(c).CreateCheckout(c.Request.Context(), p, req.PaymentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type verifyRequest struct {
	PaymentID int64  `json:"payment_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// POST /api/payments/gateway/verify
func VerifyCheckoutSession(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "session_id is required", nil)
		return
	}

	payment, err := gatewayService(c).VerifyCheckout(c.Request.Context(), p, req.PaymentID, req.SessionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// POST /api/payments/gateway/webhook. Unauthenticated: trust comes from the
// signature over the raw body, so the body must be read before binding.
func GatewayWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "failed to read webhook body", nil)
		return
	}

	signature := c.GetHeader(gateway.SignatureHeader)
	if err := gatewayService(c).HandleWebhook(payload, signature); err != nil {
		if domain.IsGateway(err) {
			respondError(c, http.StatusBadRequest, "invalid_signature", err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GET /api/payments/gateway/config
func GatewayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publishable_key": cfg.GatewayPublishableKey,
		"min_amount":      cfg.GatewayMinAmount,
		"currency":        "inr",
	})
}
