package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Capacity failures
// are client errors: the request asked for more than the counter holds.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsCapacity(err):
		respondError(c, http.StatusBadRequest, "capacity_exceeded", err.Error(), nil)
	case domain.IsBelowMinimum(err):
		respondError(c, http.StatusBadRequest, "below_gateway_minimum", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsGateway(err):
		respondError(c, http.StatusBadGateway, "gateway_error", err.Error(), nil)
	default:
		log.Printf("[ERROR] request_id=%s unhandled: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
