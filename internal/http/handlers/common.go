package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request payload", err.Error())
		return false
	}
	return true
}

// PathID parses the :id route parameter as a positive int64.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid id in path", nil)
		return 0, false
	}
	return id, true
}

// MustPrincipal aborts with 401 when the auth middleware did not run.
func MustPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return domain.Principal{}, false
	}
	return p, true
}

// ServePDF writes pdf bytes with an inline content disposition.
func ServePDF(c *gin.Context, pdfBytes []byte, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
