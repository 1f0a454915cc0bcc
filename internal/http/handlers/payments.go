package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/services"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// POST /api/payments
func CreatePayment(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var in services.CreateInput
	if !BindJSONOrError(c, &in) {
		return
	}

	payment, err := paymentService(c).Create(p, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GET /api/payments/my (own payments; /my/pending filters)
func GetMyPayments(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	payments, err := paymentService(c).ListMine(p, c.Query("pending") == "true")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/payments/my/pending
func GetMyPendingPayments(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	payments, err := paymentService(c).ListMine(p, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/payments/pending (admin)
func GetPendingPayments(c *gin.Context) {
	payments, err := paymentService(c).ListAll(true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/payments/:id
func GetPaymentByID(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}
	payment, err := paymentService(c).GetOwned(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

type settleRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// PUT /api/payments/:id/pay (owner) and /:id/complete (admin)
func SettlePayment(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req settleRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request payload", err.Error())
			return
		}
	}

	payment, err := paymentService(c).Settle(p, id, req.PaymentMethod)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// PUT /api/payments/:id/waive (admin)
func WaivePayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	payment, err := paymentService(c).Waive(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GET /api/payments (admin; /pending filters)
func GetAllPayments(c *gin.Context) {
	payments, err := paymentService(c).ListAll(c.Query("pending") == "true")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/payments/:id/receipt
func GetPaymentReceipt(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	payment, err := paymentService(c).GetOwned(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if payment.Status != models.PaymentCompleted {
		respondError(c, http.StatusConflict, "conflict", "only completed payments have a receipt", nil)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateReceipt(payment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ServePDF(c, pdfBytes, filename)
}
