package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/services"
)

func loanService(c *gin.Context) services.LoanService {
	return services.LoanService{
		LoanRepo:         repositories.LoanRepository{},
		BookRepo:         repositories.BookRepository{},
		PaymentRepo:      repositories.PaymentRepository{},
		UserRepo:         repositories.UserRepository{},
		Inventory:        repositories.InventoryRepo{},
		RequestID:        middleware.GetRequestID(c),
		LoanDurationDays: cfg.LoanDurationDays,
		LateFeePerDay:    cfg.LateFeePerDay,
	}
}

type borrowRequest struct {
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}

// POST /api/loans. Body carries book_id; admins may pass user_id to issue
// the loan to another member.
func CreateLoan(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	var req borrowRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	loan, err := loanService(c).Borrow(p, req.BookID, req.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// POST /api/books/:id/borrow. Convenience route delegating to the loan
// engine; an empty body borrows for the caller.
func BorrowBook(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	bookID, ok := PathID(c)
	if !ok {
		return
	}

	var req borrowRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request payload", err.Error())
			return
		}
	}

	loan, err := loanService(c).Borrow(p, bookID, req.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// PUT /api/loans/:id/return
func ReturnLoan(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	result, err := loanService(c).Return(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/loans/my
func GetMyLoans(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	loans, err := loanService(c).ListMine(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans})
}

// GET /api/loans (admin)
func GetAllLoans(c *gin.Context) {
	loans, err := loanService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans})
}
