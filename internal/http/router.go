package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	h "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/handlers"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	authed := middleware.RequireAuth(secret)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/_routes", h.RegisteredRoutes)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", authed, h.Me)

		trains := api.Group("/trains")
		trains.GET("", h.GetTrains)
		trains.GET("/:id", h.GetTrainByID)
		trains.POST("", authed, adminOnly, h.CreateTrain)
		trains.PUT("/:id", authed, adminOnly, h.UpdateTrain)
		trains.DELETE("/:id", authed, adminOnly, h.DeleteTrain)

		routes := api.Group("/routes")
		routes.GET("", h.GetRoutes)
		routes.GET("/search", h.GetRoutes)
		routes.GET("/:id", h.GetRouteByID)
		routes.POST("", authed, adminOnly, h.CreateRoute)
		routes.PUT("/:id", authed, adminOnly, h.UpdateRoute)
		routes.DELETE("/:id", authed, adminOnly, h.DeleteRoute)

		books := api.Group("/books")
		books.GET("", h.GetBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", authed, adminOnly, h.CreateBook)
		books.PUT("/:id", authed, adminOnly, h.UpdateBook)
		books.DELETE("/:id", authed, adminOnly, h.DeleteBook)
		books.POST("/:id/borrow", authed, h.BorrowBook)

		tickets := api.Group("/tickets", authed)
		tickets.POST("", h.BookTicket)
		tickets.GET("/my-tickets", h.GetMyTickets)
		tickets.GET("/:id", h.GetTicketByID)
		tickets.GET("/:id/e-ticket", h.GetTicketPDF)
		tickets.PUT("/:id/cancel", h.CancelTicket)
		tickets.PUT("/:id/complete", adminOnly, h.CompleteTicket)
		tickets.GET("/admin/all", adminOnly, h.GetAllTickets)
		tickets.GET("/admin/stats", adminOnly, h.GetTicketStats)

		loans := api.Group("/loans", authed)
		loans.POST("", h.CreateLoan)
		loans.PUT("/:id/return", h.ReturnLoan)
		loans.GET("/my", h.GetMyLoans)
		loans.GET("", adminOnly, h.GetAllLoans)

		payments := api.Group("/payments")
		// Webhook carries its own HMAC trust; everything else needs auth.
		payments.POST("/gateway/webhook", h.GatewayWebhook)
		payments.GET("/gateway/config", h.GatewayConfig)
		payments.POST("/gateway/checkout-session", authed, h.CreateCheckoutSession)
		payments.POST("/gateway/verify", authed, h.VerifyCheckoutSession)
		payments.POST("", authed, h.CreatePayment)
		payments.GET("", authed, adminOnly, h.GetAllPayments)
		payments.GET("/pending", authed, adminOnly, h.GetPendingPayments)
		payments.GET("/my", authed, h.GetMyPayments)
		payments.GET("/my/pending", authed, h.GetMyPendingPayments)
		payments.GET("/:id", authed, h.GetPaymentByID)
		payments.GET("/:id/receipt", authed, h.GetPaymentReceipt)
		payments.PUT("/:id/pay", authed, h.SettlePayment)
		payments.PUT("/:id/complete", authed, adminOnly, h.SettlePayment)
		payments.PUT("/:id/waive", authed, adminOnly, h.WaivePayment)

		feedback := api.Group("/feedback", authed)
		feedback.POST("", h.CreateFeedback)
		feedback.GET("", adminOnly, h.GetFeedback)

		users := api.Group("/users", authed, adminOnly)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	h.SetRouter(r)
	return r
}
