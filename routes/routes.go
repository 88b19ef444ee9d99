package routes

import (
	"time"

	"launchboost-backend/handlers"
	"launchboost-backend/middleware"
	"launchboost-backend/payments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, limiter middleware.SubmissionLimiter, checkout payments.Client) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	dealHandler := &handlers.DealHandler{DB: db, Limiter: limiter}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	paymentHandler := &handlers.PaymentHandler{DB: db, Checkout: checkout}

	// General API rate limit: 100 requests per minute per IP
	apiLimiter := middleware.NewRateLimiter(100, time.Minute)

	// Public routes
	api := r.Group("/api")
	api.Use(apiLimiter.Middleware())
	{
		// Auth routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Public deal routes
		api.GET("/deals", dealHandler.GetDeals)
		api.GET("/deals/:slug", dealHandler.GetDeal)

		// Payment provider webhook (signature-verified, no session auth)
		api.POST("/payments/webhook", paymentHandler.HandleWebhook)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)

		// Deal submission and founder dashboard
		protected.POST("/deals", dealHandler.SubmitDeal)
		protected.GET("/my/deals", dealHandler.GetMyDeals)

		// Code claiming
		protected.POST("/deals/:slug/claim", dealHandler.ClaimDeal)

		// Listing fee checkout
		protected.POST("/payments/checkout", paymentHandler.CreateCheckout)
		protected.GET("/my/payments", paymentHandler.GetMyPayments)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/deals", reviewHandler.GetDealsForReview)
		admin.PUT("/deals/:id/status", reviewHandler.UpdateDealStatus)
		admin.GET("/deals/transitions", reviewHandler.GetDealTransitions)
		admin.GET("/dashboard", reviewHandler.GetAdminDashboard)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
