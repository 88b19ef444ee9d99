package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"launchboost-backend/config"
	"launchboost-backend/models"
	"launchboost-backend/payments"
	"launchboost-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	DB       *gorm.DB
	Checkout payments.Client
}

// CreateCheckout starts a payment-provider checkout session for a paid listing
// tier and records a pending payment row keyed by the session id. The row is
// marked succeeded by the webhook once the provider confirms the charge.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	uid := userID.(uuid.UUID)

	var req struct {
		Tier string `json:"tier" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	amount, ok := models.TierPrices[models.PricingTier(req.Tier)]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier. Must be one of: featured, pro"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	frontendURL := config.GetEnv("FRONTEND_URL", "http://localhost:3000")

	session, err := h.Checkout.CreateCheckoutSession(payments.CheckoutParams{
		Tier:          req.Tier,
		Amount:        amount,
		CustomerEmail: user.Email,
		ProductName:   fmt.Sprintf("LaunchBoost %s Listing", req.Tier),
		Description:   fmt.Sprintf("List your deal with %s placement and enhanced visibility.", req.Tier),
		SuccessURL:    frontendURL + "/dashboard/deals/new?payment=success",
		CancelURL:     frontendURL + "/dashboard/deals/new?payment=cancelled",
		Metadata: map[string]string{
			"user_id": uid.String(),
			"tier":    req.Tier,
			"type":    "listing_fee",
		},
	})
	if err != nil {
		log.Printf("Checkout session creation failed for user %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	payment := models.Payment{
		ID:              uuid.New(),
		UserID:          uid,
		StripeSessionID: session.ID,
		Amount:          amount,
		Currency:        "usd",
		Status:          models.PaymentStatusPending,
		PaymentType:     models.PaymentTypeListingFee,
		ListingTier:     models.PricingTier(req.Tier),
	}

	if err := h.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"url":        session.URL,
	})
}

// HandleWebhook verifies provider webhook events and marks payments succeeded
// when their checkout session completes.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	event, err := h.Checkout.ParseWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	result := h.DB.Model(&models.Payment{}).
		Where("stripe_session_id = ? AND status = ?", event.SessionID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusSucceeded)
	if result.Error != nil {
		log.Printf("Failed to mark payment succeeded for session %s: %v", event.SessionID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}
	if result.RowsAffected == 0 {
		// Unknown or already-processed session; acknowledge so the provider stops retrying.
		log.Printf("Webhook for unknown or already-processed session: %s", event.SessionID)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GetMyPayments lists the authenticated user's listing-fee payments.
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var userPayments []models.Payment
	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&userPayments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, userPayments)
}
