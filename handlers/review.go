package handlers

import (
	"fmt"
	"net/http"
	"time"

	"launchboost-backend/models"
	"launchboost-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (h *ReviewHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// GetDealsForReview returns deals for the admin queue, optionally filtered by status.
func (h *ReviewHandler) GetDealsForReview(c *gin.Context) {
	query := h.DB.Preload("Founder")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var deals []models.Deal
	if err := query.Order("created_at DESC").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, deals)
}

// UpdateDealStatus moves a deal through the review state machine.
func (h *ReviewHandler) UpdateDealStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status models.DealStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var deal models.Deal
	if err := h.DB.Preload("Founder").Where("id = ?", id).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if !models.IsValidTransition(deal.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition from '%s' to '%s'", deal.Status, req.Status),
		})
		return
	}

	deal.Status = req.Status
	if err := h.DB.Save(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal status"})
		return
	}

	if deal.Founder.Email != "" {
		utils.SendDealReviewedEmail(deal.Founder.Email, deal.Founder.Name, deal.Title, string(req.Status))
	}

	c.JSON(http.StatusOK, deal)
}

// GetDealTransitions exposes the review state machine for the admin UI.
func (h *ReviewHandler) GetDealTransitions(c *gin.Context) {
	c.JSON(http.StatusOK, models.DealTransitions)
}

// GetAdminDashboard returns pre-computed marketplace stats for the admin console.
func (h *ReviewHandler) GetAdminDashboard(c *gin.Context) {
	var totalDeals int64
	h.DB.Model(&models.Deal{}).Count(&totalDeals)

	var pendingDeals int64
	h.DB.Model(&models.Deal{}).Where("status = ?", models.DealStatusPendingReview).Count(&pendingDeals)

	var approvedDeals int64
	h.DB.Model(&models.Deal{}).Where("status = ?", models.DealStatusApproved).Count(&approvedDeals)

	var totalUsers int64
	h.DB.Model(&models.User{}).Count(&totalUsers)

	var codesClaimed int64
	h.DB.Model(&models.DealCode{}).Where("is_claimed = ?", true).Count(&codesClaimed)

	var totalRevenue int64
	h.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusSucceeded).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	// Revenue over the last 7 days
	sevenDaysAgo := h.now().AddDate(0, 0, -7)
	var recentRevenue int64
	h.DB.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ?", models.PaymentStatusSucceeded, sevenDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue)

	var recentDeals []models.Deal
	h.DB.Preload("Founder").Order("created_at DESC").Limit(10).Find(&recentDeals)

	c.JSON(http.StatusOK, gin.H{
		"total_deals":    totalDeals,
		"pending_deals":  pendingDeals,
		"approved_deals": approvedDeals,
		"total_users":    totalUsers,
		"codes_claimed":  codesClaimed,
		"total_revenue":  totalRevenue,
		"recent_revenue": recentRevenue,
		"recent_deals":   recentDeals,
	})
}
