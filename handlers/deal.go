package handlers

import (
	"net/http"
	"strconv"

	"launchboost-backend/models"

	"github.com/gin-gonic/gin"
)

// GetDeals returns approved, unexpired deals, featured listings first.
func (h *DealHandler) GetDeals(c *gin.Context) {
	now := h.now()

	query := h.DB.Model(&models.Deal{}).
		Where("status = ?", models.DealStatusApproved).
		Where("expires_at > ?", now)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("pricing_tier = ?", tier)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	var deals []models.Deal
	err := query.
		Order("is_featured DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&deals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deals": deals,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetDeal returns a single approved deal by slug with its remaining code count.
func (h *DealHandler) GetDeal(c *gin.Context) {
	slug := c.Param("slug")

	var deal models.Deal
	if err := h.DB.Where("slug = ? AND status = ?", slug, models.DealStatusApproved).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	var codesRemaining int64
	if deal.CodeType == "universal" {
		codesRemaining = int64(deal.TotalCodes - deal.CodesClaimed)
		if codesRemaining < 0 {
			codesRemaining = 0
		}
	} else {
		h.DB.Model(&models.DealCode{}).
			Where("deal_id = ? AND is_claimed = ?", deal.ID, false).
			Count(&codesRemaining)
	}

	c.JSON(http.StatusOK, gin.H{
		"deal":            deal,
		"codes_remaining": codesRemaining,
	})
}

// GetMyDeals returns the authenticated founder's own deals, any status.
func (h *DealHandler) GetMyDeals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var deals []models.Deal
	if err := h.DB.Where("founder_id = ?", userID).Order("created_at DESC").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, deals)
}
