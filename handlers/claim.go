package handlers

import (
	"log"
	"net/http"

	"launchboost-backend/models"
	"launchboost-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimDeal hands out one discount code for an approved deal. Universal deals
// share a single code; unique-code deals consume one unclaimed row per claimer,
// decided by a conditional update on the claimed flag.
func (h *DealHandler) ClaimDeal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	uid := userID.(uuid.UUID)

	slug := c.Param("slug")

	var deal models.Deal
	if err := h.DB.Where("slug = ? AND status = ?", slug, models.DealStatusApproved).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	now := h.now()
	if !deal.ExpiresAt.After(now) {
		c.JSON(http.StatusGone, gin.H{"error": "This deal has expired"})
		return
	}

	// One claim per user per deal, for universal deals too. The claim row is
	// inserted up front so the unique index on (deal_id, user_id) decides
	// duplicates; a failed claim below releases it again.
	claim := models.DealClaim{ID: uuid.New(), DealID: deal.ID, UserID: uid}
	if err := h.DB.Create(&claim).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already claimed this deal"})
		return
	}
	releaseClaim := func() {
		if err := h.DB.Delete(&models.DealClaim{}, "id = ?", claim.ID).Error; err != nil {
			log.Printf("Failed to release claim %s for deal %s: %v", claim.ID, deal.ID, err)
		}
	}

	var code models.DealCode

	if deal.CodeType == "universal" {
		if deal.CodesClaimed >= deal.TotalCodes {
			releaseClaim()
			c.JSON(http.StatusGone, gin.H{"error": "All codes for this deal have been claimed"})
			return
		}
		if err := h.DB.Where("deal_id = ? AND is_universal = ?", deal.ID, true).First(&code).Error; err != nil {
			releaseClaim()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim code"})
			return
		}
	} else {
		if err := h.DB.Where("deal_id = ? AND is_claimed = ?", deal.ID, false).First(&code).Error; err != nil {
			releaseClaim()
			c.JSON(http.StatusGone, gin.H{"error": "All codes for this deal have been claimed"})
			return
		}

		// Losing the race to another claimer shows up as zero rows affected.
		result := h.DB.Model(&models.DealCode{}).
			Where("id = ? AND is_claimed = ?", code.ID, false).
			Updates(map[string]interface{}{
				"is_claimed": true,
				"claimed_by": uid,
				"claimed_at": now,
			})
		if result.Error != nil {
			releaseClaim()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim code"})
			return
		}
		if result.RowsAffected == 0 {
			releaseClaim()
			c.JSON(http.StatusConflict, gin.H{"error": "Code was claimed by another user. Please try again."})
			return
		}
	}

	if err := h.DB.Model(&models.Deal{}).Where("id = ?", deal.ID).
		Update("codes_claimed", gorm.Expr("codes_claimed + ?", 1)).Error; err != nil {
		log.Printf("Failed to increment claim count for deal %s: %v", deal.ID, err)
	}

	var claimer models.User
	if err := h.DB.Where("id = ?", uid).First(&claimer).Error; err == nil {
		utils.SendCodeClaimedEmail(claimer.Email, claimer.Name, deal.Title, code.Code)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"code":    code.Code,
		"deal": gin.H{
			"id":    deal.ID,
			"slug":  deal.Slug,
			"title": deal.Title,
		},
	})
}
