package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"launchboost-backend/middleware"
	"launchboost-backend/models"
	"launchboost-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealHandler struct {
	DB      *gorm.DB
	Limiter middleware.SubmissionLimiter
	Now     func() time.Time
}

func (h *DealHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// MaxSubmissionBodyBytes is the request body ceiling for deal submissions (50KB).
const MaxSubmissionBodyBytes = 50000

const codeBatchSize = 1000

// requiredDealFields lists the submission fields that must be present, in the
// order they are checked. Numeric fields accept JSON numbers or numeric strings.
var requiredDealFields = []struct {
	name string
	kind string
}{
	{"productName", "string"},
	{"productWebsite", "string"},
	{"title", "string"},
	{"description", "string"},
	{"shortDescription", "string"},
	{"category", "string"},
	{"originalPrice", "number"},
	{"dealPrice", "number"},
	{"totalCodes", "number"},
	{"expiresAt", "string"},
	{"pricingTier", "string"},
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// parsePrice validates a price in major currency units within [0, 10000] and
// converts it to integer cents, rounding to the nearest cent.
func parsePrice(v interface{}) (int, bool) {
	f, ok := numericValue(v)
	if !ok || f < 0 || f > 10000 {
		return 0, false
	}
	return int(math.Round(f * 100)), true
}

// parseQuantity validates an integer quantity in [1, 10000].
func parseQuantity(v interface{}) (int, bool) {
	f, ok := numericValue(v)
	if !ok || f < 1 || f > 10000 {
		return 0, false
	}
	return int(f), true
}

// parseExpiry accepts RFC3339 or YYYY-MM-DD dates that are strictly in the
// future and less than 365 days out.
func parseExpiry(s string, now time.Time) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	maxFuture := now.Add(365 * 24 * time.Hour)
	if !t.After(now) || !t.Before(maxFuture) {
		return time.Time{}, false
	}
	return t, true
}

func validateTags(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var tags []string
	for _, rt := range raw {
		s, ok := rt.(string)
		if !ok {
			continue
		}
		s = utils.SanitizeText(s, 50)
		if s == "" {
			continue
		}
		tags = append(tags, s)
		if len(tags) == 10 {
			break
		}
	}
	return tags
}

type validatedCodes struct {
	Type  string
	Code  string
	Codes []string
}

// validateDiscountCodes accepts either {type: "universal", code} or
// {type: "unique", codes: [...]}. Codes are trimmed, uppercased and deduplicated.
func validateDiscountCodes(v interface{}) *validatedCodes {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}

	switch obj["type"] {
	case "universal":
		code, ok := obj["code"].(string)
		if !ok || !utils.ValidateDiscountCode(code) {
			return nil
		}
		return &validatedCodes{
			Type: "universal",
			Code: strings.ToUpper(strings.TrimSpace(code)),
		}
	case "unique":
		raw, ok := obj["codes"].([]interface{})
		if !ok || len(raw) == 0 {
			return nil
		}
		var valid []string
		for _, rc := range raw {
			s, ok := rc.(string)
			if !ok {
				continue
			}
			s = strings.ToUpper(strings.TrimSpace(s))
			if !utils.ValidateDiscountCode(s) {
				continue
			}
			valid = append(valid, s)
		}
		// The size ceiling applies to the submitted list, before duplicates
		// are dropped.
		if len(valid) == 0 || len(valid) > 10000 {
			return nil
		}
		seen := make(map[string]bool, len(valid))
		var codes []string
		for _, s := range valid {
			if seen[s] {
				continue
			}
			seen[s] = true
			codes = append(codes, s)
		}
		return &validatedCodes{Type: "unique", Codes: codes}
	}

	return nil
}

// SubmitDeal validates an untrusted deal submission, reserves a completed
// payment for paid listing tiers, and persists the deal plus its code rows.
func (h *DealHandler) SubmitDeal(c *gin.Context) {
	clientIP := c.ClientIP()

	userID, exists := c.Get("user_id")
	if !exists {
		log.Printf("Unauthorized deal submission attempt from IP: %s", clientIP)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	uid := userID.(uuid.UUID)

	if !h.Limiter.Allow(c.Request.Context(), uid.String(), clientIP) {
		log.Printf("Rate limited deal submission from user: %s, IP: %s", uid, clientIP)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many submissions. Please wait before submitting another deal.",
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxSubmissionBodyBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if len(body) > MaxSubmissionBodyBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}

	var dealData map[string]interface{}
	if err := json.Unmarshal(body, &dealData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	for _, f := range requiredDealFields {
		v, present := dealData[f.name]
		if !present || v == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing required field: %s", f.name)})
			return
		}
		switch f.kind {
		case "string":
			if _, ok := v.(string); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Field %s must be a string", f.name)})
				return
			}
		case "number":
			if _, ok := numericValue(v); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Field %s must be a valid number", f.name)})
				return
			}
		}
	}

	productName := utils.SanitizeText(dealData["productName"].(string), 100)
	title := utils.SanitizeText(dealData["title"].(string), 200)
	description := utils.SanitizeText(dealData["description"].(string), 5000)
	shortDescription := utils.SanitizeText(dealData["shortDescription"].(string), 500)

	redemptionInstructions := ""
	if s, ok := dealData["redemptionInstructions"].(string); ok {
		redemptionInstructions = utils.SanitizeText(s, 1000)
	}

	if productName == "" || title == "" || description == "" || shortDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product name, title, description, and short description cannot be empty",
		})
		return
	}

	productWebsite := dealData["productWebsite"].(string)
	if !utils.ValidateURL(productWebsite) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product website URL"})
		return
	}

	iconURL := ""
	if s, ok := dealData["iconUrl"].(string); ok && s != "" {
		if !utils.ValidateURL(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid icon URL"})
			return
		}
		iconURL = s
	}

	originalPrice, okOriginal := parsePrice(dealData["originalPrice"])
	dealPrice, okDeal := parsePrice(dealData["dealPrice"])
	if !okOriginal || !okDeal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pricing. Prices must be between $0 and $10,000"})
		return
	}
	if dealPrice >= originalPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deal price must be less than original price"})
		return
	}

	codes := validateDiscountCodes(dealData["discountCodes"])
	if codes == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid discount codes. Please provide either a valid universal code or a list of valid unique codes.",
		})
		return
	}

	// An invalid or out-of-range universal quantity falls back to the default
	// rather than rejecting the submission.
	var totalCodes int
	if codes.Type == "universal" {
		totalCodes = 1000
		if q, ok := parseQuantity(dealData["totalCodes"]); ok {
			totalCodes = q
		}
	} else {
		totalCodes = len(codes.Codes)
	}

	now := h.now()

	expiresAt, ok := parseExpiry(dealData["expiresAt"].(string), now)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiration date. Must be a future date within 1 year"})
		return
	}

	tags := validateTags(dealData["tags"])

	tier := dealData["pricingTier"].(string)
	if !models.IsValidTier(tier) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pricing tier. Must be one of: free, featured, pro"})
		return
	}

	// For paid tiers, reserve a completed payment. The conditional update on the
	// unset marker is what guarantees at most one submission consumes a payment.
	var reservedPayment *models.Payment
	var tempDealID string
	if tier == string(models.TierFeatured) || tier == string(models.TierPro) {
		var payment models.Payment
		err := h.DB.Where(
			"user_id = ? AND status = ? AND payment_type = ? AND listing_tier = ? AND used_for_deal_id IS NULL",
			uid, models.PaymentStatusSucceeded, models.PaymentTypeListingFee, tier,
		).Order("created_at DESC").First(&payment).Error
		if err != nil {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":            "Payment required for this listing tier. Please complete payment first.",
				"requires_payment": true,
			})
			return
		}

		if now.Sub(payment.CreatedAt) > 24*time.Hour {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":            "Payment session expired. Please make a new payment.",
				"requires_payment": true,
			})
			return
		}

		tempDealID = fmt.Sprintf("temp_%s_%d", uid, now.UnixMilli())
		result := h.DB.Model(&models.Payment{}).
			Where("id = ? AND used_for_deal_id IS NULL", payment.ID).
			Update("used_for_deal_id", tempDealID)
		if result.Error != nil || result.RowsAffected == 0 {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":            "Payment already used or expired. Please make a new payment.",
				"requires_payment": true,
			})
			return
		}
		reservedPayment = &payment
	}

	// Compensating action: a reservation taken for a submission that does not
	// commit must be released so the payment stays usable.
	releaseReservation := func() {
		if reservedPayment == nil {
			return
		}
		err := h.DB.Model(&models.Payment{}).
			Where("id = ? AND used_for_deal_id = ?", reservedPayment.ID, tempDealID).
			Update("used_for_deal_id", nil).Error
		if err != nil {
			log.Printf("Failed to release payment reservation %s: %v", reservedPayment.ID, err)
		}
	}

	category := dealData["category"].(string)
	if !models.IsValidCategory(category) {
		releaseReservation()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid category. Must be one of: %s", strings.Join(models.AllowedCategories, ", ")),
		})
		return
	}

	discountPercentage := int(math.Round(float64(originalPrice-dealPrice) / float64(originalPrice) * 100))
	if discountPercentage < 10 {
		releaseReservation()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount must be at least 10%"})
		return
	}

	isFeatureTier := tier == string(models.TierFeatured) || tier == string(models.TierPro)
	var featuredUntil *time.Time
	if isFeatureTier {
		featuredDays := 15
		if tier == string(models.TierPro) {
			featuredDays = 30
		}
		t := now.Add(time.Duration(featuredDays) * 24 * time.Hour)
		featuredUntil = &t
	}

	// Timestamp suffix for uniqueness. A collision is still rejected outright
	// rather than retried with a new suffix.
	slug := utils.GenerateSlug(title) + "-" + strconv.FormatInt(now.UnixMilli(), 10)

	var existingDeal models.Deal
	if err := h.DB.Select("id").Where("slug = ?", slug).First(&existingDeal).Error; err == nil {
		releaseReservation()
		c.JSON(http.StatusConflict, gin.H{
			"error": "A deal with this title already exists. Please use a different title.",
		})
		return
	}

	deal := models.Deal{
		ID:                     uuid.New(),
		FounderID:              uid,
		ProductName:            productName,
		ProductWebsite:         productWebsite,
		ProductLogoURL:         iconURL,
		Title:                  title,
		Slug:                   slug,
		Description:            description,
		ShortDescription:       shortDescription,
		Category:               category,
		OriginalPrice:          originalPrice,
		DealPrice:              dealPrice,
		DiscountPercentage:     discountPercentage,
		TotalCodes:             totalCodes,
		ExpiresAt:              expiresAt,
		Tags:                   tags,
		PricingTier:            models.PricingTier(tier),
		Status:                 models.DealStatusPendingReview,
		IsFeatured:             isFeatureTier,
		FeaturedUntil:          featuredUntil,
		DealType:               "discount",
		CodeType:               codes.Type,
		RedemptionInstructions: redemptionInstructions,
	}

	if err := h.DB.Create(&deal).Error; err != nil {
		releaseReservation()
		log.Printf("Failed to insert deal for user %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit deal"})
		return
	}

	// Code row insertion is best-effort: a failure is logged and stops further
	// batches, but the deal itself stands.
	if codes.Type == "universal" {
		code := models.DealCode{
			ID:          uuid.New(),
			DealID:      deal.ID,
			Code:        codes.Code,
			IsUniversal: true,
		}
		if err := h.DB.Create(&code).Error; err != nil {
			log.Printf("Failed to insert universal code for deal %s: %v", deal.ID, err)
		}
	} else {
		records := make([]models.DealCode, len(codes.Codes))
		for i, code := range codes.Codes {
			records[i] = models.DealCode{
				ID:     uuid.New(),
				DealID: deal.ID,
				Code:   code,
			}
		}
		for i := 0; i < len(records); i += codeBatchSize {
			end := i + codeBatchSize
			if end > len(records) {
				end = len(records)
			}
			batch := records[i:end]
			if err := h.DB.Create(&batch).Error; err != nil {
				log.Printf("Failed to insert code batch %d for deal %s: %v", i/codeBatchSize+1, deal.ID, err)
				break
			}
		}
	}

	// Swap the temporary reservation marker for the real deal id.
	if reservedPayment != nil {
		err := h.DB.Model(&models.Payment{}).
			Where("id = ? AND used_for_deal_id = ?", reservedPayment.ID, tempDealID).
			Update("used_for_deal_id", deal.ID.String()).Error
		if err != nil {
			log.Printf("Failed to finalize payment reservation %s: %v", reservedPayment.ID, err)
		}
	}

	var founder models.User
	if err := h.DB.Where("id = ?", uid).First(&founder).Error; err == nil {
		utils.SendDealSubmittedEmail(founder.Email, founder.Name, deal.Title)
	}

	log.Printf("Deal submitted: id=%s user=%s tier=%s ip=%s", deal.ID, uid, tier, clientIP)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"deal": gin.H{
			"id":           deal.ID,
			"slug":         deal.Slug,
			"title":        deal.Title,
			"status":       deal.Status,
			"pricing_tier": deal.PricingTier,
			"created_at":   deal.CreatedAt,
		},
		"message": "Deal submitted successfully for review",
	})
}
