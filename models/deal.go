package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealStatus string

const (
	DealStatusPendingReview DealStatus = "pending_review"
	DealStatusApproved      DealStatus = "approved"
	DealStatusRejected      DealStatus = "rejected"
	DealStatusExpired       DealStatus = "expired"
)

type PricingTier string

const (
	TierFree     PricingTier = "free"
	TierFeatured PricingTier = "featured"
	TierPro      PricingTier = "pro"
)

// AllowedCategories is the fixed category enum deals must belong to.
var AllowedCategories = []string{
	"AI & Machine Learning", "Analytics & Data", "Business & Finance",
	"Communication & Collaboration", "Design & Creative", "Developer Tools",
	"E-commerce & Retail", "Education & Learning", "Healthcare & Wellness",
	"HR & Recruiting", "Marketing & Growth", "Productivity & Organization",
	"Sales & CRM", "Security & Privacy", "Social & Community",
}

// IsValidCategory reports whether category is in the allowed enum list.
func IsValidCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidTier reports whether tier is one of free, featured, pro.
func IsValidTier(tier string) bool {
	switch PricingTier(tier) {
	case TierFree, TierFeatured, TierPro:
		return true
	}
	return false
}

// Deal is a submitted SaaS discount listing. Prices are stored in integer cents.
type Deal struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FounderID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"founder_id"`
	Founder                User           `gorm:"foreignKey:FounderID" json:"founder,omitempty"`
	ProductName            string         `gorm:"not null" json:"product_name"`
	ProductWebsite         string         `gorm:"not null" json:"product_website"`
	ProductLogoURL         string         `json:"product_logo_url"`
	Title                  string         `gorm:"not null" json:"title"`
	Slug                   string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description            string         `json:"description"`
	ShortDescription       string         `json:"short_description"`
	Category               string         `gorm:"index;not null" json:"category"`
	OriginalPrice          int            `gorm:"not null" json:"original_price"`
	DealPrice              int            `gorm:"not null" json:"deal_price"`
	DiscountPercentage     int            `gorm:"not null" json:"discount_percentage"`
	TotalCodes             int            `gorm:"not null" json:"total_codes"`
	CodesClaimed           int            `gorm:"default:0" json:"codes_claimed"`
	ExpiresAt              time.Time      `gorm:"not null" json:"expires_at"`
	Tags                   []string       `gorm:"serializer:json" json:"tags"`
	PricingTier            PricingTier    `gorm:"default:free" json:"pricing_tier"`
	Status                 DealStatus     `gorm:"default:pending_review;index" json:"status"`
	IsFeatured             bool           `gorm:"default:false" json:"is_featured"`
	FeaturedUntil          *time.Time     `json:"featured_until,omitempty"`
	DealType               string         `gorm:"default:discount" json:"deal_type"`
	CodeType               string         `json:"code_type"` // universal, unique
	RedemptionInstructions string         `json:"redemption_instructions"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DealTransitions defines the valid review status state machine.
var DealTransitions = map[DealStatus][]DealStatus{
	DealStatusPendingReview: {DealStatusApproved, DealStatusRejected},
	DealStatusApproved:      {DealStatusExpired},
	DealStatusRejected:      {},
	DealStatusExpired:       {},
}

// IsValidTransition checks if a review status transition is allowed.
func IsValidTransition(from, to DealStatus) bool {
	allowed, exists := DealTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
