package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
)

const PaymentTypeListingFee = "listing_fee"

// Payment is a listing-fee checkout record. UsedForDealID is the reservation marker:
// once set, the payment cannot be claimed by another submission.
type Payment struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	StripeSessionID string         `gorm:"uniqueIndex" json:"stripe_session_id"`
	Amount          int64          `gorm:"not null" json:"amount"`
	Currency        string         `gorm:"default:usd" json:"currency"`
	Status          PaymentStatus  `gorm:"default:pending;index" json:"status"`
	PaymentType     string         `gorm:"default:listing_fee" json:"payment_type"`
	ListingTier     PricingTier    `gorm:"not null" json:"listing_tier"`
	UsedForDealID   *string        `gorm:"index" json:"used_for_deal_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TierPrices maps paid listing tiers to their checkout amount in cents.
var TierPrices = map[PricingTier]int64{
	TierFeatured: 1999,
	TierPro:      3999,
}
