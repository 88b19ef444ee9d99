package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealCode is one redemption code row. A universal deal has a single row shared by
// every redeemer; a unique-codes deal has one row per code, consumed on claim.
type DealCode struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DealID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"deal_id"`
	Deal        Deal       `gorm:"foreignKey:DealID" json:"-"`
	Code        string     `gorm:"not null" json:"code"`
	IsUniversal bool       `gorm:"default:false" json:"is_universal"`
	IsClaimed   bool       `gorm:"default:false;index" json:"is_claimed"`
	ClaimedBy   *uuid.UUID `gorm:"type:uuid;index" json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (dc *DealCode) BeforeCreate(tx *gorm.DB) error {
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	return nil
}
