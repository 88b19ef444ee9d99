package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealClaim records that a user claimed a deal, independent of which code row
// they received. The composite unique index is what enforces one claim per
// user per deal for universal deals, where every claimer shares one code row.
type DealClaim struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DealID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deal_claims_deal_user" json:"deal_id"`
	Deal      Deal      `gorm:"foreignKey:DealID" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deal_claims_deal_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (dc *DealClaim) BeforeCreate(tx *gorm.DB) error {
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	return nil
}
