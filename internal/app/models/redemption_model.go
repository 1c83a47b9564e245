package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RedemptionMethod string

const (
	RedemptionMethodCode   RedemptionMethod = "CODE"
	RedemptionMethodWalkUp RedemptionMethod = "WALK_UP"
)

// Redemption is an immutable ledger entry. RedeemedOn holds the calendar day
// (YYYY-MM-DD) in the configured redemption zone and backs the daily unique index.
type Redemption struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OfferID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_redemptions_offer_id;uniqueIndex:uniq_redemption_daily,priority:2" json:"offer_id"`
	UserID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uniq_redemption_daily,priority:1" json:"user_id"`
	OperatorID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"operator_id"`
	PendingRedemptionID *uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"pending_redemption_id,omitempty"`
	Code                *string          `gorm:"type:varchar(64)" json:"code,omitempty"`
	Method              RedemptionMethod `gorm:"type:varchar(16);not null" json:"method"`
	RedeemedOn          string           `gorm:"type:varchar(10);not null;uniqueIndex:uniq_redemption_daily,priority:3" json:"redeemed_on"`
	RedeemedAt          time.Time        `gorm:"not null" json:"redeemed_at"`
}

func (r *Redemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type WalkUpRedemptionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
