package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Offer is a time-bounded, optionally capacity-limited deal owned by a venue.
// The redemption counter is never stored here; it is always derived from the ledger.
type Offer struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"venue_id"`
	OwnerID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title              string           `gorm:"type:varchar(255);not null" json:"title"`
	Description        *string          `json:"description,omitempty"`
	Active             bool             `gorm:"not null" json:"active"`
	StartsAt           time.Time        `gorm:"not null" json:"starts_at"`
	EndsAt             time.Time        `gorm:"not null" json:"ends_at"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty"`
	DiscountPercentage *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"discount_amount,omitempty"`
	Currency           *string          `gorm:"type:varchar(3)" json:"currency,omitempty"`
	CreatedBy          *uuid.UUID       `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"deleted_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsUnlimited reports whether the offer has no redemption ceiling.
func (o *Offer) IsUnlimited() bool {
	return o.MaxRedemptions == nil
}

type OfferCreateRequest struct {
	VenueID            string           `json:"venue_id" validate:"required,uuid"`
	OwnerID            string           `json:"owner_id" validate:"required,uuid"`
	Title              string           `json:"title" validate:"required,max=255"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Active             *bool            `json:"active,omitempty"`
	StartsAt           time.Time        `json:"starts_at" validate:"required"`
	EndsAt             time.Time        `json:"ends_at" validate:"required,gtfield=StartsAt"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty" validate:"omitempty,min=1"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	Currency           *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	CreatedBy          *string          `json:"created_by,omitempty" validate:"omitempty,uuid"`
}

type OfferUpdateRequest struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Active             *bool            `json:"active,omitempty"`
	StartsAt           *time.Time       `json:"starts_at,omitempty"`
	EndsAt             *time.Time       `json:"ends_at,omitempty"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty" validate:"omitempty,min=1"`
	ClearMaxRedemption bool             `json:"clear_max_redemptions,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
}
