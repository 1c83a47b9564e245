package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeState is the lifecycle position of an issued code at a given instant.
type CodeState string

const (
	CodeStateIssued   CodeState = "ISSUED"
	CodeStateExpired  CodeState = "EXPIRED"
	CodeStateRedeemed CodeState = "REDEEMED"
)

// PendingRedemption is an issued, not yet confirmed redemption code.
// Consumed flips false -> true exactly once and never back.
type PendingRedemption struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OfferID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_pending_offer_code,priority:1" json:"offer_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Code       string     `gorm:"type:varchar(64);not null;uniqueIndex:uniq_pending_offer_code,priority:2" json:"code"`
	IssuedAt   time.Time  `gorm:"not null" json:"issued_at"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	Consumed   bool       `gorm:"not null" json:"consumed"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

func (p *PendingRedemption) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether at is on or past the deadline.
func (p *PendingRedemption) IsExpired(at time.Time) bool {
	return !at.Before(p.ExpiresAt)
}

func (p *PendingRedemption) State(at time.Time) CodeState {
	switch {
	case p.Consumed:
		return CodeStateRedeemed
	case p.IsExpired(at):
		return CodeStateExpired
	default:
		return CodeStateIssued
	}
}

type PendingRedemptionResponse struct {
	ID        uuid.UUID `json:"id"`
	OfferID   uuid.UUID `json:"offer_id"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	State     CodeState `json:"state"`
}

func NewPendingRedemptionResponse(p *PendingRedemption, at time.Time) PendingRedemptionResponse {
	return PendingRedemptionResponse{
		ID:        p.ID,
		OfferID:   p.OfferID,
		Code:      p.Code,
		IssuedAt:  p.IssuedAt,
		ExpiresAt: p.ExpiresAt,
		State:     p.State(at),
	}
}
