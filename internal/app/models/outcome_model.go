package models

import (
	"time"

	"github.com/google/uuid"
)

// RedemptionReason is a stable, machine readable code attached to every
// denial or rejection. Presentation layers map it to user facing text.
type RedemptionReason string

const (
	ReasonNotActive            RedemptionReason = "NOT_ACTIVE"
	ReasonNotStarted           RedemptionReason = "NOT_STARTED"
	ReasonEnded                RedemptionReason = "ENDED"
	ReasonCapacityReached      RedemptionReason = "CAPACITY_REACHED"
	ReasonAlreadyRedeemedToday RedemptionReason = "ALREADY_REDEEMED_TODAY"
	ReasonInvalidCode          RedemptionReason = "INVALID_CODE"
	ReasonCodeExpired          RedemptionReason = "CODE_EXPIRED"
	ReasonOfferNotRedeemable   RedemptionReason = "OFFER_NOT_REDEEMABLE"
	ReasonRaceLost             RedemptionReason = "RACE_LOST"
	ReasonNotAuthorized        RedemptionReason = "NOT_AUTHORIZED"
)

type IssueStatus string

const (
	IssueStatusIssued IssueStatus = "ISSUED"
	IssueStatusDenied IssueStatus = "DENIED"
)

type IssueResult struct {
	Status              IssueStatus      `json:"status"`
	Reason              RedemptionReason `json:"reason,omitempty"`
	PendingRedemptionID *uuid.UUID       `json:"pending_redemption_id,omitempty"`
	Code                string           `json:"code,omitempty"`
	ExpiresAt           *time.Time       `json:"expires_at,omitempty"`
}

func IssueDenied(reason RedemptionReason) *IssueResult {
	return &IssueResult{Status: IssueStatusDenied, Reason: reason}
}

type VerifyStatus string

const (
	VerifyStatusVerified      VerifyStatus = "VERIFIED"
	VerifyStatusRejected      VerifyStatus = "REJECTED"
	VerifyStatusNotAuthorized VerifyStatus = "NOT_AUTHORIZED"
)

// VerifyResult is the terminal decision for one verification or walk-up call.
// Detail narrows OFFER_NOT_REDEEMABLE down to the guard reason.
type VerifyResult struct {
	Status     VerifyStatus       `json:"status"`
	Reason     RedemptionReason   `json:"reason,omitempty"`
	Detail     RedemptionReason   `json:"detail,omitempty"`
	Redemption *RedemptionSummary `json:"redemption,omitempty"`
}

func VerifyRejected(reason RedemptionReason) *VerifyResult {
	return &VerifyResult{Status: VerifyStatusRejected, Reason: reason}
}

func VerifyNotAuthorized() *VerifyResult {
	return &VerifyResult{Status: VerifyStatusNotAuthorized, Reason: ReasonNotAuthorized}
}

type RedemptionSummary struct {
	RedemptionID uuid.UUID        `json:"redemption_id"`
	OfferID      uuid.UUID        `json:"offer_id"`
	OfferTitle   string           `json:"offer_title"`
	UserID       uuid.UUID        `json:"user_id"`
	OperatorID   uuid.UUID        `json:"operator_id"`
	Method       RedemptionMethod `json:"method"`
	RedeemedAt   time.Time        `json:"redeemed_at"`
}

func NewRedemptionSummary(r *Redemption, offer *Offer) *RedemptionSummary {
	return &RedemptionSummary{
		RedemptionID: r.ID,
		OfferID:      r.OfferID,
		OfferTitle:   offer.Title,
		UserID:       r.UserID,
		OperatorID:   r.OperatorID,
		Method:       r.Method,
		RedeemedAt:   r.RedeemedAt,
	}
}
