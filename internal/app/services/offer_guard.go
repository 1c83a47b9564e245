package services

import (
	"time"

	"github.com/safatanc/gsalt-deals/internal/app/models"
)

// GuardDecision is the result of an offer eligibility check.
type GuardDecision struct {
	Allowed bool
	Reason  models.RedemptionReason
}

var guardAllowed = GuardDecision{Allowed: true}

func guardDenied(reason models.RedemptionReason) GuardDecision {
	return GuardDecision{Allowed: false, Reason: reason}
}

// CheckRedeemable reports whether offer accepts redemptions at the given instant.
// The window is half open: StartsAt is inclusive, EndsAt is exclusive.
func CheckRedeemable(offer *models.Offer, at time.Time) GuardDecision {
	if !offer.Active {
		return guardDenied(models.ReasonNotActive)
	}
	if at.Before(offer.StartsAt) {
		return guardDenied(models.ReasonNotStarted)
	}
	if !at.Before(offer.EndsAt) {
		return guardDenied(models.ReasonEnded)
	}
	return guardAllowed
}

// CheckCapacity compares committed redemptions against the offer ceiling.
// Offers without a ceiling always pass.
func CheckCapacity(offer *models.Offer, currentRedemptionCount int64) GuardDecision {
	if offer.IsUnlimited() {
		return guardAllowed
	}
	if currentRedemptionCount >= int64(*offer.MaxRedemptions) {
		return guardDenied(models.ReasonCapacityReached)
	}
	return guardAllowed
}
