package services

import "github.com/safatanc/gsalt-deals/internal/app/models"

// Capability is an action on an offer that needs more than an authenticated caller.
type Capability string

const (
	CapabilityVerifyRedemption Capability = "VERIFY_REDEMPTION"
	CapabilityManageOffer      Capability = "MANAGE_OFFER"
	CapabilityViewRedemptions  Capability = "VIEW_REDEMPTIONS"
	CapabilityViewAuditLog     Capability = "VIEW_AUDIT_LOG"
)

type capabilityRule func(actor models.Actor, offer *models.Offer) bool

func anyOffer(models.Actor, *models.Offer) bool { return true }

func ownsOffer(actor models.Actor, offer *models.Offer) bool {
	return offer != nil && offer.OwnerID == actor.ID
}

// capabilityRules is the whole authorization policy. Roles not listed hold no capability.
var capabilityRules = map[models.Role]map[Capability]capabilityRule{
	models.RoleAdmin: {
		CapabilityVerifyRedemption: anyOffer,
		CapabilityManageOffer:      anyOffer,
		CapabilityViewRedemptions:  anyOffer,
		CapabilityViewAuditLog:     anyOffer,
	},
	models.RoleVenueOperator: {
		CapabilityVerifyRedemption: ownsOffer,
		CapabilityManageOffer:      ownsOffer,
		CapabilityViewRedemptions:  ownsOffer,
	},
}

// Can reports whether actor holds capability on offer.
func Can(actor models.Actor, capability Capability, offer *models.Offer) bool {
	rules, ok := capabilityRules[actor.Role]
	if !ok {
		return false
	}
	rule, ok := rules[capability]
	if !ok {
		return false
	}
	return rule(actor, offer)
}
