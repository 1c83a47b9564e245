package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	owner := uuid.New()
	offer := &models.Offer{ID: uuid.New(), OwnerID: owner}

	tests := []struct {
		name  string
		actor models.Actor
		want  bool
	}{
		{"owning operator", models.Actor{ID: owner, Role: models.RoleVenueOperator}, true},
		{"other operator", models.Actor{ID: uuid.New(), Role: models.RoleVenueOperator}, false},
		{"admin", models.Actor{ID: uuid.New(), Role: models.RoleAdmin}, true},
		{"customer", models.Actor{ID: uuid.New(), Role: models.RoleUser}, false},
		{"customer who owns the offer", models.Actor{ID: owner, Role: models.RoleUser}, false},
		{"unknown role", models.Actor{ID: owner, Role: models.Role("SUPPORT")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, capability := range []Capability{CapabilityVerifyRedemption, CapabilityManageOffer, CapabilityViewRedemptions} {
				assert.Equal(t, tt.want, Can(tt.actor, capability, offer), capability)
			}
		})
	}
}

func TestCanViewAuditLog(t *testing.T) {
	assert.True(t, Can(models.Actor{ID: uuid.New(), Role: models.RoleAdmin}, CapabilityViewAuditLog, nil))
	assert.False(t, Can(models.Actor{ID: uuid.New(), Role: models.RoleVenueOperator}, CapabilityViewAuditLog, nil))
	assert.False(t, Can(models.Actor{ID: uuid.New(), Role: models.RoleUser}, CapabilityViewAuditLog, nil))
}

func TestConnectUserActor(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, models.RoleAdmin, (&models.ConnectUser{ID: id, GlobalRole: models.ConnectUserRoleAdmin}).Actor().Role)
	assert.Equal(t, models.RoleVenueOperator, (&models.ConnectUser{ID: id, GlobalRole: models.ConnectUserRoleVenueOperator}).Actor().Role)
	assert.Equal(t, models.RoleUser, (&models.ConnectUser{ID: id, GlobalRole: ""}).Actor().Role)
	assert.Equal(t, id, (&models.ConnectUser{ID: id}).Actor().ID)
}
