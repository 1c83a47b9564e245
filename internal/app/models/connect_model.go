package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConnectUserRoleUser          = "USER"
	ConnectUserRoleVenueOperator = "VENUE_OPERATOR"
	ConnectUserRoleAdmin         = "ADMIN"
)

type ConnectUser struct {
	ID              uuid.UUID  `json:"id,omitempty"`
	Email           string     `json:"email,omitempty"`
	Username        string     `json:"username,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	GlobalRole      string     `json:"global_role,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// Role is the closed set of capabilities the engine knows about.
type Role string

const (
	RoleUser          Role = "USER"
	RoleVenueOperator Role = "VENUE_OPERATOR"
	RoleAdmin         Role = "ADMIN"
)

// Actor is the authenticated caller of an engine operation.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (u *ConnectUser) Actor() Actor {
	role := RoleUser
	switch u.GlobalRole {
	case ConnectUserRoleAdmin:
		role = RoleAdmin
	case ConnectUserRoleVenueOperator:
		role = RoleVenueOperator
	}
	return Actor{ID: u.ID, Role: role}
}
