package models

import (
	"time"

	"github.com/google/uuid"
)

const NotificationKindRedemptionVerified = "REDEMPTION_VERIFIED"

// NotificationIntent is handed to the notification sender; delivery is best effort.
type NotificationIntent struct {
	RecipientID uuid.UUID         `json:"recipient_id"`
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
