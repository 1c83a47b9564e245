package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestRedisNotificationSenderReportsUnavailableQueue(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	config := testConfig()
	config.NOTIFICATION_QUEUE = "test:notifications"
	sender := NewRedisNotificationSender(client, config)

	err := sender.Send(context.Background(), models.NotificationIntent{
		RecipientID: uuid.New(),
		Kind:        models.NotificationKindRedemptionVerified,
		CreatedAt:   testNow,
	})
	assert.Error(t, err)
}
