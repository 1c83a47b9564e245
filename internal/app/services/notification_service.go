package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
)

// NotificationSender delivers notification intents to whatever pushes them to devices.
type NotificationSender interface {
	Send(ctx context.Context, intent models.NotificationIntent) error
}

// RedisNotificationSender enqueues intents as JSON on a redis list for the push worker.
type RedisNotificationSender struct {
	redis *redis.Client
	queue string
}

func NewRedisNotificationSender(redis *redis.Client, config *infrastructures.AppConfig) *RedisNotificationSender {
	return &RedisNotificationSender{
		redis: redis,
		queue: config.NOTIFICATION_QUEUE,
	}
}

func (s *RedisNotificationSender) Send(ctx context.Context, intent models.NotificationIntent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return s.redis.LPush(ctx, s.queue, payload).Err()
}
