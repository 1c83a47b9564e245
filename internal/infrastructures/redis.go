package infrastructures

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient backs the notification queue and the shared rate limiter.
// A failed ping is logged, not fatal: both users degrade without redis.
func NewRedisClient(config *AppConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         config.REDIS_ADDRESS,
		Password:     config.REDIS_PASSWORD,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", config.REDIS_ADDRESS).Warn("redis unreachable, notifications and shared rate limits degraded")
	}

	return client
}
