package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	limiter := NewRedisRateLimiter(unreachableRedis(t), "test")

	allowed, info := limiter.Allow(context.Background(), "ip:10.0.0.1", PublicAPILimit)
	assert.True(t, allowed)
	assert.Equal(t, PublicAPILimit.Requests, info.Limit)
	assert.Equal(t, 0, info.Remaining)
	assert.True(t, info.Reset.After(time.Now()))
}

func TestRedisRateLimiterKeyPrefix(t *testing.T) {
	limiter := NewRedisRateLimiter(unreachableRedis(t), "gsalt")
	assert.Equal(t, "gsalt:ratelimit:issue:actor:1", limiter.formatKey("issue:actor:1"))
}
