package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// slidingWindow trims the window, admits the request when there is room and
// returns {admitted, count, oldest score}. Rejected requests are not recorded.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local admitted = 0
if count < limit then
	redis.call('ZADD', key, now, member)
	count = count + 1
	admitted = 1
end
redis.call('PEXPIRE', key, math.ceil(window / 1000000))

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
return {admitted, count, oldest[2] or ARGV[1]}
`)

// RedisRateLimiter shares one sliding window per key across all replicas.
type RedisRateLimiter struct {
	redis     *redis.Client
	keyPrefix string
}

func NewRedisRateLimiter(redis *redis.Client, keyPrefix string) *RedisRateLimiter {
	return &RedisRateLimiter{
		redis:     redis,
		keyPrefix: keyPrefix,
	}
}

func (l *RedisRateLimiter) formatKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", l.keyPrefix, key)
}

// Allow fails open: when redis is unreachable the request is admitted and a warning logged.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo) {
	now := time.Now()
	info := RateLimitInfo{Limit: limit.Requests, Reset: now.Add(limit.Window)}

	res, err := slidingWindow.Run(ctx, l.redis, []string{l.formatKey(key)},
		now.UnixNano(), limit.Window.Nanoseconds(), limit.Requests, uuid.NewString(),
	).Slice()
	if err != nil || len(res) != 3 {
		logrus.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
		return true, info
	}

	admitted, _ := res[0].(int64)
	count, _ := res[1].(int64)
	if oldest, ok := res[2].(string); ok {
		if nanos, err := strconv.ParseFloat(oldest, 64); err == nil {
			info.Reset = time.Unix(0, int64(nanos)).Add(limit.Window)
		}
	}

	info.Remaining = limit.Requests - int(count)
	if info.Remaining < 0 {
		info.Remaining = 0
	}
	return admitted == 1, info
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	return l.redis.Del(ctx, l.formatKey(key)).Err()
}
