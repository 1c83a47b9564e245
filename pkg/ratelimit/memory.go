package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery bounds how often Allow scans for idle buckets.
const sweepEvery = time.Minute

type bucket struct {
	limiter  *rate.Limiter
	window   time.Duration
	lastSeen time.Time
}

// MemoryRateLimiter keeps one token bucket per key in process memory.
// Limits are per instance; use RedisRateLimiter when running several replicas.
// A bucket idle for a full window has refilled completely, so it is dropped.
type MemoryRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// take returns the bucket for key, creating it on first use, and sweeps idle buckets.
func (l *MemoryRateLimiter) take(key string, limit Rate, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepEvery {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) >= b.window {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Every(limit.Window / time.Duration(limit.Requests))
		b = &bucket{
			limiter: rate.NewLimiter(every, limit.Requests),
			window:  limit.Window,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo) {
	now := l.now()
	lim := l.take(key, limit, now)
	allowed := lim.AllowN(now, 1)

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	return allowed, RateLimitInfo{
		Limit:     limit.Requests,
		Remaining: remaining,
		Reset:     now.Add(limit.Window),
	}
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

func (l *MemoryRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
