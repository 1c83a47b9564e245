package ratelimit

import (
	"context"
	"strings"
	"time"
)

// Rate admits Requests per Window for one key.
type Rate struct {
	Requests int
	Window   time.Duration
}

// RateLimitInfo is reported back to clients through the X-RateLimit headers.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	// Reset is the earliest time another request for the key is admitted.
	Reset time.Time
}

// RateLimiter is implemented by the redis sliding window and the in-process token buckets.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo)
	Reset(ctx context.Context, key string) error
}

// Key joins a scope and its subject into a limiter key, e.g. "walk-up:actor:<id>".
func Key(scope string, parts ...string) string {
	return strings.Join(append([]string{scope}, parts...), ":")
}

var (
	// PublicAPILimit applies per client IP to every API route (30 req/min)
	PublicAPILimit = Rate{Requests: 30, Window: time.Minute}

	// AuthenticatedAPILimit is for authenticated operator endpoints such as verification (60 req/min)
	AuthenticatedAPILimit = Rate{Requests: 60, Window: time.Minute}

	// IssueLimit caps how fast one customer can mint redemption codes (10 req/min)
	IssueLimit = Rate{Requests: 10, Window: time.Minute}

	// WalkUpLimit throttles code-less redemptions per operator (20 req/min)
	WalkUpLimit = Rate{Requests: 20, Window: time.Minute}
)
