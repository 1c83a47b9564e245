package middlewares

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/pkg/ratelimit"
)

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// LimitByIP rate limits by client IP address
func (m *RateLimitMiddleware) LimitByIP(limit ratelimit.Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return m.handleRateLimit(c, ratelimit.Key("ip", getIPAddress(c)), limit)
	}
}

// LimitByActor rate limits per authenticated actor and scope, falling back to
// the IP address when the request is anonymous.
func (m *RateLimitMiddleware) LimitByActor(scope string, limit ratelimit.Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := CurrentActor(c)
		if err != nil {
			return m.handleRateLimit(c, ratelimit.Key(scope, "ip", getIPAddress(c)), limit)
		}
		return m.handleRateLimit(c, ratelimit.Key(scope, "actor", actor.ID.String()), limit)
	}
}

func (m *RateLimitMiddleware) handleRateLimit(c *fiber.Ctx, key string, limit ratelimit.Rate) error {
	allowed, info := m.limiter.Allow(c.UserContext(), key, limit)

	c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(info.Reset.Unix(), 10))

	if !allowed {
		return pkg.ErrorResponse(c, errors.NewTooManyRequestsError("Rate limit exceeded", info.Limit, info.Reset.Unix()))
	}

	return c.Next()
}

// getIPAddress prefers the first X-Forwarded-For hop, then X-Real-IP.
func getIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xrip := c.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	return c.IP()
}
