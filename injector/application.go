package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/gsalt-deals/internal/app/deliveries"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/services"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/safatanc/gsalt-deals/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

// Application represents the main application container for gsalt-deals
type Application struct {
	HealthHandler         *deliveries.HealthHandler
	MetricsHandler        *deliveries.MetricsHandler
	OfferHandler          *deliveries.OfferHandler
	RedemptionCodeHandler *deliveries.RedemptionCodeHandler
	RedemptionHandler     *deliveries.RedemptionHandler
	AuditHandler          *deliveries.AuditHandler
	RateLimitMiddleware   *middlewares.RateLimitMiddleware
	Housekeeper           *services.HousekeepingService
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	app.HealthHandler.RegisterRoutes(router)
	app.MetricsHandler.RegisterRoutes(router)

	api := router.Group("", app.RateLimitMiddleware.LimitByIP(ratelimit.PublicAPILimit))
	app.OfferHandler.RegisterRoutes(api)
	app.RedemptionCodeHandler.RegisterRoutes(api)
	app.RedemptionHandler.RegisterRoutes(api)
	app.AuditHandler.RegisterRoutes(api)
}

// NewRateLimiter picks the limiter backend named by RATE_LIMIT_BACKEND.
// The redis backend is shared across instances; memory is per process.
func NewRateLimiter(config *infrastructures.AppConfig, redis *redis.Client) ratelimit.RateLimiter {
	if config.RATE_LIMIT_BACKEND == "memory" {
		logrus.Warn("using in-process rate limiter; limits are not shared between instances")
		return ratelimit.NewMemoryRateLimiter()
	}
	return ratelimit.NewRedisRateLimiter(redis, "gsalt")
}
