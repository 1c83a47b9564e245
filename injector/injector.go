//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/safatanc/gsalt-deals/internal/app/deliveries"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/services"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewAppConfig,
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewMetrics,
	infrastructures.GetLogger,
	NewRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewConnectService,
	services.NewAuditService,
	services.NewRedemptionLedgerService,
	services.NewOfferService,
	services.NewPendingRedemptionService,
	services.NewRedisNotificationSender,
	wire.Bind(new(services.NotificationSender), new(*services.RedisNotificationSender)),
	services.NewVerificationService,
	services.NewHousekeepingService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewMetricsHandler,
	deliveries.NewOfferHandler,
	deliveries.NewRedemptionCodeHandler,
	deliveries.NewRedemptionHandler,
	deliveries.NewAuditHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
