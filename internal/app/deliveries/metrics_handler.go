package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
)

type MetricsHandler struct {
	metrics *infrastructures.Metrics
}

func NewMetricsHandler(metrics *infrastructures.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))
}
