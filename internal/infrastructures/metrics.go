package infrastructures

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's prometheus collectors on a private registry.
type Metrics struct {
	registry             *prometheus.Registry
	RedemptionOutcomes   *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	PendingPurged        prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gsalt",
		Name:      "redemption_outcomes_total",
		Help:      "Issuance and verification decisions by operation and outcome.",
	}, []string{"operation", "outcome"})
	notificationFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gsalt",
		Name:      "notification_failures_total",
		Help:      "Notification intents that could not be handed to the sender.",
	})
	pendingPurged := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gsalt",
		Name:      "pending_redemptions_purged_total",
		Help:      "Expired, unconsumed redemption codes removed by housekeeping.",
	})
	registry.MustRegister(
		outcomes,
		notificationFailures,
		pendingPurged,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		registry:             registry,
		RedemptionOutcomes:   outcomes,
		NotificationFailures: notificationFailures,
		PendingPurged:        pendingPurged,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
