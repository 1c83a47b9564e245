package infrastructures

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetrics()
	metrics.RedemptionOutcomes.WithLabelValues("verify", "VERIFIED").Inc()
	metrics.NotificationFailures.Inc()

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gsalt_redemption_outcomes_total{operation="verify",outcome="VERIFIED"} 1`)
	assert.Contains(t, string(body), "gsalt_notification_failures_total 1")
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}
