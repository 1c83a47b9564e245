package infrastructures

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracing installs an OTLP/HTTP tracer provider when an endpoint is configured.
// Without one the global no-op provider stays in place. The returned func flushes spans.
func InitTracing(ctx context.Context, config *AppConfig) func(context.Context) error {
	if config.OTEL_ENDPOINT == "" {
		return func(context.Context) error { return nil }
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(config.OTEL_ENDPOINT))
	if err != nil {
		logrus.Errorf("failed to create otlp exporter: %v", err)
		return func(context.Context) error { return nil }
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}
