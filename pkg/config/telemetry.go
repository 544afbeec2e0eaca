package config

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/banahub/bayshore-backend-go/log"
	"github.com/banahub/bayshore-backend-go/version"
)

type Telemetry struct {
	provider *sdktrace.TracerProvider
}

func (t *Telemetry) Shutdown() {
	if err := t.provider.Shutdown(context.Background()); err != nil {
		log.Warn("error on telemetry shutdown", log.ErrorField(err))
	}
}

// SetupTelemetry initializes an OTLP trace exporter against
// TelemetryEndpoint and installs it as the global tracer provider.
func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(TelemetryEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("bayshore-backend"),
			semconv.ServiceVersion(version.Version),
		),
	)
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return &Telemetry{provider: provider}, nil
}
