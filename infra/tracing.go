package infra

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const DEFAULT_SAMPLING_RATIO = 0.3

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
	shutdown          func(context.Context) error
}

func (r TelemetryRessources) Shutdown(ctx context.Context) error {
	if r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}

func NoopTelemetry() TelemetryRessources {
	return TelemetryRessources{
		TracerProvider: noop.NewTracerProvider(),
		Tracer:         noop.NewTracerProvider().Tracer("noop"),
	}
}

// InitTelemetry exports spans over OTLP/gRPC, the collector endpoint is read
// from the standard OTEL_EXPORTER_OTLP_* variables.
func InitTelemetry(ctx context.Context, configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "otlptracegrpc.New error")
	}

	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "resource.New error")
	}

	ratio := configuration.SamplingRatio
	if ratio <= 0 {
		ratio = DEFAULT_SAMPLING_RATIO
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	propagators := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tp.Tracer(configuration.ApplicationName),
		TextMapPropagator: propagators,
		shutdown:          tp.Shutdown,
	}, nil
}
