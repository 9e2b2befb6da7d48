package tracing

import (
	"context"
	"sync"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	tcr "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	mu sync.Mutex
	tp *trace.TracerProvider
)

// Init installs an OTLP exporter when a collector endpoint is configured.
// Without one the global provider stays noop and GetTracer hands out noop tracers.
func Init(appConfigs *configs.AppConfigs) {
	mu.Lock()
	defer mu.Unlock()
	if tp != nil {
		log.Warn().Msg("Tracing already initialized!")
		return
	}
	collectorURL := appConfigs.Configs.OtelCollectorEndpoint
	if collectorURL == "" {
		log.Info().Msg("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
		return
	}
	ctx := context.Background()
	exporter, err := otlptrace.New(ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(collectorURL),
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create OTLP trace exporter, tracing disabled")
		return
	}
	resources, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", appConfigs.Configs.ApplicationName),
			attribute.String("deployment.environment", appConfigs.Configs.ApplicationEnv),
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create OTLP resource, tracing disabled")
		return
	}

	samplingRatio := appConfigs.Configs.OtelSamplingRatio
	tp = trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(samplingRatio))),
		trace.WithBatcher(exporter),
		trace.WithResource(resources),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	log.Info().
		Str("collectorURL", collectorURL).
		Float64("samplingRatio", samplingRatio).
		Msg("Tracer initialized!")
}

// GetTracer returns a noop tracer until Init has installed a provider.
func GetTracer(name string) tcr.Tracer {
	mu.Lock()
	defer mu.Unlock()
	if tp == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return tp.Tracer(name)
}

func Shutdown(ctx context.Context) {
	mu.Lock()
	defer mu.Unlock()
	if tp == nil {
		return
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Tracer shutdown failed")
		return
	}
	tp = nil
	log.Info().Msg("Tracer shutdown complete")
}
