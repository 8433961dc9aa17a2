package tracing

import (
	"context"

	appconfig "github.com/Sokol111/ecommerce-sales/pkg/core/config"
	otelinternal "github.com/Sokol111/ecommerce-sales/pkg/observability/internal"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTracerProvider samples root spans at sampleRatio and follows the parent's
// decision otherwise. Spans are batched to endpoint over OTLP/gRPC; with no
// endpoint they stay in-process so trace ids still reach the logs.
func newTracerProvider(ctx context.Context, endpoint string, sampleRatio float64, appCfg appconfig.AppConfig) (*sdktrace.TracerProvider, error) {
	res, err := otelinternal.NewResource(ctx, appCfg)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}

	if endpoint != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}
