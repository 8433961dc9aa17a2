package metrics

import (
	"context"
	"errors"
	"time"

	appconfig "github.com/Sokol111/ecommerce-sales/pkg/core/config"
	otelinternal "github.com/Sokol111/ecommerce-sales/pkg/observability/internal"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var errMissingEndpoint = errors.New("metrics: otel-collector-endpoint is required")

// newMeterProvider pushes every interval to endpoint over OTLP/gRPC. Unlike
// tracing there is no local mode: metrics without an exporter are dropped.
func newMeterProvider(ctx context.Context, endpoint string, interval time.Duration, appCfg appconfig.AppConfig) (*sdkmetric.MeterProvider, error) {
	if endpoint == "" {
		return nil, errMissingEndpoint
	}

	exp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := otelinternal.NewResource(ctx, appCfg)
	if err != nil {
		return nil, errors.Join(err, exp.Shutdown(ctx))
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	), nil
}
