package metrics

import (
	"context"

	appconfig "github.com/Sokol111/ecommerce-sales/pkg/core/config"
	"github.com/Sokol111/ecommerce-sales/pkg/core/health"
	"github.com/Sokol111/ecommerce-sales/pkg/http/middleware"
	otelconfig "github.com/Sokol111/ecommerce-sales/pkg/observability/config"
	otelinternal "github.com/Sokol111/ecommerce-sales/pkg/observability/internal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// PriorityHTTPMetrics runs right after the tracing middleware.
	PriorityHTTPMetrics = 6
	// PriorityProblemCounter wraps the problem middleware.
	PriorityProblemCounter = 25
)

type providerParams struct {
	fx.In
	Lc        fx.Lifecycle
	Log       *zap.Logger
	Cfg       otelconfig.Config
	AppCfg    appconfig.AppConfig
	Readiness health.ComponentManager
}

// NewMetricsModule provides a metric.MeterProvider exporting over OTLP, the
// otelgin request metrics and the problem document counter.
func NewMetricsModule() fx.Option {
	return fx.Options(
		fx.Provide(
			func(p providerParams) (metric.MeterProvider, error) {
				if !p.Cfg.Metrics.Enabled {
					p.Log.Info("metrics: disabled")
					return noop.NewMeterProvider(), nil
				}
				return provideMeterProvider(p)
			},
		),
		middleware.Provide(func(cfg otelconfig.Config, appCfg appconfig.AppConfig, mp metric.MeterProvider) middleware.Middleware {
			if !cfg.Metrics.Enabled {
				return middleware.Middleware{}
			}
			return middleware.Middleware{
				Priority: PriorityHTTPMetrics,
				Handler: otelgin.Middleware(appCfg.ServiceName,
					otelgin.WithMeterProvider(mp),
					otelgin.WithTracerProvider(tracenoop.NewTracerProvider()),
					otelgin.WithGinFilter(otelinternal.FilterPaths),
				),
			}
		}),
		middleware.Provide(func(cfg otelconfig.Config, mp metric.MeterProvider) (middleware.Middleware, error) {
			if !cfg.Metrics.Enabled {
				return middleware.Middleware{}, nil
			}
			handler, err := problemCounter(mp)
			if err != nil {
				return middleware.Middleware{}, err
			}
			return middleware.Middleware{Priority: PriorityProblemCounter, Handler: handler}, nil
		}),
		fx.Invoke(func(metric.MeterProvider) {}),
	)
}

func provideMeterProvider(p providerParams) (metric.MeterProvider, error) {
	provider, err := newMeterProvider(context.Background(), p.Cfg.OtelCollectorEndpoint, p.Cfg.Metrics.Interval, p.AppCfg)
	if err != nil {
		return nil, err
	}

	markReady := p.Readiness.AddComponent(otelconfig.MetricsComponentName)

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			otel.SetMeterProvider(provider)
			if err := otelruntime.Start(
				otelruntime.WithMeterProvider(provider),
				otelruntime.WithMinimumReadMemStatsInterval(otelconfig.DefaultRuntimeStatsInterval),
			); err != nil {
				p.Log.Warn("metrics: runtime instrumentation failed", zap.Error(err))
			}
			p.Log.Info("metrics initialized",
				zap.String("endpoint", p.Cfg.OtelCollectorEndpoint),
				zap.Duration("interval", p.Cfg.Metrics.Interval),
			)
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, otelconfig.DefaultShutdownTimeout)
			defer cancel()
			return provider.Shutdown(shutdownCtx)
		},
	})

	return provider, nil
}
