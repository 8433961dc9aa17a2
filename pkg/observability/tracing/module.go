package tracing

import (
	"context"

	appconfig "github.com/Sokol111/ecommerce-sales/pkg/core/config"
	"github.com/Sokol111/ecommerce-sales/pkg/core/health"
	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/middleware"
	otelconfig "github.com/Sokol111/ecommerce-sales/pkg/observability/config"
	otelinternal "github.com/Sokol111/ecommerce-sales/pkg/observability/internal"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// PriorityTracing starts the server span before anything else runs.
	PriorityTracing = 5
	// PriorityTraceLogger runs after the request id is attached to the logger.
	PriorityTraceLogger = 15
)

type providerParams struct {
	fx.In
	Lc        fx.Lifecycle
	Log       *zap.Logger
	Cfg       otelconfig.Config
	AppCfg    appconfig.AppConfig
	Readiness health.ComponentManager
}

// NewTracingModule provides a trace.TracerProvider, the otelgin server span
// middleware and a middleware adding trace_id/span_id to the request logger.
// When tracing is disabled it provides a noop provider and no middleware.
func NewTracingModule() fx.Option {
	return fx.Options(
		fx.Provide(
			func(p providerParams) (trace.TracerProvider, error) {
				if !p.Cfg.Tracing.Enabled {
					p.Log.Info("tracing: disabled")
					return noop.NewTracerProvider(), nil
				}
				return provideTracerProvider(p)
			},
		),
		middleware.Provide(func(cfg otelconfig.Config, appCfg appconfig.AppConfig, tp trace.TracerProvider) middleware.Middleware {
			if !cfg.Tracing.Enabled {
				return middleware.Middleware{}
			}
			return middleware.Middleware{
				Priority: PriorityTracing,
				Handler: otelgin.Middleware(appCfg.ServiceName,
					otelgin.WithTracerProvider(tp),
					otelgin.WithPropagators(propagation.NewCompositeTextMapPropagator(
						propagation.TraceContext{},
						propagation.Baggage{},
					)),
					otelgin.WithMeterProvider(metricnoop.NewMeterProvider()),
					otelgin.WithGinFilter(otelinternal.FilterPaths),
				),
			}
		}),
		middleware.Provide(func(cfg otelconfig.Config) middleware.Middleware {
			if !cfg.Tracing.Enabled {
				return middleware.Middleware{}
			}
			return middleware.Middleware{Priority: PriorityTraceLogger, Handler: loggerHandler()}
		}),
		fx.Invoke(func(trace.TracerProvider) {}),
	)
}

func provideTracerProvider(p providerParams) (trace.TracerProvider, error) {
	tp, err := newTracerProvider(context.Background(), p.Cfg.OtelCollectorEndpoint, p.Cfg.Tracing.SampleRatio, p.AppCfg)
	if err != nil {
		return nil, err
	}
	if p.Cfg.OtelCollectorEndpoint == "" {
		p.Log.Info("tracing: no collector endpoint, spans are not exported")
	}

	markReady := p.Readiness.AddComponent(otelconfig.TracingComponentName)

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			otel.SetTracerProvider(tp)
			otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
				propagation.TraceContext{},
				propagation.Baggage{},
			))
			p.Log.Info("tracing initialized",
				zap.String("endpoint", p.Cfg.OtelCollectorEndpoint),
				zap.Float64("sample_ratio", p.Cfg.Tracing.SampleRatio),
			)
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, otelconfig.DefaultShutdownTimeout)
			defer cancel()
			return tp.Shutdown(shutdownCtx)
		},
	})

	return tp, nil
}

// loggerHandler adds the current trace and span ids to the request logger and
// tags the span with the problem type once the chain has unwound.
func loggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID, spanID := SpanIDs(c.Request.Context()); traceID != "" {
			ctx := logger.WithFields(c.Request.Context(),
				zap.String("trace_id", traceID),
				zap.String("span_id", spanID),
			)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
		annotateProblem(c)
	}
}
