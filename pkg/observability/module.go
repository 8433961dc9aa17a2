// Package observability wires OpenTelemetry tracing and metrics into the gin engine.
//
//	// tracing and metrics from the "observability" config section
//	observability.NewObservabilityModule()
//
//	// tests
//	observability.NewObservabilityModule(
//	    observability.WithoutTracing(),
//	    observability.WithoutMetrics(),
//	)
package observability

import (
	"github.com/Sokol111/ecommerce-sales/pkg/observability/config"
	"github.com/Sokol111/ecommerce-sales/pkg/observability/metrics"
	"github.com/Sokol111/ecommerce-sales/pkg/observability/tracing"
	"go.uber.org/fx"
)

// Option configures the observability module.
type Option = config.Option

// WithConfig supplies a static Config instead of reading viper.
func WithConfig(cfg config.Config) Option {
	return config.WithConfig(cfg)
}

// WithoutTracing disables tracing regardless of configuration.
func WithoutTracing() Option {
	return config.WithDisableTracing()
}

// WithoutMetrics disables metrics regardless of configuration.
func WithoutMetrics() Option {
	return config.WithDisableMetrics()
}

// NewObservabilityModule provides the tracer and meter providers and their
// gin middlewares.
func NewObservabilityModule(opts ...Option) fx.Option {
	return fx.Options(
		config.NewObservabilityConfigModule(opts...),
		tracing.NewTracingModule(),
		metrics.NewMetricsModule(),
	)
}
