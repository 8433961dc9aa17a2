// Package config loads the "observability" section shared by tracing and metrics.
package config

import "time"

const (
	DefaultMetricsInterval = 10 * time.Second

	// DefaultSampleRatio samples every root trace.
	DefaultSampleRatio = 1.0

	// DefaultShutdownTimeout bounds flushing a provider on stop.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRuntimeStatsInterval is the minimum interval between runtime memory reads.
	DefaultRuntimeStatsInterval = time.Second
)

// Readiness components registered by the providers.
const (
	TracingComponentName = "tracing"
	MetricsComponentName = "metrics"
)

// Config is the "observability" section. Tracing and metrics export to the
// same collector.
type Config struct {
	OtelCollectorEndpoint string        `mapstructure:"otel-collector-endpoint"`
	Tracing               TracingConfig `mapstructure:"tracing"`
	Metrics               MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// SampleRatio is the fraction of root traces kept, in (0, 1].
	SampleRatio float64 `mapstructure:"sample-ratio"`
}

type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}
