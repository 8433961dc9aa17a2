package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type configOptions struct {
	static    *Config
	overrides []func(*Config)
}

// Option configures the observability config module.
type Option func(*configOptions)

// WithConfig provides a static Config instead of reading the "observability" section.
func WithConfig(cfg Config) Option {
	return func(opts *configOptions) {
		opts.static = &cfg
	}
}

// WithDisableTracing turns tracing off whatever the configuration says.
func WithDisableTracing() Option {
	return func(opts *configOptions) {
		opts.overrides = append(opts.overrides, func(c *Config) { c.Tracing.Enabled = false })
	}
}

// WithDisableMetrics turns metrics off whatever the configuration says.
func WithDisableMetrics() Option {
	return func(opts *configOptions) {
		opts.overrides = append(opts.overrides, func(c *Config) { c.Metrics.Enabled = false })
	}
}

// NewObservabilityConfigModule provides Config.
func NewObservabilityConfigModule(opts ...Option) fx.Option {
	o := &configOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Options(
		fx.Supply(o),
		fx.Provide(provideConfig),
	)
}

// provideConfig loads the section, fills defaults, then applies the overrides,
// so a disabled provider is never validated.
func provideConfig(opts *configOptions, v *viper.Viper, logger *zap.Logger) (Config, error) {
	cfg, err := loadConfig(opts, v)
	if err != nil {
		return cfg, err
	}

	cfg.setDefaults()
	for _, override := range opts.overrides {
		override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Info("loaded observability config",
		zap.Bool("tracing", cfg.Tracing.Enabled),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.String("endpoint", cfg.OtelCollectorEndpoint),
	)
	return cfg, nil
}

func loadConfig(opts *configOptions, v *viper.Viper) (Config, error) {
	var cfg Config
	if opts.static != nil {
		return *opts.static, nil
	}
	sub := v.Sub("observability")
	if sub == nil {
		return cfg, nil
	}
	if err := sub.UnmarshalExact(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load observability config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the providers cannot run with.
func (c Config) Validate() error {
	if c.Tracing.Enabled && (c.Tracing.SampleRatio <= 0 || c.Tracing.SampleRatio > 1) {
		return fmt.Errorf("observability.tracing.sample-ratio must be in (0, 1], got %v", c.Tracing.SampleRatio)
	}
	if c.Metrics.Enabled && c.OtelCollectorEndpoint == "" {
		return fmt.Errorf("observability.otel-collector-endpoint is required when metrics are enabled")
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = DefaultMetricsInterval
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = DefaultSampleRatio
	}
}
