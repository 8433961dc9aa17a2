package core

import (
	"time"

	"github.com/Sokol111/ecommerce-sales/pkg/core/config"
	"github.com/Sokol111/ecommerce-sales/pkg/core/health"
	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"go.uber.org/fx"
)

type coreOptions struct {
	appConfig          *config.AppConfig
	loggerConfig       *logger.Config
	configPaths        []string
	disableDotEnv      bool
	disableViperConfig bool
}

// Option configures the core module.
type Option func(*coreOptions)

// WithAppConfig provides a static AppConfig instead of reading environment variables.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(opts *coreOptions) {
		opts.appConfig = &cfg
	}
}

// WithLoggerConfig provides a static logger Config instead of reading viper.
func WithLoggerConfig(cfg logger.Config) Option {
	return func(opts *coreOptions) {
		opts.loggerConfig = &cfg
	}
}

// WithConfigFile reads configuration from paths instead of CONFIG_FILE.
func WithConfigFile(paths ...string) Option {
	return func(opts *coreOptions) {
		opts.configPaths = append(opts.configPaths, paths...)
	}
}

// WithoutEnvFile skips loading .env.
func WithoutEnvFile() Option {
	return func(opts *coreOptions) {
		opts.disableDotEnv = true
	}
}

// WithoutConfigFile skips loading any config file.
func WithoutConfigFile() Option {
	return func(opts *coreOptions) {
		opts.disableViperConfig = true
	}
}

// NewCoreModule provides config, logger and readiness.
//
//	// Production: environment + CONFIG_FILE
//	core.NewCoreModule()
//
//	// Tests: everything static
//	core.NewCoreModule(
//	    core.WithAppConfig(config.AppConfig{...}),
//	    core.WithLoggerConfig(logger.Config{...}),
//	    core.WithoutEnvFile(),
//	    core.WithoutConfigFile(),
//	)
func NewCoreModule(opts ...Option) fx.Option {
	cfg := &coreOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		fx.StartTimeout(time.Minute),
		fx.StopTimeout(time.Minute),

		dotEnvModule(cfg),
		viperModule(cfg),
		appConfigModule(cfg),
		loggerModule(cfg),
		health.NewReadinessModule(),
	)
}

func dotEnvModule(cfg *coreOptions) fx.Option {
	if cfg.disableDotEnv {
		return fx.Options()
	}
	return config.NewDotEnvModule()
}

func viperModule(cfg *coreOptions) fx.Option {
	switch {
	case cfg.disableViperConfig:
		return config.NewViperModule(config.WithoutConfigFile())
	case len(cfg.configPaths) > 0:
		return config.NewViperModule(config.WithConfigPath(cfg.configPaths...))
	default:
		return config.NewViperModule()
	}
}

func appConfigModule(cfg *coreOptions) fx.Option {
	if cfg.appConfig != nil {
		return config.NewAppConfigModule(config.WithAppConfig(*cfg.appConfig))
	}
	return config.NewAppConfigModule()
}

func loggerModule(cfg *coreOptions) fx.Option {
	if cfg.loggerConfig != nil {
		return logger.NewZapLoggingModule(logger.WithLoggerConfig(*cfg.loggerConfig))
	}
	return logger.NewZapLoggingModule()
}
