package config

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	envAppEnv            = "APP_ENV"
	envAppServiceName    = "APP_SERVICE_NAME"
	envAppServiceVersion = "APP_SERVICE_VERSION"
)

// AppConfig identifies the running service.
type AppConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment is the deployment environment, e.g. "local", "staging", "pro".
	Environment string
}

type appConfigOptions struct {
	config *AppConfig
}

// AppConfigOption configures the app config module.
type AppConfigOption func(*appConfigOptions)

// WithAppConfig provides a static AppConfig instead of reading environment variables.
func WithAppConfig(cfg AppConfig) AppConfigOption {
	return func(opts *appConfigOptions) {
		opts.config = &cfg
	}
}

// NewAppConfigModule provides AppConfig read from APP_ENV, APP_SERVICE_NAME and
// APP_SERVICE_VERSION. All three are required.
func NewAppConfigModule(opts ...AppConfigOption) fx.Option {
	cfg := &appConfigOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Module("appconfig",
		fx.Provide(func() (AppConfig, error) {
			if cfg.config != nil {
				return *cfg.config, nil
			}
			return newAppConfig()
		}),
		fx.Invoke(func(logger *zap.Logger) {
			logger.Info("loaded application configuration")
		}),
	)
}

func newAppConfig() (AppConfig, error) {
	env := os.Getenv(envAppEnv)
	if env == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppEnv)
	}

	serviceName := os.Getenv(envAppServiceName)
	if serviceName == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceName)
	}

	serviceVersion := os.Getenv(envAppServiceVersion)
	if serviceVersion == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceVersion)
	}

	return AppConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    env,
	}, nil
}
