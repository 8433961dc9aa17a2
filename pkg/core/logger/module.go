package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/Sokol111/ecommerce-sales/pkg/core/config"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type loggerOptions struct {
	config *Config
}

// Option configures the logger module.
type Option func(*loggerOptions)

// WithLoggerConfig provides a static Config instead of reading the "logger" section.
func WithLoggerConfig(cfg Config) Option {
	return func(opts *loggerOptions) {
		opts.config = &cfg
	}
}

// NewZapLoggingModule provides *zap.Logger and zap.AtomicLevel and routes fx events through zap.
// Every entry carries the service name, version and environment.
func NewZapLoggingModule(opts ...Option) fx.Option {
	cfg := &loggerOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			provideConfig,
			provideLogger,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
}

func provideConfig(opts *loggerOptions, v *viper.Viper) (Config, error) {
	if opts.config != nil {
		return *opts.config, nil
	}
	return newConfig(v)
}

func provideLogger(lc fx.Lifecycle, conf Config, app config.AppConfig) (*zap.Logger, zap.AtomicLevel, error) {
	logger, level, err := newLogger(conf,
		zap.String("service", app.ServiceName),
		zap.String("version", app.ServiceVersion),
		zap.String("env", app.Environment),
	)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to create logger: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return ignoreSyncError(logger.Sync())
		},
	})

	return logger, level, nil
}

// ignoreSyncError drops the EINVAL/ENOTTY errors returned when syncing stderr on a terminal.
func ignoreSyncError(err error) error {
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && (errors.Is(pathErr.Err, syscall.EINVAL) || errors.Is(pathErr.Err, syscall.ENOTTY)) {
		return nil
	}
	return err
}
