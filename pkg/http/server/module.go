package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sokol111/ecommerce-sales/pkg/core/health"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serverOptions struct {
	config *Config
}

// Option configures the HTTP server module.
type Option func(*serverOptions)

// WithServerConfig provides a static Config instead of reading the "server" section.
func WithServerConfig(cfg Config) Option {
	return func(opts *serverOptions) {
		opts.config = &cfg
	}
}

// NewHTTPServerModule provides Config and runs an http.Server for the
// application's http.Handler.
func NewHTTPServerModule(opts ...Option) fx.Option {
	cfg := &serverOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(provideConfig),
		fx.Invoke(startHTTPServer),
	)
}

func provideConfig(opts *serverOptions, v *viper.Viper, log *zap.Logger) (Config, error) {
	if opts.config != nil {
		conf := *opts.config
		conf.SetDefaults()
		return conf, conf.Validate()
	}
	return newConfig(v, log)
}

// startHTTPServer binds the port during OnStart, so the application fails to
// start when the port is taken, then serves in the background. A serve error
// stops the application.
func startHTTPServer(lc fx.Lifecycle, log *zap.Logger, conf Config, handler http.Handler, readiness health.ComponentManager, shutdowner fx.Shutdowner) {
	markReady := readiness.AddComponent("http-server")
	srv := newServer(log, conf, handler)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			addr, err := srv.Listen()
			if err != nil {
				return fmt.Errorf("failed to listen on port %d: %w", conf.Port, err)
			}
			log.Info("HTTP server listening", zap.Stringer("addr", addr))
			markReady()

			go func() {
				if err := srv.Serve(); err != nil {
					log.Error("HTTP server failed, shutting down application", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
