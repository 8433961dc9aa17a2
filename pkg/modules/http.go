// Package modules groups the fx modules a service needs into a few entry points.
package modules

import (
	"github.com/Sokol111/ecommerce-sales/pkg/http/health"
	"github.com/Sokol111/ecommerce-sales/pkg/http/middleware"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"github.com/Sokol111/ecommerce-sales/pkg/validation"
	"go.uber.org/fx"
)

type httpOptions struct {
	serverConfig *server.Config
}

// HTTPOption configures the HTTP module.
type HTTPOption func(*httpOptions)

// WithServerConfig provides a static server Config (useful for tests).
func WithServerConfig(cfg server.Config) HTTPOption {
	return func(opts *httpOptions) {
		opts.serverConfig = &cfg
	}
}

// NewHTTPModule provides the server, the problem dispatcher, the gin engine with
// its middlewares, health routes and the request validator.
//
//	// Production - loads config from viper
//	modules.NewHTTPModule()
//
//	// Testing - with static config
//	modules.NewHTTPModule(
//	    modules.WithServerConfig(server.Config{...}),
//	)
func NewHTTPModule(opts ...HTTPOption) fx.Option {
	cfg := &httpOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		serverModule(cfg),
		problems.NewDispatcherModule(),
		middleware.NewGinModule(),
		health.NewHealthRoutesModule(),
		fx.Provide(validation.New),
	)
}

func serverModule(cfg *httpOptions) fx.Option {
	if cfg.serverConfig != nil {
		return server.NewHTTPServerModule(server.WithServerConfig(*cfg.serverConfig))
	}
	return server.NewHTTPServerModule()
}
