package basic

import (
	"github.com/Sokol111/ecommerce-sales/pkg/http/middleware"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type basicOptions struct {
	config *Config
}

// Option configures the basic auth module.
type Option func(*basicOptions)

// WithBasicConfig provides a static Config instead of reading "security.basic".
func WithBasicConfig(cfg Config) Option {
	return func(opts *basicOptions) {
		opts.config = &cfg
	}
}

// NewBasicAuthModule provides the CredentialStore and registers the
// authentication middleware at middleware.PrioritySecurity.
func NewBasicAuthModule(opts ...Option) fx.Option {
	cfg := &basicOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Module("basic-auth",
		fx.Supply(cfg),
		fx.Provide(
			provideConfig,
			provideStore,
			NewAuthenticator,
		),
		middleware.Provide(func(a *Authenticator) middleware.Middleware {
			return middleware.Middleware{Priority: middleware.PrioritySecurity, Handler: a.Handle}
		}),
	)
}

func provideConfig(opts *basicOptions, v *viper.Viper) (Config, error) {
	if opts.config != nil {
		conf := *opts.config
		conf.SetDefaults()
		return conf, conf.Validate()
	}
	return newConfig(v)
}

func provideStore(conf Config, log *zap.Logger) (CredentialStore, error) {
	store, err := NewBcryptStore(conf.Users)
	if err != nil {
		return nil, err
	}
	log.Info("basic auth initialized",
		zap.String("realm", conf.Realm),
		zap.Int("users", len(conf.Users)),
		zap.Strings("public-paths", conf.PublicPaths),
	)
	return store, nil
}
