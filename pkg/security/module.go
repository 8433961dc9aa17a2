package security

import (
	"github.com/Sokol111/ecommerce-sales/pkg/security/basic"
	"go.uber.org/fx"
)

type securityOptions struct {
	basicConfig *basic.Config
	disable     bool
}

// SecurityOption configures the security module.
type SecurityOption func(*securityOptions)

// WithBasicConfig provides a static basic auth Config (useful for tests).
func WithBasicConfig(cfg basic.Config) SecurityOption {
	return func(opts *securityOptions) {
		opts.basicConfig = &cfg
	}
}

// WithoutSecurity leaves every route open.
func WithoutSecurity() SecurityOption {
	return func(opts *securityOptions) {
		opts.disable = true
	}
}

// NewSecurityModule provides HTTP Basic authentication with role rules.
//
//	// Production - users and rules from security.basic
//	security.NewSecurityModule()
//
//	// Testing - no authentication
//	security.NewSecurityModule(security.WithoutSecurity())
func NewSecurityModule(opts ...SecurityOption) fx.Option {
	cfg := &securityOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.disable {
		return fx.Options()
	}
	if cfg.basicConfig != nil {
		return basic.NewBasicAuthModule(basic.WithBasicConfig(*cfg.basicConfig))
	}
	return basic.NewBasicAuthModule()
}
