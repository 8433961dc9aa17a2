// Package app composes the sales service from the shared modules.
package app

import (
	"github.com/Sokol111/ecommerce-sales/api"
	"github.com/Sokol111/ecommerce-sales/internal/sales"
	"github.com/Sokol111/ecommerce-sales/pkg/core"
	"github.com/Sokol111/ecommerce-sales/pkg/messages"
	"github.com/Sokol111/ecommerce-sales/pkg/modules"
	"github.com/Sokol111/ecommerce-sales/pkg/observability"
	"github.com/Sokol111/ecommerce-sales/pkg/security"
	"github.com/Sokol111/ecommerce-sales/pkg/swaggerui"
	"go.uber.org/fx"
)

type appOptions struct {
	core          []core.Option
	http          []modules.HTTPOption
	security      []security.SecurityOption
	observability []observability.Option
	messages      []messages.Option
}

// Option configures the application.
type Option func(*appOptions)

// WithCoreOptions passes options to core.NewCoreModule.
func WithCoreOptions(opts ...core.Option) Option {
	return func(o *appOptions) { o.core = append(o.core, opts...) }
}

// WithHTTPOptions passes options to modules.NewHTTPModule.
func WithHTTPOptions(opts ...modules.HTTPOption) Option {
	return func(o *appOptions) { o.http = append(o.http, opts...) }
}

// WithSecurityOptions passes options to security.NewSecurityModule.
func WithSecurityOptions(opts ...security.SecurityOption) Option {
	return func(o *appOptions) { o.security = append(o.security, opts...) }
}

// WithObservabilityOptions passes options to observability.NewObservabilityModule.
func WithObservabilityOptions(opts ...observability.Option) Option {
	return func(o *appOptions) { o.observability = append(o.observability, opts...) }
}

// WithMessagesOptions passes options to messages.NewMessagesModule after the
// built-in sales bundle.
func WithMessagesOptions(opts ...messages.Option) Option {
	return func(o *appOptions) { o.messages = append(o.messages, opts...) }
}

// NewSalesApp returns every option of the sales service.
func NewSalesApp(opts ...Option) fx.Option {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Options(
		core.NewCoreModule(o.core...),
		messages.NewMessagesModule(append([]messages.Option{messages.WithBundle(sales.Messages)}, o.messages...)...),
		modules.NewHTTPModule(o.http...),
		security.NewSecurityModule(o.security...),
		observability.NewObservabilityModule(o.observability...),
		swaggerui.NewSwaggerModule(swaggerui.SwaggerConfig{OpenAPIContent: api.OpenAPISpec}),
		sales.NewSalesModule(),
	)
}
