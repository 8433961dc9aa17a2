package problems

import "go.uber.org/fx"

// NewDispatcherModule provides *Dispatcher. It needs a messages.Resolver.
func NewDispatcherModule() fx.Option {
	return fx.Provide(NewDispatcher)
}
