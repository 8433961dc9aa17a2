package middleware

import (
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Priorities of the built-in middlewares. Lower runs earlier, so a middleware
// sees the failures recorded by everything with a higher priority.
const (
	PriorityRequestID = 10
	PriorityLogger    = 20
	PriorityProblem   = 30
	PriorityRecovery  = 40
	PriorityRateLimit = 50
	PriorityBulkhead  = 60

	// PrioritySecurity is where authentication runs, after the limits.
	PrioritySecurity = 70
)

// NewGinModule provides *gin.Engine and http.Handler built from every
// Middleware in the "gin_mw" group:
//
//	10 - RequestID    - X-Request-ID and request logger fields
//	20 - Logger       - logs requests
//	30 - Problem      - renders failures as RFC 7807 documents
//	40 - Recovery     - turns panics into unhandled faults
//	50 - RateLimit    - limits requests/second
//	60 - HTTPBulkhead - limits concurrent requests
func NewGinModule() fx.Option {
	return fx.Options(
		Provide(func() Middleware {
			return Middleware{Priority: PriorityRequestID, Handler: requestIDMiddleware()}
		}),
		Provide(func() Middleware {
			return Middleware{Priority: PriorityLogger, Handler: loggerMiddleware()}
		}),
		Provide(func(d *problems.Dispatcher) Middleware {
			return Middleware{Priority: PriorityProblem, Handler: problemMiddleware(d)}
		}),
		Provide(func() Middleware {
			return Middleware{Priority: PriorityRecovery, Handler: recoveryMiddleware()}
		}),
		Provide(func(conf server.Config, log *zap.Logger) Middleware {
			return NewRateLimitMiddleware(conf, log, PriorityRateLimit)
		}),
		Provide(func(conf server.Config, log *zap.Logger) Middleware {
			return NewHTTPBulkheadMiddleware(conf, log, PriorityBulkhead)
		}),
		fx.Provide(provideGinAndHandler),
	)
}
