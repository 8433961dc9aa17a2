package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// newHTTPBulkheadMiddleware limits concurrent requests. A request waits up to
// timeout for a slot before it is rejected with 503.
func newHTTPBulkheadMiddleware(maxConcurrent int, timeout time.Duration, throttler *logger.LogThrottler) gin.HandlerFunc {
	sem := semaphore.NewWeighted(int64(maxConcurrent))

	return func(c *gin.Context) {
		if isProbe(c) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := sem.Acquire(ctx, 1); err != nil {
			throttler.Warn("bulkhead", "HTTP bulkhead acquisition failed - rejecting request",
				append(requestFields(c), zap.Int("max-concurrent", maxConcurrent), zap.Error(err))...,
			)
			problems.Abort(c, problems.ProtocolFault{
				Status:   http.StatusServiceUnavailable,
				Category: "BulkheadFull",
				Message:  "Too many concurrent requests, please try again later",
			})
			return
		}
		defer sem.Release(1)

		c.Next()
	}
}

// NewHTTPBulkheadMiddleware returns the bulkhead, or a nil handler when disabled.
func NewHTTPBulkheadMiddleware(serverConfig server.Config, log *zap.Logger, priority int) Middleware {
	config := serverConfig.Bulkhead
	if !config.IsEnabled() {
		return Middleware{Priority: priority}
	}

	log.Info("HTTP bulkhead initialized",
		zap.Int("max-concurrent", config.MaxConcurrent),
		zap.Duration("timeout", config.Timeout),
	)

	return Middleware{
		Priority: priority,
		Handler:  newHTTPBulkheadMiddleware(config.MaxConcurrent, config.Timeout, logger.NewLogThrottler(log, 0)),
	}
}
