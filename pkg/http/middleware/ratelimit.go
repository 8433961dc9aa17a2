package middleware

import (
	"net/http"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// newRateLimitMiddleware creates a token bucket limiter shared by all non-probe requests.
func newRateLimitMiddleware(requestsPerSecond, burst int, throttler *logger.LogThrottler) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if isProbe(c) {
			c.Next()
			return
		}

		if !limiter.Allow() {
			throttler.Warn("rate-limit", "HTTP rate limit exceeded - rejecting request", requestFields(c)...)
			problems.Abort(c, problems.ProtocolFault{
				Status:   http.StatusTooManyRequests,
				Category: "RateLimitExceeded",
				Message:  "Rate limit exceeded, please try again later",
			})
			return
		}

		c.Next()
	}
}

// NewRateLimitMiddleware returns the rate limiter, or a nil handler when disabled.
func NewRateLimitMiddleware(serverConfig server.Config, log *zap.Logger, priority int) Middleware {
	config := serverConfig.RateLimit
	if !config.IsEnabled() {
		return Middleware{Priority: priority}
	}

	log.Info("HTTP rate limit initialized",
		zap.Int("requests-per-second", config.RequestsPerSecond),
		zap.Int("burst", config.Burst),
	)

	return Middleware{
		Priority: priority,
		Handler:  newRateLimitMiddleware(config.RequestsPerSecond, config.Burst, logger.NewLogThrottler(log, 0)),
	}
}
