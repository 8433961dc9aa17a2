package middleware

import (
	"time"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// loggerMiddleware logs every request except health probes.
func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProbe(c) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		fields := append(requestFields(c),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		)

		logger.Get(c).Debug("Incoming request", fields...)
	}
}
