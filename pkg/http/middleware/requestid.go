package middleware

import (
	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// requestIDMiddleware reuses the caller's request id or generates one, echoes it
// in the response and attaches it to the request logger.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Header(RequestIDHeader, id)
		ctx := logger.WithFields(c.Request.Context(), zap.String("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
