// Package middleware assembles the gin engine from prioritized middlewares.
//
// Every middleware that rejects a request records a problems.Failure with
// problems.Abort; the problem middleware renders it once the chain unwinds.
package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Middleware represents a gin middleware with priority. Lower runs earlier.
// A nil Handler is skipped.
type Middleware struct {
	Priority int
	Handler  gin.HandlerFunc
}

// Provide registers constructor's Middleware in the engine's middleware group.
func Provide(constructor any) fx.Option {
	return fx.Provide(
		fx.Annotate(
			constructor,
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}

var probePaths = []string{"/health/live", "/health/ready"}

func isProbe(c *gin.Context) bool {
	return slices.Contains(probePaths, c.Request.URL.Path)
}

// requestFields returns common request fields for logging.
func requestFields(c *gin.Context) []zap.Field {
	return []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
	}
}
