package middleware

import (
	"errors"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// problemMiddleware renders the first error recorded on the context as a
// problem document. Errors that are not a problems.Failure are unhandled faults.
func problemMiddleware(dispatcher *problems.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		first := c.Errors[0].Err
		var failure problems.Failure
		if !errors.As(first, &failure) {
			failure = problems.UnhandledFault{Cause: first}
		}

		doc := dispatcher.Dispatch(failure, c.Request.URL.Path)
		logFailure(c, doc, first)
		problems.Render(c, doc)
	}
}

func logFailure(c *gin.Context, doc *problems.Document, err error) {
	fields := append(requestFields(c),
		zap.Int("status", doc.Status),
		zap.String("type", doc.Type),
		zap.Error(err),
	)
	if len(c.Errors) > 1 {
		fields = append(fields, zap.Strings("suppressed", c.Errors[1:].Errors()))
	}

	log := logger.Get(c)
	if doc.Status >= 500 {
		log.Error("Request failed", fields...)
		return
	}
	log.Debug("Request rejected", fields...)
}
