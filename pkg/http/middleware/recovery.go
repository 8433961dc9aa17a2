package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PanicError is the cause of the fault recorded for a recovered panic.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func (e PanicError) Category() string {
	return "Panic"
}

// recoveryMiddleware turns a panic into an UnhandledFault.
func recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := append(requestFields(c),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				logger.Get(c).Error("Panic recovered", fields...)
				problems.Abort(c, problems.UnhandledFault{Cause: PanicError{Value: r}})
			}
		}()
		c.Next()
	}
}
