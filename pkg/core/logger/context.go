package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

var loggerCtxKey = contextKey{}

// Get returns the logger stored in ctx, or the service default logger.
// A nil ctx is allowed.
func Get(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return defaultLogger
	}
	if ctxLogger, ok := ctx.Value(loggerCtxKey).(*zap.Logger); ok && ctxLogger != nil {
		return ctxLogger
	}
	return defaultLogger
}

// With returns a copy of ctx carrying logger.
func With(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithFields returns a copy of ctx whose logger has the extra fields attached.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return With(ctx, Get(ctx))
	}
	return With(ctx, Get(ctx).With(fields...))
}
