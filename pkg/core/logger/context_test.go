package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withDefaultLogger(t *testing.T, l *zap.Logger) {
	t.Helper()
	original := defaultLogger
	defaultLogger = l
	t.Cleanup(func() { defaultLogger = original })
}

func TestGet(t *testing.T) {
	fallback := zap.NewNop()
	withDefaultLogger(t, fallback)

	t.Run("nil context returns default", func(t *testing.T) {
		assert.Same(t, fallback, Get(nil)) //nolint:staticcheck // nil context is part of the contract
	})

	t.Run("empty context returns default", func(t *testing.T) {
		assert.Same(t, fallback, Get(context.Background()))
	})

	t.Run("nil logger in context returns default", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerCtxKey, (*zap.Logger)(nil))
		assert.Same(t, fallback, Get(ctx))
	})

	t.Run("wrong type in context returns default", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerCtxKey, "not a logger")
		assert.Same(t, fallback, Get(ctx))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		custom := zap.NewNop()
		assert.Same(t, custom, Get(With(context.Background(), custom)))
	})
}

func TestWith_NilContext(t *testing.T) {
	custom := zap.NewNop()

	ctx := With(nil, custom) //nolint:staticcheck // nil context is part of the contract

	require.NotNil(t, ctx)
	assert.Same(t, custom, Get(ctx))
}

func TestWith_ChainedContexts(t *testing.T) {
	first := zap.NewNop()
	second := zap.NewNop()

	ctx1 := With(context.Background(), first)
	ctx2 := With(ctx1, second)

	assert.Same(t, first, Get(ctx1))
	assert.Same(t, second, Get(ctx2))
}

func TestWithFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := With(context.Background(), zap.New(core))

	ctx = WithFields(ctx, zap.String("request_id", "abc"))
	Get(ctx).Info("handled")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "abc", logs[0].ContextMap()["request_id"])
}
