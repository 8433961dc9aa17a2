package logger

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogThrottler_DefaultInterval(t *testing.T) {
	throttler := NewLogThrottler(zap.NewNop(), 0)

	require.NotNil(t, throttler)
	assert.Equal(t, time.Minute, throttler.interval)
}

func TestLogThrottler_Warn(t *testing.T) {
	t.Run("first call logs warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		throttler := NewLogThrottler(zap.New(core), time.Hour)

		throttler.Warn("rate-limit", "request rejected", zap.String("client_ip", "10.0.0.1"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "10.0.0.1", entry.ContextMap()["client_ip"])
	})

	t.Run("subsequent calls within interval log debug", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		throttler := NewLogThrottler(zap.New(core), time.Hour)

		throttler.Warn("rate-limit", "first")
		throttler.Warn("rate-limit", "second")
		throttler.Warn("rate-limit", "third")

		require.Equal(t, 3, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
		assert.Equal(t, zapcore.DebugLevel, logs.All()[1].Level)
		assert.Equal(t, zapcore.DebugLevel, logs.All()[2].Level)
	})

	t.Run("keys are throttled independently", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		throttler := NewLogThrottler(zap.New(core), time.Hour)

		throttler.Warn("rate-limit", "a")
		throttler.Warn("bulkhead", "b")

		assert.Equal(t, 2, logs.Len())
	})

	t.Run("reports suppressed count on next warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		throttler := NewLogThrottler(zap.New(core), 20*time.Millisecond)

		throttler.Warn("bulkhead", "full")
		throttler.Warn("bulkhead", "full")
		throttler.Warn("bulkhead", "full")

		time.Sleep(40 * time.Millisecond)
		throttler.Warn("bulkhead", "full")

		require.Equal(t, 2, logs.Len())
		assert.NotContains(t, logs.All()[0].ContextMap(), "suppressed")
		assert.EqualValues(t, 2, logs.All()[1].ContextMap()["suppressed"])
	})
}

func TestLogThrottler_ConcurrentAccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	throttler := NewLogThrottler(zap.New(core), time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			throttler.Warn("shared", "message")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, logs.Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
