package logger

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LogThrottler emits at most one WARN per key and interval. Calls in between are
// logged at DEBUG and counted; the count is attached to the next WARN as "suppressed".
type LogThrottler struct {
	log      *zap.Logger
	interval time.Duration
	keys     sync.Map // map[string]*throttleState
}

type throttleState struct {
	limiter    *rate.Limiter
	suppressed atomic.Int64
}

// NewLogThrottler returns a throttler writing to log. A zero interval means one minute.
func NewLogThrottler(log *zap.Logger, interval time.Duration) *LogThrottler {
	if interval == 0 {
		interval = time.Minute
	}
	return &LogThrottler{
		log:      log,
		interval: interval,
	}
}

// Warn logs msg at WARN if the key's budget allows it, otherwise at DEBUG.
func (t *LogThrottler) Warn(key string, msg string, fields ...zap.Field) {
	state := t.state(key)

	if !state.limiter.Allow() {
		state.suppressed.Add(1)
		t.log.Debug(msg, fields...)
		return
	}

	if n := state.suppressed.Swap(0); n > 0 {
		fields = append(fields, zap.Int64("suppressed", n))
	}
	t.log.Warn(msg, fields...)
}

func (t *LogThrottler) state(key string) *throttleState {
	if s, ok := t.keys.Load(key); ok {
		return s.(*throttleState)
	}
	s := &throttleState{limiter: rate.NewLimiter(rate.Every(t.interval), 1)}
	actual, _ := t.keys.LoadOrStore(key, s)
	return actual.(*throttleState)
}
