package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBulkheadRouter(t *testing.T, maxConcurrent int, timeout time.Duration, handler gin.HandlerFunc) *gin.Engine {
	t.Helper()
	engine := newTestEngine(t, Middleware{
		Priority: PriorityBulkhead,
		Handler:  newHTTPBulkheadMiddleware(maxConcurrent, timeout, logger.NewLogThrottler(zap.NewNop(), 0)),
	})
	engine.GET("/test", handler)
	engine.GET("/health/ready", func(c *gin.Context) { c.String(http.StatusOK, "ready") })
	return engine
}

func TestHTTPBulkheadMiddleware(t *testing.T) {
	t.Run("allows requests within concurrency limit", func(t *testing.T) {
		engine := newBulkheadRouter(t, 5, 100*time.Millisecond, func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects requests when concurrency limit exceeded", func(t *testing.T) {
		const maxConcurrent = 2
		block := make(chan struct{})
		engine := newBulkheadRouter(t, maxConcurrent, 50*time.Millisecond, func(c *gin.Context) {
			<-block
			c.Status(http.StatusOK)
		})

		var wg sync.WaitGroup
		results := make([]int, 5)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.NewRecorder()
				engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
				results[i] = w.Code
			}()
		}

		time.Sleep(150 * time.Millisecond)
		close(block)
		wg.Wait()

		var ok, rejected int
		for _, code := range results {
			switch code {
			case http.StatusOK:
				ok++
			case http.StatusServiceUnavailable:
				rejected++
			}
		}
		assert.Equal(t, maxConcurrent, ok)
		assert.Equal(t, len(results)-maxConcurrent, rejected)
	})

	t.Run("renders a problem document on rejection", func(t *testing.T) {
		block := make(chan struct{})
		engine := newBulkheadRouter(t, 1, 20*time.Millisecond, func(c *gin.Context) {
			<-block
			c.Status(http.StatusOK)
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
		}()
		time.Sleep(20 * time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx))

		close(block)
		<-done

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		doc := decodeProblem(t, w)
		assert.Equal(t, problems.BaseURI+"service-unavailable", doc.Type)
		require.Len(t, doc.Errors, 1)
		assert.Equal(t, "BULKHEAD_FULL", doc.Errors[0].Code)
	})

	t.Run("releases the slot after completion", func(t *testing.T) {
		engine := newBulkheadRouter(t, 1, 100*time.Millisecond, func(c *gin.Context) { c.Status(http.StatusOK) })

		for range 3 {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("health probes bypass the bulkhead", func(t *testing.T) {
		block := make(chan struct{})
		engine := newBulkheadRouter(t, 1, 20*time.Millisecond, func(c *gin.Context) {
			<-block
			c.Status(http.StatusOK)
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
		}()
		time.Sleep(20 * time.Millisecond)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		close(block)
		<-done

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNewHTTPBulkheadMiddleware_Disabled(t *testing.T) {
	disabled := false
	conf := server.Config{Bulkhead: server.BulkheadConfig{Enabled: &disabled}}
	conf.SetDefaults()

	mw := NewHTTPBulkheadMiddleware(conf, zap.NewNop(), PriorityBulkhead)

	assert.Nil(t, mw.Handler)
}
