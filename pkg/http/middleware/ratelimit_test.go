package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/http/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRateLimitMiddleware(t *testing.T) {
	newRouter := func(t *testing.T) *gin.Engine {
		engine := newTestEngine(t, Middleware{
			Priority: PriorityRateLimit,
			Handler:  newRateLimitMiddleware(1, 2, logger.NewLogThrottler(zap.NewNop(), 0)),
		})
		engine.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
		engine.GET("/health/live", func(c *gin.Context) { c.String(http.StatusOK, "alive") })
		return engine
	}

	t.Run("rejects after burst", func(t *testing.T) {
		engine := newRouter(t)

		codes := make([]int, 0, 3)
		var last *httptest.ResponseRecorder
		for range 3 {
			last = httptest.NewRecorder()
			engine.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/test", nil))
			codes = append(codes, last.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
		doc := decodeProblem(t, last)
		assert.Equal(t, problems.BaseURI+"too-many-requests", doc.Type)
		require.Len(t, doc.Errors, 1)
		assert.Equal(t, "RATE_LIMIT_EXCEEDED", doc.Errors[0].Code)
	})

	t.Run("health probes bypass the limit", func(t *testing.T) {
		engine := newRouter(t)

		for range 5 {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestNewRateLimitMiddleware_Disabled(t *testing.T) {
	disabled := false
	conf := server.Config{RateLimit: server.RateLimitConfig{Enabled: &disabled}}
	conf.SetDefaults()

	mw := NewRateLimitMiddleware(conf, zap.NewNop(), PriorityRateLimit)

	assert.Equal(t, PriorityRateLimit, mw.Priority)
	assert.Nil(t, mw.Handler)
}
