package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	engine := gin.New(func(e *gin.Engine) { e.ContextWithFallback = true })
	engine.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), zap.New(core)))
		c.Next()
	})
	engine.Use(requestIDMiddleware())
	engine.GET("/test", func(c *gin.Context) {
		logger.Get(c).Info("handled")
		c.Status(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
		logs.TakeAll()
	})
}
