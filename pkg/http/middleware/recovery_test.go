package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		detail string
	}{
		{name: "string panic", value: "something broke", detail: "something broke"},
		{name: "error panic", value: errors.New("nil map write"), detail: "nil map write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)
			engine.GET("/panic", func(c *gin.Context) { panic(tt.value) })

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			doc := decodeProblem(t, w)
			assert.Equal(t, problems.BaseURI+"internal-server-error", doc.Type)
			assert.Equal(t, tt.detail, doc.Detail)
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, problems.SubError{Code: "PANIC", Message: tt.detail}, doc.Errors[0])
		})
	}
}

func TestPanicError(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, PanicError{Value: cause}, cause)
	assert.NoError(t, PanicError{Value: 42}.Unwrap())
	assert.Equal(t, "42", PanicError{Value: 42}.Error())
}
