package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/messages"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDispatcher(t *testing.T) *problems.Dispatcher {
	t.Helper()
	catalog, err := messages.NewCatalog(map[string]string{"RULE-1": "Rule one broken."})
	require.NoError(t, err)
	return problems.NewDispatcher(catalog)
}

// newTestEngine builds an engine with the problem and recovery middlewares plus extra.
func newTestEngine(t *testing.T, extra ...Middleware) *gin.Engine {
	t.Helper()
	mws := append([]Middleware{
		{Priority: PriorityProblem, Handler: problemMiddleware(newTestDispatcher(t))},
		{Priority: PriorityRecovery, Handler: recoveryMiddleware()},
	}, extra...)
	return newEngine(mws)
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) problems.Document {
	t.Helper()
	require.Equal(t, problems.ContentType, w.Header().Get("Content-Type"))
	var doc problems.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}
