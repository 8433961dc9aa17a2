package basic

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/messages"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore map[string]Principal

func (s fakeStore) Authenticate(username, password string) (Principal, error) {
	p, ok := s[username]
	if !ok || password != "password" {
		return Principal{}, ErrBadCredentials
	}
	return p, nil
}

// newRouter renders failures the same way the problem middleware does.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := messages.NewCatalog(nil)
	require.NoError(t, err)
	dispatcher := problems.NewDispatcher(catalog)

	conf := Config{}
	conf.SetDefaults()
	auth := NewAuthenticator(conf, fakeStore{
		"user":  {Username: "user", Roles: []string{"USER"}},
		"admin": {Username: "admin", Roles: []string{"ADMIN"}},
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			f := c.Errors[0].Err.(problems.Failure)
			problems.Render(c, dispatcher.Dispatch(f, c.Request.URL.Path))
		}
	})
	r.Use(auth.Handle)

	whoami := func(c *gin.Context) {
		p, ok := PrincipalFromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, p.Username)
	}
	r.POST("/sales/calculate", whoami)
	r.GET("/profile", whoami)
	r.GET("/swagger-ui/index.html", whoami)
	r.GET("/v3/api-docs", whoami)
	r.GET("/v3/api-docs.yaml", whoami)
	r.GET("/v3/api-docsX", whoami)
	r.GET("/health/live", whoami)
	return r
}

func do(r *gin.Engine, method, target, username string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if username != "" {
		req.SetBasicAuth(username, "password")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) problems.Document {
	t.Helper()
	var doc problems.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func TestAuthenticator_MissingCredentials(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/sales/calculate", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Realm"`, w.Header().Get("WWW-Authenticate"))
	doc := decode(t, w)
	assert.Equal(t, problems.BaseURI+"unauthorized", doc.Type)
	assert.Equal(t, missingCredentialsMessage, doc.Detail)
	assert.Equal(t, "/sales/calculate", doc.Instance)
	assert.Empty(t, doc.Errors)
}

func TestAuthenticator_BadCredentials(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/sales/calculate", nil)
	req.SetBasicAuth("admin", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, badCredentialsMessage, decode(t, w).Detail)
}

func TestAuthenticator_MissingRole(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/sales/calculate", "user")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
	doc := decode(t, w)
	assert.Equal(t, problems.BaseURI+"forbidden", doc.Type)
	assert.Equal(t, accessDeniedMessage, doc.Detail)
}

func TestAuthenticator_Granted(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/sales/calculate", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	// no rule: any authenticated user
	w = do(r, http.MethodGet, "/profile", "user")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", w.Body.String())

	w = do(r, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_PublicPaths(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/swagger-ui/index.html", "/v3/api-docs", "/v3/api-docs.yaml", "/health/live"} {
		t.Run(path, func(t *testing.T) {
			w := do(r, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "anonymous", w.Body.String())
		})
	}

	w := do(r, http.MethodGet, "/v3/api-docsX", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMatchesPrefix(t *testing.T) {
	tests := []struct {
		path, prefix string
		expected     bool
	}{
		{"/sales", "/sales", true},
		{"/sales/calculate", "/sales", true},
		{"/sales/calculate", "/sales/", true},
		{"/salesman", "/sales", false},
		{"/v3/api-docs.yaml", "/v3/api-docs", true},
		{"/anything", "/", true},
		{"/other", "/sales", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, matchesPrefix(tt.path, tt.prefix), "%s vs %s", tt.path, tt.prefix)
	}
}
