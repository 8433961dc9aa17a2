package middleware

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

type mwIn struct {
	fx.In
	Middlewares []Middleware `group:"gin_mw"`
}

func provideGinAndHandler(in mwIn) (*gin.Engine, http.Handler) {
	e := newEngine(in.Middlewares)
	return e, e
}

func newEngine(mws []Middleware) *gin.Engine {
	engine := gin.New(func(e *gin.Engine) {
		e.ContextWithFallback = true
		e.HandleMethodNotAllowed = true
	})

	sort.SliceStable(mws, func(i, j int) bool { return mws[i].Priority < mws[j].Priority })
	for _, m := range mws {
		if m.Handler == nil {
			continue
		}
		engine.Use(m.Handler)
	}

	engine.NoRoute(func(c *gin.Context) {
		problems.Abort(c, problems.ProtocolFault{
			Status:   http.StatusNotFound,
			Category: "NoResourceFound",
			Message:  fmt.Sprintf("No static resource %s.", c.Request.URL.Path),
		})
	})
	engine.NoMethod(func(c *gin.Context) {
		problems.Abort(c, problems.ProtocolFault{
			Status:   http.StatusMethodNotAllowed,
			Category: "MethodNotAllowed",
			Message:  fmt.Sprintf("Request method '%s' is not supported", c.Request.Method),
		})
	})

	return engine
}
