package health

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// NewHealthRoutesModule registers the probes for GET and HEAD.
func NewHealthRoutesModule() fx.Option {
	return fx.Options(
		fx.Provide(newHealthHandler),
		fx.Invoke(registerHealthRoutes),
	)
}

func registerHealthRoutes(r *gin.Engine, handler *healthHandler) {
	for path, handle := range map[string]gin.HandlerFunc{
		readyPath: handler.IsReady,
		livePath:  handler.IsLive,
	} {
		r.GET(path, handle)
		r.HEAD(path, handle)
	}
}
