package sales

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// NewSalesModule registers POST /sales/calculate.
func NewSalesModule() fx.Option {
	return fx.Options(
		fx.Provide(newSalesHandler),
		fx.Invoke(registerRoutes),
	)
}

func registerRoutes(r *gin.Engine, h *salesHandler) {
	r.POST("/sales/calculate", h.Calculate)
}
