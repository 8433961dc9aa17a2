package sales

import (
	"errors"
	"net/http"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/Sokol111/ecommerce-sales/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type salesHandler struct {
	validator *validation.Validator
}

func newSalesHandler(v *validation.Validator) *salesHandler {
	return &salesHandler{validator: v}
}

func (h *salesHandler) Calculate(c *gin.Context) {
	var req Request
	if failure := h.validator.BindJSON(c, &req); failure != nil {
		problems.Abort(c, failure)
		return
	}

	result, err := Calculate(req)
	if err != nil {
		var violation *RuleViolation
		if errors.As(err, &violation) {
			problems.Abort(c, problems.BusinessRuleViolated{Code: violation.Code.String()})
			return
		}
		problems.Abort(c, problems.UnhandledFault{Cause: err})
		return
	}

	logger.Get(c).Debug("selling price calculated",
		zap.Float64("base_price", result.BasePrice),
		zap.Float64("selling_price", result.SellingPrice),
	)
	c.JSON(http.StatusOK, result)
}
