package metrics

import (
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName          = "github.com/Sokol111/ecommerce-sales/pkg/observability/metrics"
	problemCounterName = "http.server.problems"
)

// problemCounter counts rendered problem documents by status and type.
// It must run before the problem middleware so it observes the rendered type.
func problemCounter(mp metric.MeterProvider) (gin.HandlerFunc, error) {
	counter, err := mp.Meter(meterName).Int64Counter(problemCounterName,
		metric.WithDescription("Problem documents returned to clients"),
		metric.WithUnit("{problem}"),
	)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		c.Next()

		problemType := c.GetString(problems.TypeContextKey)
		if problemType == "" {
			return
		}
		counter.Add(c.Request.Context(), 1, metric.WithAttributes(
			attribute.Int("http.response.status_code", c.Writer.Status()),
			attribute.String("problem.type", problemType),
		))
	}, nil
}
