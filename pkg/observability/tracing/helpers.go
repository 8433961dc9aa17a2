package tracing

import (
	"context"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const problemTypeAttribute = attribute.Key("problem.type")

// SpanIDs returns the trace and span ids carried by ctx, or two empty strings.
func SpanIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}

// annotateProblem tags the request span with the type of the rendered problem document.
func annotateProblem(c *gin.Context) {
	problemType := c.GetString(problems.TypeContextKey)
	if problemType == "" {
		return
	}
	trace.SpanFromContext(c.Request.Context()).SetAttributes(problemTypeAttribute.String(problemType))
}
