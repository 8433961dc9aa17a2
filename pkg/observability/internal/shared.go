// Package internal holds the pieces shared by the tracing and metrics providers.
package internal

import (
	"context"
	"strings"

	appconfig "github.com/Sokol111/ecommerce-sales/pkg/core/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ExcludedPaths are prefixes of probe and documentation routes, which are
// neither traced nor measured.
var ExcludedPaths = []string{"/health", "/metrics", "/swagger-ui", "/v3/api-docs"}

// instanceID tells replicas of the same service version apart.
var instanceID = uuid.NewString()

// NewResource describes the running service instance.
func NewResource(ctx context.Context, appCfg appconfig.AppConfig) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(appCfg.ServiceName),
			semconv.ServiceVersionKey.String(appCfg.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(instanceID),
			semconv.DeploymentEnvironmentNameKey.String(appCfg.Environment),
		),
	)
}

// FilterPaths reports whether the request should be instrumented. Unmatched
// routes are judged by their raw path.
func FilterPaths(c *gin.Context) bool {
	path := lo.CoalesceOrEmpty(c.FullPath(), c.Request.URL.Path)
	return lo.NoneBy(ExcludedPaths, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}
