// Package health serves the liveness and readiness probes.
package health

import (
	"net/http"
	"strings"

	coreHealth "github.com/Sokol111/ecommerce-sales/pkg/core/health"
	"github.com/gin-gonic/gin"
)

const (
	livePath  = "/health/live"
	readyPath = "/health/ready"
)

type healthHandler struct {
	readiness coreHealth.ReadinessChecker
}

func newHealthHandler(r coreHealth.ReadinessChecker) *healthHandler {
	return &healthHandler{readiness: r}
}

// IsReady answers 200 once every registered component started, 503 before.
// The body is plain text unless JSON is asked for.
func (h *healthHandler) IsReady(c *gin.Context) {
	if wantsJSON(c) {
		status := h.readiness.GetStatus()
		c.JSON(probeStatus(status.Ready), status)
		return
	}

	ready := h.readiness.IsReady()
	body := "not ready"
	if ready {
		body = "ready"
	}
	c.String(probeStatus(ready), body)
}

func (h *healthHandler) IsLive(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}

func probeStatus(ready bool) int {
	if ready {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// wantsJSON honours ?format=json and an Accept header naming JSON.
func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json" || strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
