package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthResponse is the body of GET /health. Checks maps a component name
// to its message, e.g. "sse" -> "3 clients connected".
type HealthResponse struct {
	Status     component.HealthStatus `json:"status"`
	Service    string                 `json:"service"`
	Timestamp  string                 `json:"timestamp"`
	Uptime     string                 `json:"uptime"`
	Checks     map[string]string      `json:"checks,omitempty"`
	Components []component.Health     `json:"components"`
}

// Health reports the worst component status and each component's message.
// Only an unhealthy component turns the response into a 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	started := time.Now()
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:    component.StatusHealthy,
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(started).Truncate(time.Second).String(),
		}
		if checker != nil {
			resp.Components = checker(c.Request.Context())
		}
		resp.Status = worstStatus(resp.Components)

		for _, ch := range resp.Components {
			if ch.Message == "" {
				continue
			}
			if resp.Checks == nil {
				resp.Checks = make(map[string]string, len(resp.Components))
			}
			resp.Checks[ch.Name] = ch.Message
		}

		httpStatus := http.StatusOK
		if resp.Status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, resp)
	}
}

func worstStatus(components []component.Health) component.HealthStatus {
	status := component.StatusHealthy
	for _, ch := range components {
		switch ch.Status {
		case component.StatusUnhealthy:
			return component.StatusUnhealthy
		case component.StatusDegraded:
			status = component.StatusDegraded
		}
	}
	return status
}
