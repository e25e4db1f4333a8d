package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler serves the liveness and readiness probes.
type Handler struct {
	registry *Registry
	timeout  time.Duration
	started  time.Time
}

func NewHandler(registry *Registry, timeout time.Duration) *Handler {
	return &Handler{
		registry: registry,
		timeout:  timeout,
		started:  time.Now(),
	}
}

// Live answers 200 while the process can serve HTTP at all.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": StatusUp,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready answers 503 when any enabled backing service is down.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	response := h.registry.CheckAll(ctx)

	status := http.StatusOK
	if response.Status == StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
