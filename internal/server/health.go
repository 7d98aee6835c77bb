// internal/server/health.go
package server

import (
	"context"
	"net/http"
	"time"

	"studio-growth/internal/common/logger"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

type healthHandler struct {
	redis  Pinger
	logger logger.Logger
}

func (h *healthHandler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)
}

func (h *healthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Ready reports unavailable while a configured redis cannot be reached.
func (h *healthHandler) Ready(c *gin.Context) {
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", map[string]interface{}{
				"dependency": "redis",
				"error":      err.Error(),
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
