// internal/server/middleware.go
package server

import (
	"net/http"
	"strconv"
	"time"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	unmatchedRoute = "unmatched"
)

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Probes log at debug.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"route":     c.FullPath(),
			"status":    status,
			"latencyMs": time.Since(start).Milliseconds(),
			"requestId": c.GetString(requestIDKey),
			"clientIp":  c.ClientIP(),
		}

		switch {
		case c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/readyz":
			log.Debug("request completed", fields)
		case status >= http.StatusInternalServerError:
			log.Error("request completed", fields)
		default:
			log.Info("request completed", fields)
		}
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery(log logger.Logger) gin.HandlerFunc {
	errs := apperrors.NewErrorHandler(log)
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", map[string]interface{}{
			"path":      c.Request.URL.Path,
			"requestId": c.GetString(requestIDKey),
			"panic":     recovered,
		})
		status, resp := errs.Handle(c.FullPath(), apperrors.NewInternalError(nil))
		c.AbortWithStatusJSON(status, resp)
	})
}
