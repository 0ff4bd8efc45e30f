package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cardvault/internal/config"
	"cardvault/internal/metrics"
)

// AuthRequired guards privileged endpoints with the shared sync token,
// accepted as a `token` query parameter (browser-friendly, as the
// original deployment used) or an X-Sync-Token header. The check runs
// before any side effect. An unconfigured token is a server-side
// problem, not an authorization one.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cfg.RequireSyncToken(); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		token := c.Query("token")
		if token == "" {
			token = c.GetHeader("X-Sync-Token")
		}
		if token != cfg.SyncToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
