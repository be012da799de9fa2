package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/metrics"
)

// Metrics records request counts and latency, labelled by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start).Seconds())
	}
}
