package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/metrics"
)

// RequestMetrics records count and latency per matched route. Unmatched
// paths are grouped under "unmatched" to keep label cardinality bounded.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
