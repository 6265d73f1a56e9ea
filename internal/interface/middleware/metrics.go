package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-events/internal/metrics"
)

// Metrics records status code and latency per matched route.
func Metrics(rec metrics.Recorder) gin.HandlerFunc {
	if rec == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordHTTPStatus(c.Writer.Status())
		rec.RecordRequestLatency(route, time.Since(start))
	}
}
