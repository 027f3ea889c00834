package middleware

import (
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware tracks per-request totals and latency. A response below
// 400 counts as success.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		collector.RecordRequest()

		c.Next()

		duration := time.Since(startTime)
		success := c.Writer.Status() < 400

		collector.RecordRequestComplete(duration, success)
	}
}
