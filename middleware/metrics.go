package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mindwell/utils"
)

// MetricsMiddleware records request counts, latency and response size per
// route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		utils.ActiveRequests.Inc()
		defer utils.ActiveRequests.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		utils.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		utils.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		utils.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(c.Writer.Size()))
	}
}
