package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hocus-focus/internal/observability"
)

// Metrics records request latency under the matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.ObserveHTTPRequest(route, c.Request.Method, c.Writer.Status(), started)
	}
}
