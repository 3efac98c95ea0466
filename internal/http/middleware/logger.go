package middleware

import (
	"fmt"
	"time"

	"busops/internal/utils"

	"github.com/gin-gonic/gin"
)

// Logger writes one access line per request through the shared LogEvent
// format, so HTTP traffic and service events carry the same request_id shape.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		utils.LogEvent(GetRequestID(c), "http", c.Request.Method,
			fmt.Sprintf("path=%s status=%d latency_ms=%.3f ip=%s",
				c.Request.URL.Path,
				c.Writer.Status(),
				float64(time.Since(start).Microseconds())/1000.0,
				c.ClientIP(),
			))
	}
}
