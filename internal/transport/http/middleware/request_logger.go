package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Headers are logged without anything that smells like a credential.
		scrub := func(h http.Header) []string {
			var out []string
			for k := range h {
				lower := strings.ToLower(k)
				if strings.Contains(lower, "authorization") || strings.Contains(lower, "cookie") {
					out = append(out, k+": [redacted]")
					continue
				}
				out = append(out, k+": "+strings.Join(h.Values(k), ","))
			}
			return out
		}

		log.Debug("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Strings("hdr", scrub(c.Request.Header)),
		)

		ts := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(ts)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}

		for _, e := range c.Errors {
			log.Error("handler error", append(fields, zap.Error(e))...)
		}

		if status >= http.StatusInternalServerError {
			log.Error("completed", fields...)
			return
		}
		log.Info("completed", fields...)
	}
}
