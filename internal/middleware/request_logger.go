package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger returns a middleware that logs one line per HTTP request.
// Probe and metrics endpoints are logged at debug level.
func RequestLogger() gin.HandlerFunc {
	quiet := map[string]bool{"/healthz": true, "/readyz": true, "/metrics": true}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		event := logEvent(statusCode, quiet[path])
		event.
			Str("request_id", GetRequestID(c)).
			Str("device_id", GetDeviceID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Bool("replayed", c.Writer.Header().Get(IdempotencyReplayedHeader) == "true").
			Msg("HTTP request")
	}
}

func logEvent(statusCode int, quiet bool) *zerolog.Event {
	switch {
	case statusCode >= 500:
		return log.Error()
	case statusCode >= 400:
		return log.Warn()
	case quiet:
		return log.Debug()
	default:
		return log.Info()
	}
}
