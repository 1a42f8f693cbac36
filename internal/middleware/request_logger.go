package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger returns a middleware that logs one structured line per request:
// request ID, method, path, status code, latency, client IP, user agent and,
// when authenticated, the caller. Requests to quietPaths that succeed are
// logged at debug level so probes and scrapes do not flood the log.
func RequestLogger(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		path := c.Request.URL.Path

		l := logger.FromContext(c.Request.Context())
		event := l.WithLevel(logLevel(statusCode))
		if quiet[path] && statusCode < 400 {
			event = l.Debug()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status_code", statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())
		if p := GetPrincipal(c); p != nil {
			event = event.Str("principal", p.Subject).Str("auth_method", p.Method)
		}
		event.Msg("HTTP request")
	}
}

// logLevel returns the log level based on HTTP status code.
func logLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
