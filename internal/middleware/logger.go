package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
)

// quietRoutes are polled by the UI; successful hits are logged at debug level.
var quietRoutes = map[string]bool{
	"/v1/ping":               true,
	"/v1/session":            true,
	"/v1/credentials/status": true,
}

// Logger writes one access-log line per request, keyed by the matched route
// so that generation calls can be grouped by kind.
func Logger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}
		if kind := c.Param("kind"); kind != "" {
			attrs = append(attrs, slog.String("creative", kind))
		}
		if sid := c.GetString(CtxKeySessionID); sid != "" {
			attrs = append(attrs, slog.String("session_id", sid))
		}
		if last := c.Errors.Last(); last != nil {
			attrs = append(attrs, slog.String("error_kind", string(apperr.KindOf(last.Err))))
		}

		l.LogAttrs(c.Request.Context(), accessLevel(route, status), "request", attrs...)
	}
}

func accessLevel(route string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case quietRoutes[route]:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
