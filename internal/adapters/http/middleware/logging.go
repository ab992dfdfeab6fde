package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// probePrefix marks health and metrics routes, which are never logged.
const probePrefix = "/-/"

// ContextLogger seeds every request context with logger so the ID
// middleware and handlers enrich the service logger rather than the
// process default.
func ContextLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// Logging logs each request on completion at a level chosen by status:
// info below 400, warn below 500, error otherwise. Probe routes and the
// exact paths in skipPaths are not logged. A start line is written at
// debug.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || strings.HasPrefix(path, probePrefix) {
			c.Next()
			return
		}

		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		start := time.Now()
		ctx := c.Request.Context()
		logger := logging.FromContext(ctx)

		logger.DebugContext(ctx, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		level := slog.LevelInfo

		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logging.FromContext(c.Request.Context()).Log(ctx, level, "request completed", attrs...)
	}
}
