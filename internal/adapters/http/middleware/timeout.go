package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/dto"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// Timeout gives each request a deadline. Handlers and stores observe it
// through the request context; a handler that returns after the deadline
// without writing a response gets a 503 TIMEOUT envelope. Requests whose
// path is in skipPaths run without a deadline.
//
// The handler chain runs on the request goroutine: gin.Context is not safe
// to share with a watcher goroutine.
func Timeout(timeout time.Duration, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok || timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		traceID := dto.GetTraceID(c)

		logging.FromContext(ctx).Warn("request timeout",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
			slog.String("trace_id", traceID),
		)

		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrorCodeTimeout, dto.MessageTimeout).WithTraceID(traceID))
	}
}
