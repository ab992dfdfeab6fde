package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request identifier.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an identifier shared by every request of
	// one user action, e.g. a submit followed by the forced re-read.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key of the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key of the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

type idMiddlewareConfig struct {
	header     string
	ginKey     string
	withID     func(context.Context, string) context.Context
	withLogger func(context.Context, string) context.Context
}

// RequestID reads X-Request-ID or generates a UUID, echoes it in the
// response and stores it in both the gin and request contexts. The request
// logger gains a request_id attribute.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idMiddlewareConfig{
		header:     HeaderRequestID,
		ginKey:     ContextKeyRequestID,
		withID:     ContextWithRequestID,
		withLogger: logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID. An incoming value is
// propagated unchanged.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idMiddlewareConfig{
		header:     HeaderCorrelationID,
		ginKey:     ContextKeyCorrelationID,
		withID:     ContextWithCorrelationID,
		withLogger: logging.WithCorrelationID,
	})
}

func idMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.header, id)

		ctx := cfg.withID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(cfg.withLogger(ctx, id))

		c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID stored by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
