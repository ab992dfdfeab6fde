package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/dedication-wall/telemetry"

// TraceIDHeader echoes the active trace ID back to the caller.
const TraceIDHeader = "X-Trace-ID"

// Metrics holds HTTP server instruments.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the otelgin tracing middleware followed by request
// metrics, the X-Trace-ID response header and a trace_id attribute on the
// request logger.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), metricsMiddleware()}
}

func metricsMiddleware() gin.HandlerFunc {
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		// Unmatched routes all share the "" route label.
		route := c.FullPath()

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			)

			metrics.activeRequests.Add(ctx, 1, attrs)
			defer metrics.activeRequests.Add(ctx, -1, attrs)
		}

		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
			c.Header(TraceIDHeader, sc.TraceID().String())
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, sc.TraceID().String()))
		}

		c.Next()

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", c.Writer.Status()),
			)
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			metrics.requestTotal.Add(ctx, 1, attrs)
		}
	}
}
