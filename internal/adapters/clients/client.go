package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/dedication-wall/internal/adapters/clients"

	defaultTimeout = 5 * time.Second

	defaultMaxIdleConns        = 50
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "https://open.spotify.com".
	BaseURL string

	// ServiceName identifies the downstream in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt.
	Timeout time.Duration

	// Retry applies to GET and HEAD only. Writes are sent once: a deletion by
	// position that is replayed after a lost response removes a second card.
	Retry config.RetryConfig

	Circuit config.CircuitBreakerConfig

	Transport config.TransportConfig

	// AuthFunc, when set, decorates every attempt, e.g. with a Baserow token.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// ConfigFor fills a Config from the shared client settings.
func ConfigFor(baseURL, serviceName string, shared config.ClientConfig, logger *slog.Logger) *Config {
	return &Config{
		BaseURL:     baseURL,
		ServiceName: serviceName,
		Timeout:     shared.Timeout,
		Retry:       shared.Retry,
		Circuit:     shared.CircuitBreaker,
		Transport:   shared.Transport,
		Logger:      logger,
	}
}

// Client is an HTTP client with retries, a circuit breaker, tracing and
// request ID propagation.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         Config
	logger      *slog.Logger
	cb          *CircuitBreaker
	tracer      trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	c := *cfg
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 1
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", c.ServiceName),
	)

	cb := NewCircuitBreaker(c.Circuit)
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   c.Timeout,
			Transport: newTransport(c.Transport),
		},
		baseURL:         strings.TrimSuffix(c.BaseURL, "/"),
		serviceName:     c.ServiceName,
		cfg:             c,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}

	if t.MaxIdleConns <= 0 {
		t.MaxIdleConns = defaultMaxIdleConns
	}

	if t.MaxIdleConnsPerHost <= 0 {
		t.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}

	if t.IdleConnTimeout <= 0 {
		t.IdleConnTimeout = defaultIdleConnTimeout
	}

	return t
}

// Do sends req through the breaker. Responses with a status below 500 are
// returned to the caller, who owns the body. Transport errors and 5xx
// responses are retried for idempotent methods, then reported as errors.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	attempts := c.attemptsFor(req.Method)

	resp, err := c.send(ctx, req, attempts, logger)
	duration := time.Since(start)

	if err != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Int("attempts", attempts),
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		if attempts > 1 {
			return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Log(ctx, logging.LevelTrace, "request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// send runs up to attempts tries, backing off between them.
func (c *Client) send(ctx context.Context, req *http.Request, attempts int, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range attempts {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			logger.Debug("retrying request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
				slog.Any("error", lastErr),
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}

			if c.cfg.AuthFunc != nil {
				c.cfg.AuthFunc(req)
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = err
			if !isRetryableError(err) {
				return nil, err
			}

			continue
		}

		if resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return nil, lastErr
}

func (c *Client) attemptsFor(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return c.cfg.Retry.MaxAttempts
	}

	return 1
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.Do(ctx, req)
}

// ServiceName returns the downstream name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff is InitialInterval * Multiplier^attempt, capped at
// MaxInterval, with ±JitterFactor symmetric jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	r := c.cfg.Retry

	backoff := float64(r.InitialInterval) * math.Pow(r.Multiplier, float64(attempt))
	if backoff > float64(r.MaxInterval) {
		backoff = float64(r.MaxInterval)
	}

	jitter := backoff * r.JitterFactor * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	backoff += jitter

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether a transport error may succeed on retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
