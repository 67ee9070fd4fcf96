// Package api implements the HTTP request engine for the
// Backend-Lycosidae API: deadline-bound calls, default headers, JSON
// (de)serialization, rate-limit header inspection, and classification of
// failures into typed errors with global event emission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lycosidae/internal/events"
	"lycosidae/internal/platform/metrics"
	"lycosidae/internal/platform/tracing"
	"lycosidae/internal/sentinel"
	"lycosidae/pkg/apierrors"
)

const (
	defaultTimeout = 10 * time.Second

	// Warn when the backend reports fewer remaining requests than this.
	rateLimitWarningThreshold = 5
)

// Client issues requests against a configured base address. Construct
// one per process and inject it into services; no state is retained
// between calls beyond the fixed configuration.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	bus        *events.Bus
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracing.Tracer
	userAgent  string
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the per-request deadline. Non-positive values
// are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient injects a custom *http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer injects a tracer. Defaults to the no-op tracer.
func WithTracer(t tracing.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a request engine bound to baseURL, publishing rate-limit
// warnings and classified API errors on bus.
func New(baseURL string, bus *events.Bus, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   defaultTimeout,
		bus:       bus,
		userAgent: "lycosidae-client/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = tracing.NewNoop()
	}
	return c
}

// Version is set at build time via ldflags.
var Version = "dev"

// Request issues method against endpoint, bound by the configured
// deadline. body is JSON-encoded when non-nil; out, when non-nil, is
// filled from a JSON 2xx response. A 2xx response without a JSON body
// leaves out untouched and returns nil. Every failure is classified
// into an *apierrors.APIError, published on the bus when a response was
// received, and returned to the caller.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, headers map[string]string, out any) error {
	ctx, span := c.tracer.Start(ctx, tracing.SpanRequest,
		tracing.String(tracing.AttrMethod, method),
		tracing.String(tracing.AttrEndpoint, endpoint),
	)
	err := c.do(ctx, method, endpoint, body, headers, out, span)
	span.End(err)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, headers map[string]string, out any, span tracing.Span) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apierrors.Wrap(err, apierrors.CodeParse, "falha ao serializar o corpo da requisição")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return apierrors.Wrap(err, apierrors.CodeTransport, "falha ao montar a requisição")
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.DebugContext(ctx, "api request", "method", method, "endpoint", endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransportError(ctx, err, method, endpoint, time.Since(start))
	}
	defer resp.Body.Close() //nolint:errcheck // response body close is best-effort

	span.SetAttributes(tracing.Int(tracing.AttrStatus, resp.StatusCode))
	c.observeRequest(method, strconv.Itoa(resp.StatusCode), endpoint, time.Since(start))

	// Rate-limit headers are inspected on every response, success or
	// failure, before the status-code check.
	c.checkRateLimit(ctx, resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.handleErrorResponse(ctx, resp, endpoint)
	}

	if out == nil {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		// Endpoints without a JSON body (some DELETEs) succeed with an
		// empty result.
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierrors.Wrap(err, apierrors.CodeTransport, "falha ao ler a resposta do servidor")
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierrors.Wrap(err, apierrors.CodeParse, "resposta inválida do servidor")
	}
	return nil
}

// classifyTransportError distinguishes a fired deadline from generic
// transport failures, so callers can tell a Timeout from an unreachable
// backend.
func (c *Client) classifyTransportError(ctx context.Context, err error, method, endpoint string, elapsed time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		c.observeRequest(method, "timeout", endpoint, elapsed)
		c.logger.WarnContext(ctx, "api request timed out", "method", method, "endpoint", endpoint, "elapsed", elapsed)
		return apierrors.Wrap(fmt.Errorf("%s %s: %w", method, endpoint, sentinel.ErrTimeout), apierrors.CodeTimeout, "Requisição cancelada por timeout")
	}
	c.observeRequest(method, "transport", endpoint, elapsed)
	c.logger.WarnContext(ctx, "api request failed", "method", method, "endpoint", endpoint, "error", err)
	return apierrors.Wrap(fmt.Errorf("%s %s: %w: %w", method, endpoint, sentinel.ErrTransport, err), apierrors.CodeTransport, "Falha de conexão com o servidor")
}

// handleErrorResponse builds the Structured API Error for a non-2xx
// response, publishes it exactly once, and returns it.
func (c *Client) handleErrorResponse(ctx context.Context, resp *http.Response, endpoint string) error {
	raw, _ := io.ReadAll(resp.Body)

	var parsed map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			// Malformed error body: fall back to the generic message.
			parsed = nil
		}
	}

	apiErr := &apierrors.APIError{
		Code:    apierrors.CodeHTTPStatus,
		Status:  resp.StatusCode,
		Header:  resp.Header.Clone(),
		Body:    parsed,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	if ve := apiErr.ValidationErrors(); resp.StatusCode == http.StatusUnprocessableEntity && len(ve) > 0 {
		apiErr.Message = "Erro de validação: " + strings.Join(ve, ", ")
	} else if msg := apiErr.BodyString("message"); msg != "" {
		apiErr.Message = msg
	} else if detail := apiErr.BodyString("detail"); detail != "" {
		apiErr.Message = detail
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		info := parseRateLimitInfo(resp.Header)
		apiErr.Code = apierrors.CodeRateLimit
		apiErr.RateLimit = &info
		apiErr.Message = fmt.Sprintf("Rate limit excedido. Tente novamente em %ds", info.RetryAfter)
	}

	c.logger.WarnContext(ctx, "api error response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"message", apiErr.Message,
	)

	c.bus.PublishAPIError(events.APIErrorEvent{Err: apiErr, Endpoint: endpoint, Body: parsed})
	return apiErr
}

// checkRateLimit inspects quota headers and warns when the remaining
// budget drops below the threshold. Advisory only: it never fails the
// call.
func (c *Client) checkRateLimit(ctx context.Context, resp *http.Response) {
	remainingStr := resp.Header.Get(headerRateLimitRemaining)
	if remainingStr == "" {
		return
	}
	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return
	}
	if c.metrics != nil {
		c.metrics.SetRateLimitRemaining(remaining)
	}
	if remaining >= rateLimitWarningThreshold {
		return
	}

	limit, _ := strconv.Atoi(resp.Header.Get(headerRateLimitLimit))
	c.logger.WarnContext(ctx, "rate limit budget low", "remaining", remaining, "limit", limit)
	if c.metrics != nil {
		c.metrics.IncrementRateLimitWarnings()
	}
	c.bus.PublishRateLimitWarning(events.RateLimitWarningEvent{Remaining: remaining, Limit: limit})
}

func (c *Client) observeRequest(method, status, endpoint string, elapsed time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, status, endpoint, elapsed.Seconds())
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, headers, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, headers, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error {
	return c.Request(ctx, http.MethodPut, endpoint, body, headers, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, headers, out)
}
