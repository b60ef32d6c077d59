package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/LoopTracer/looptracer-landing/internal/webhook"

	// maxResponseBody caps how much of the upstream reply is kept for logs.
	maxResponseBody = 1024
)

// ErrUpstreamStatus is returned by Result.Err for non-2xx replies.
var ErrUpstreamStatus = errors.New("webhook responded with non-success status")

// Result describes one outbound call. Sent is false when the call failed
// before a request was issued; Latency is only meaningful when Sent is true.
type Result struct {
	Sent       bool
	StatusCode int
	Body       string
	Latency    time.Duration
}

// OK reports whether the webhook answered with a 2xx status.
func (r Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil for 2xx results and a wrapped ErrUpstreamStatus otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUpstreamStatus, r.StatusCode)
}

// Client posts JSON payloads to spreadsheet webhooks. It carries no policy
// about what a failed call means; callers decide.
type Client struct {
	http      *http.Client
	userAgent string
	tracer    trace.Tracer
}

// NewClient creates a client whose calls are bounded by timeout. A nil
// transport uses http.DefaultTransport.
func NewClient(timeout time.Duration, transport http.RoundTripper, userAgent string) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		http:      &http.Client{Timeout: timeout, Transport: transport},
		userAgent: userAgent,
		tracer:    otel.Tracer(tracerName),
	}
}

// PostJSON encodes payload and POSTs it to endpoint. A transport failure
// returns an error; any HTTP reply, whatever its status, returns a Result.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "webhook.post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("webhook.host", hostOf(endpoint))),
	)
	defer span.End()

	res, err := c.post(ctx, endpoint, payload)
	span.SetAttributes(
		attribute.Int("http.status_code", res.StatusCode),
		attribute.Int64("webhook.latency_ms", res.Latency.Milliseconds()),
	)
	if err == nil {
		err = res.Err()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return res, nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return res, err
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		return Result{Sent: true, Latency: latency}, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return Result{
		Sent:       true,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
		Latency:    latency,
	}, nil
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
