// Package client talks to the MUN game server over HTTP. Every operation
// classifies its outcome into the model error taxonomy and retries exactly
// once when no HTTP response was received.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mun/internal/logging/events"
	"github.com/samdwyer/mun/internal/telemetry"
)

const (
	// DefaultTimeout bounds a single attempt, body read included.
	DefaultTimeout = 5 * time.Second
	// maxAttempts is the first try plus one retry on transport failure.
	maxAttempts = 2

	headerRequestID = "X-Request-Id"
)

// Client issues the five game operations against a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// replaced by the per-attempt timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			dup := *hc
			dup.Timeout = c.http.Timeout
			c.http = &dup
		}
	}
}

// WithTimeout changes the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a client. A trailing slash on baseURL is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tracer:  telemetry.Tracer("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the prefix every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	op     string
	method string
	path   string
	body   []byte
}

type response struct {
	status int
	body   []byte
}

// do performs req with a single retry on transport failure. The returned
// error, when non-nil, is always a transport failure.
func (c *Client) do(ctx context.Context, req request) (response, error) {
	requestID := uuid.NewString()
	url := c.baseURL + req.path
	ctx, span := c.tracer.Start(ctx, "client."+req.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("http.url", url),
		attribute.String("request.id", requestID),
	)
	events.Client.Request(req.op, req.method, url, requestID)

	attempts := 0
	resp, err := backoff.Retry(ctx, func() (response, error) {
		attempts++
		return c.attempt(ctx, req.method, url, requestID, req.body)
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(maxAttempts),
		backoff.WithNotify(func(err error, _ time.Duration) {
			events.Client.Retry(req.op, requestID, err)
		}),
	)
	span.SetAttributes(attribute.Int("request.attempts", attempts))
	if err != nil {
		err = oops.In("client").With("op", req.op, "attempts", attempts).Wrapf(err, "%s %s", req.method, url)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		events.Client.Failure(req.op, err)
		return response{}, err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.status))
	events.Client.Response(req.op, resp.status, attempts)
	return resp, nil
}

// attempt sends one request and reads the whole body. Any returned error
// means no usable HTTP response was received.
func (c *Client) attempt(ctx context.Context, method, url, requestID string, body []byte) (response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	if method == http.MethodPost {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(headerRequestID, requestID)
	telemetry.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return response{}, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read body: %w", err)
	}
	return response{status: httpResp.StatusCode, body: data}, nil
}
