// Package dqlclient provides DalmatinerDB frontend query client.
package dqlclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/go-faster/dalmatinerql/internal/dql"
)

// Client is a DalmatinerDB frontend client.
type Client struct {
	addr       *url.URL
	http       *http.Client
	tp         trace.TracerProvider
	tracer     trace.Tracer
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// Option configures [Client].
type Option func(c *Client)

// WithHTTPClient sets HTTP client to use.
//
// By default, client with instrumented [http.DefaultTransport] is used.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTracerProvider sets tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tp = tp
	}
}

// WithMaxRetries sets maximum number of retries of a failed query.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBackOff sets retry backoff policy.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = f
	}
}

// NewClient creates new [Client].
func NewClient(addr string, opts ...Option) (*Client, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, errors.Wrap(err, "parse address")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unexpected scheme %q", u.Scheme)
	}

	c := &Client{
		addr:       u,
		tp:         otel.GetTracerProvider(),
		maxRetries: 3,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, o := range opts {
		o(c)
	}
	c.tracer = c.tp.Tracer("dqlclient")
	if c.http == nil {
		c.http = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithTracerProvider(c.tp),
			),
		}
	}
	return c, nil
}

// StatusError is returned when frontend responds with unexpected status code.
type StatusError struct {
	Code int
	Body string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status code %d", e.Code)
	}
	return fmt.Sprintf("status code %d: %s", e.Code, e.Body)
}

// QueryBuilder renders and executes query.
//
// If query cannot be rendered, no request is sent.
func (c *Client) QueryBuilder(ctx context.Context, b *dql.Builder, r Range) (*Result, error) {
	q, err := b.UserString()
	if err != nil {
		return nil, errors.Wrap(err, "render query")
	}
	return c.Query(ctx, q, r)
}

// Query executes query over given time range.
//
// Server errors and network failures are retried.
func (c *Client) Query(ctx context.Context, q string, r Range) (_ *Result, rerr error) {
	if err := r.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate range")
	}
	full := q + " " + r.String()

	ctx, span := c.tracer.Start(ctx, "dqlclient.Query",
		trace.WithAttributes(attribute.String("dql.query", full)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	var (
		lg     = zctx.From(ctx)
		result *Result
		b      = backoff.WithContext(
			backoff.WithMaxRetries(c.newBackOff(), c.maxRetries),
			ctx,
		)
	)
	lg.Debug("Send query", zap.String("query", full))
	if err := backoff.RetryNotify(
		func() error {
			res, err := c.do(ctx, full)
			if err != nil {
				if cerr := ctx.Err(); cerr != nil {
					return backoff.Permanent(cerr)
				}
				return err
			}
			result = res
			return nil
		},
		b,
		func(err error, d time.Duration) {
			lg.Warn("Retry query", zap.Error(err), zap.Duration("after", d))
		},
	); err != nil {
		return nil, errors.Wrap(err, "query")
	}
	lg.Debug("Query done",
		zap.Int("series", len(result.Series)),
		zap.Duration("took", result.Took),
	)
	return result, nil
}

func (c *Client) do(ctx context.Context, q string) (*Result, error) {
	u := *c.addr
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = url.Values{"q": {q}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "create request"))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if code := resp.StatusCode; code != http.StatusOK {
		const limit = 1024
		body, _ := io.ReadAll(io.LimitReader(resp.Body, limit))
		err := &StatusError{Code: code, Body: string(body)}
		if code >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var result Result
	if err := result.Decode(jx.Decode(resp.Body, 4096)); err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "decode response"))
	}
	return &result, nil
}
