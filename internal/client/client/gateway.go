package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/common"
	"github.com/dmitrijs2005/nekolist/internal/logging"
)

const tracerName = "github.com/dmitrijs2005/nekolist/internal/client/client"

// IdentitySource yields the signed-in user, if any.
type IdentitySource interface {
	Load(ctx context.Context) (models.Session, bool)
}

// Gateway is the single configured transport every resource call goes
// through. It fixes the base address and JSON content type, and stamps the
// caller's identity on each request. It never retries or caches.
type Gateway struct {
	baseURL      string
	httpClient   *http.Client
	identity     IdentitySource
	log          logging.Logger
	tracer       trace.Tracer
	newRequestID func() string
}

type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default client, which has no timeout.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = c }
}

func WithLogger(l logging.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

func WithTracerProvider(tp trace.TracerProvider) GatewayOption {
	return func(g *Gateway) { g.tracer = tp.Tracer(tracerName) }
}

func NewGateway(baseURL string, identity IdentitySource, opts ...GatewayOption) (*Gateway, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	g := &Gateway{
		baseURL:      u.String(),
		httpClient:   &http.Client{},
		identity:     identity,
		log:          logging.Nop(),
		tracer:       otel.Tracer(tracerName),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With("component", "gateway")
	return g, nil
}

// Do sends in (if non-nil) as JSON and decodes a 2xx response into out (if
// non-nil). Every failure is returned as *APIError.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	ctx, span := g.tracer.Start(ctx, "gateway "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	status, err := g.do(ctx, method, path, in, out)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (g *Gateway) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, &APIError{Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, &APIError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	g.prepare(ctx, req)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return 0, &APIError{Err: mapTransport(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Err: mapTransport(err)}
	}

	g.log.Debug(ctx, "request", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start),
		"request_id", req.Header.Get(common.RequestIDHeaderName))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(raw),
			Err:        fmt.Errorf("%w: %s", mapStatus(resp.StatusCode), resp.Status),
		}
		g.log.Warn(ctx, "request rejected", "method", method, "path", path,
			"status", resp.StatusCode, "detail", apiErr.Detail)
		return resp.StatusCode, apiErr
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}
	return resp.StatusCode, nil
}

// prepare is the outgoing-request hook. It is the only place identity is
// attached to a request.
func (g *Gateway) prepare(ctx context.Context, req *http.Request) {
	req.Header.Set(common.RequestIDHeaderName, g.newRequestID())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	if g.identity == nil {
		return
	}
	if sess, ok := g.identity.Load(ctx); ok {
		req.Header.Set(common.UserIDHeaderName, strconv.FormatInt(sess.ID, 10))
	}
}
