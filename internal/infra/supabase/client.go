// Package supabase talks to a hosted Supabase project: GoTrue for sign-in and
// token checks, PostgREST for the users, orders, messages and portfolio_items
// tables.
package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

const serviceName = "supabase"

// Client wraps HTTP calls to the Supabase REST and Auth APIs.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	bulkhead       *resilience.Bulkhead
	cfg            resilience.Config
	metrics        *observability.Metrics
	logger         *zap.Logger
}

// NewClient creates a Supabase client. metrics may be nil.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		bulkhead:       resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:            cfg,
		metrics:        metrics,
		logger:         logger,
	}
}

// statusError is a non-2xx answer from Supabase.
type statusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("supabase %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// call runs fn through the breaker, retries and the bulkhead. Exceeded
// deadlines come back as *domain.ErrTimeout and other failures that are not
// domain outcomes as *domain.ErrExternalService. 4xx answers are not counted
// as backend errors.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	err := resilience.Execute(ctx, c.cb, c.cfg, serviceName, func() error {
		return c.bulkhead.Do(ctx, fn)
	})
	if err == nil || !resilience.IsRetryable(err) {
		return err
	}
	if c.metrics != nil && !isClientError(err) {
		c.metrics.IncrBackendError(serviceName)
	}
	if _, open := err.(*domain.ErrCircuitOpen); open {
		return err
	}
	if resilience.IsTimeout(err) {
		return &domain.ErrTimeout{Operation: serviceName + "/" + op}
	}
	return &domain.ErrExternalService{Service: serviceName + "/" + op, Err: err}
}

// request is one HTTP exchange with Supabase.
type request struct {
	method  string
	url     string
	path    string // for logs
	body    io.Reader
	bearer  string
	headers map[string]string
}

// response is the part of an answer the stores look at.
type response struct {
	status int
	header http.Header
	body   []byte
}

// do sends req. 4xx answers are marked permanent so they are not retried.
func (c *Client) do(ctx context.Context, req request) (*response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, req.body)
	if err != nil {
		c.logger.Error("supabase: failed to create request",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return nil, resilience.Permanent(err)
	}

	bearer := req.bearer
	if bearer == "" {
		bearer = c.serviceRoleKey
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+bearer)
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		c.logger.Error("supabase: failed to read response body",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		serr := &statusError{Method: req.method, Path: req.path, Status: resp.StatusCode, Body: string(body)}
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, resilience.Permanent(serr)
		}
		return nil, serr
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
	)

	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// doRequest executes an authenticated request to PostgREST and returns the body.
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	resp, err := c.do(ctx, request{
		method: method,
		url:    fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path),
		path:   path,
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Ping checks that PostgREST answers.
func (c *Client) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Supabase.Ping")
	defer span.End()

	_, err := c.doRequest(ctx, http.MethodGet, "users?select=id&limit=1")
	if err != nil {
		return &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	return nil
}
