// Package strapi is the content API client. It speaks the Strapi v4 REST
// dialect: collection endpoints under /api, {id, attributes} entries and
// {error: {status, name, message}} failure bodies.
package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"devblog/internal/domain/entity"
	"devblog/internal/handler/http/requestid"
	"devblog/internal/observability/tracing"
	"devblog/internal/repository"
	"devblog/internal/resilience/circuitbreaker"
)

const (
	resourceArticles   = "articles"
	resourceCategories = "categories"
	resourceHealth     = "health"
)

// Client implements repository.ContentRepository against a Strapi instance.
//
// Every call waits for the outbound rate limiter, then runs through the
// circuit breaker as exactly one HTTP round trip. Failures are returned as
// *FetchError; nothing is retried.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	config     Config
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	logger     *slog.Logger
}

var _ repository.ContentRepository = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCircuitBreaker replaces the default content API circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient validates config and creates a Client.
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("content api config: %w", err)
	}
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("content api config: %w", err)
	}

	c := &Client{
		config:  config,
		baseURL: base,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = circuitbreaker.New(breakerConfig(circuitbreaker.ContentAPIConfig()))
	}
	recordCircuitState(c.breaker.Name(), c.breaker.State())
	return c, nil
}

// breakerConfig makes cfg count only upstream failures and export its state.
func breakerConfig(cfg circuitbreaker.Config) circuitbreaker.Config {
	cfg.IsSuccessful = func(err error) bool {
		if err == nil {
			return true
		}
		fe, ok := AsFetchError(err)
		return ok && !fe.Upstream()
	}
	cfg.OnStateChange = func(name string, _, to gobreaker.State) {
		recordCircuitState(name, to)
	}
	return cfg
}

// NewCircuitBreaker returns a breaker configured like the client's default
// one but with custom thresholds.
func NewCircuitBreaker(cfg circuitbreaker.Config) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(breakerConfig(cfg))
}

// FetchArticles implements repository.ContentRepository.
func (c *Client) FetchArticles(ctx context.Context, query string) (repository.Collection[entity.Article], error) {
	resp, err := fetchCollection[articleAttributes](ctx, c, resourceArticles, query)
	if err != nil {
		return repository.Collection[entity.Article]{}, err
	}
	items := make([]entity.Article, 0, len(resp.Data))
	for _, e := range resp.Data {
		items = append(items, toArticle(e))
	}
	return repository.Collection[entity.Article]{Items: items, Pagination: resp.Meta.Pagination}, nil
}

// FetchCategories implements repository.ContentRepository.
func (c *Client) FetchCategories(ctx context.Context, query string) (repository.Collection[entity.Category], error) {
	resp, err := fetchCollection[categoryAttributes](ctx, c, resourceCategories, query)
	if err != nil {
		return repository.Collection[entity.Category]{}, err
	}
	items := make([]entity.Category, 0, len(resp.Data))
	for _, e := range resp.Data {
		items = append(items, toCategory(e))
	}
	return repository.Collection[entity.Category]{Items: items, Pagination: resp.Meta.Pagination}, nil
}

// Ping checks that the content API answers its health endpoint.
// It bypasses the rate limiter but not the circuit breaker.
func (c *Client) Ping(ctx context.Context) error {
	u := c.baseURL.JoinPath("_health")
	_, err := circuitbreaker.Run(c.breaker, func() ([]byte, error) {
		return c.do(ctx, resourceHealth, u)
	})
	return c.classify(resourceHealth, err)
}

// CircuitState returns the breaker state name: closed, half-open or open.
func (c *Client) CircuitState() string {
	return c.breaker.State().String()
}

func fetchCollection[T any](ctx context.Context, c *Client, resource, query string) (collectionResponse[T], error) {
	var out collectionResponse[T]
	start := time.Now()

	body, err := c.get(ctx, resource, query)
	if err == nil {
		if jerr := json.Unmarshal(body, &out); jerr != nil {
			err = &FetchError{Resource: resource, Kind: KindDecode, Err: jerr}
		}
	}
	recordRequest(resource, err, time.Since(start))

	if err != nil {
		c.logger.DebugContext(ctx, "content api request failed",
			slog.String("resource", resource),
			slog.String("query", query),
			slog.Any("error", err))
		return out, err
	}
	c.logger.DebugContext(ctx, "content api request",
		slog.String("resource", resource),
		slog.String("query", query),
		slog.Int("items", len(out.Data)),
		slog.Duration("duration", time.Since(start)))
	return out, nil
}

// get waits for the limiter and performs one GET of /api/{resource}?{query}.
func (c *Client) get(ctx context.Context, resource, query string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		kind := KindUnavailable
		if ctx.Err() != nil {
			kind = KindCanceled
		}
		return nil, &FetchError{Resource: resource, Kind: kind, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	u := c.baseURL.JoinPath("api", resource)
	u.RawQuery = query

	body, err := circuitbreaker.Run(c.breaker, func() ([]byte, error) {
		return c.do(ctx, resource, u)
	})
	return body, c.classify(resource, err)
}

// classify maps breaker rejections to KindUnavailable and passes other errors through.
func (c *Client) classify(resource string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &FetchError{Resource: resource, Kind: KindUnavailable, Err: err}
	}
	return err
}

func (c *Client) do(ctx context.Context, resource string, u *url.URL) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Resource: resource, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.RequestIDHeader, id)
	}

	_, span := tracing.StartClientSpan(req, "content-api "+resource,
		attribute.String("content_api.resource", resource))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		switch {
		case ctx.Err() != nil:
			// The caller gave up: a sibling fetch failed or the client left.
			kind = KindCanceled
		case reqCtx.Err() == context.DeadlineExceeded:
			err = fmt.Errorf("request exceeded %v: %w", c.config.Timeout, err)
		}
		fe := &FetchError{Resource: resource, Kind: kind, Err: err}
		tracing.EndClientSpan(span, 0, fe)
		return nil, fe
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		fe := &FetchError{Resource: resource, Kind: KindDecode, Err: fmt.Errorf("read body: %w", err)}
		tracing.EndClientSpan(span, resp.StatusCode, fe)
		return nil, fe
	}
	if int64(len(body)) > c.config.MaxBodySize {
		fe := &FetchError{Resource: resource, Kind: KindDecode,
			Err: fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, c.config.MaxBodySize)}
		tracing.EndClientSpan(span, resp.StatusCode, fe)
		return nil, fe
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := statusError(resource, resp.StatusCode, body)
		tracing.EndClientSpan(span, resp.StatusCode, nil)
		return nil, fe
	}

	tracing.EndClientSpan(span, resp.StatusCode, nil)
	return body, nil
}

// statusError builds a KindStatus error, using the API's error object when the body has one.
func statusError(resource string, status int, body []byte) *FetchError {
	fe := &FetchError{
		Resource:   resource,
		Kind:       KindStatus,
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != nil {
		fe.APIName = er.Error.Name
		if er.Error.Message != "" {
			fe.Message = er.Error.Message
		}
	}
	return fe
}
