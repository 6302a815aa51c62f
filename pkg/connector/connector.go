// Package connector implements the Comet store API connector. It issues
// CRUD-style requests against a store-scoped REST API, authenticates every
// request from stored credentials, and transparently retries requests the
// server throttles with HTTP 429.
//
// A Connector is immutable after construction and safe for concurrent use.
// Each logical call runs its attempts strictly sequentially; independent
// calls are not ordered relative to each other.
package connector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/comet/pkg/clients"
	"github.com/ajitpratap0/comet/pkg/config"
	cometerrors "github.com/ajitpratap0/comet/pkg/errors"
	jsonpool "github.com/ajitpratap0/comet/pkg/json"
	"github.com/ajitpratap0/comet/pkg/logger"
	"github.com/ajitpratap0/comet/pkg/observability"
)

// Authentication and content negotiation headers sent on every request.
const (
	headerAuthToken  = "X-Auth-Token"
	headerAuthClient = "X-Auth-Client"
)

// resourceVersion is the store-scoped API version segment.
const resourceVersion = "v2"

// Connector executes authenticated CRUD requests against a single store.
type Connector struct {
	config       *config.ConnectorConfig
	resourceRoot string
	httpClient   *clients.HTTPClient
	logger       *zap.Logger

	// slots is the admission-control semaphore; nil means unbounded
	slots chan struct{}
}

// Option customizes a Connector at construction time.
type Option func(*Connector)

// WithLogger sets the logger used for attempt and retry diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Connector) {
		c.logger = l
	}
}

// WithHTTPClient replaces the underlying HTTP transport.
func WithHTTPClient(hc *clients.HTTPClient) Option {
	return func(c *Connector) {
		c.httpClient = hc
	}
}

// New creates a Connector from the given configuration. It fails
// synchronously on missing or invalid configuration; no connector is
// produced and nothing touches the network.
func New(cfg *config.ConnectorConfig, opts ...Option) (*Connector, error) {
	if cfg == nil {
		return nil, cometerrors.New(cometerrors.ErrorTypeConfig, "configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Connector{
		config: cfg,
		resourceRoot: strings.TrimSuffix(cfg.APIBaseURL, "/") +
			"/stores/" + cfg.StoreHash + "/" + resourceVersion,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get()
	}
	c.logger = c.logger.With(zap.String("component", "connector"),
		zap.String("store_hash", cfg.StoreHash))

	if c.httpClient == nil {
		c.httpClient = clients.NewHTTPClient(cfg.HTTP, c.logger)
	}

	if cfg.Performance.IsBounded() {
		c.slots = make(chan struct{}, cfg.Performance.MaxConcurrentRequests)
	}

	return c, nil
}

// ResourceRoot returns the fully-qualified base URL prefix prepended to
// every relative resource path.
func (c *Connector) ResourceRoot() string {
	return c.resourceRoot
}

// Get issues a GET request for the given resource path.
func (c *Connector) Get(ctx context.Context, path string) (interface{}, error) {
	return c.execute(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with the given body for the given resource path.
func (c *Connector) Post(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.execute(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with the given body for the given resource path.
func (c *Connector) Put(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.execute(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request for the given resource path.
func (c *Connector) Delete(ctx context.Context, path string) (interface{}, error) {
	return c.execute(ctx, http.MethodDelete, path, nil)
}

// Close releases idle transport resources.
func (c *Connector) Close() error {
	return c.httpClient.Close()
}

// execute runs one logical call: dispatch, classify, and loop on throttling.
// At most one attempt of a logical call is in flight at any instant.
func (c *Connector) execute(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	if path == "" {
		return nil, cometerrors.New(cometerrors.ErrorTypeValidation, "path is required")
	}

	var payload []byte
	if body != nil {
		data, err := jsonpool.Marshal(body)
		if err != nil {
			return nil, cometerrors.Wrap(err, cometerrors.ErrorTypeValidation,
				"failed to encode request body")
		}
		payload = data
	}

	url := c.resourceRoot + normalizePath(path)
	retries := 0

	for {
		status, raw, err := c.attempt(ctx, method, url, payload)
		if err != nil {
			return nil, err
		}

		switch status {
		case http.StatusOK:
			return decodeBody(raw)

		case http.StatusTooManyRequests:
			retries++
			if c.config.Reliability.IsCapped() && retries > c.config.Reliability.MaxRetries {
				return nil, cometerrors.New(cometerrors.ErrorTypeRateLimit,
					"rate limited and retry ceiling reached").
					WithDetail("retries", retries-1)
			}

			delay := c.backoffDelay(raw.retryAfter)
			observability.RecordRetry(method)
			c.logger.Debug("rate limited, retry scheduled",
				zap.String("method", method),
				zap.String("path", path),
				zap.Duration("delay", delay),
				zap.Int("retry", retries))

			if err := waitBackoff(ctx, delay); err != nil {
				return nil, cometerrors.Wrap(err, cometerrors.ErrorTypeTimeout,
					"canceled while awaiting rate-limit backoff")
			}

		default:
			return nil, cometerrors.NewAPIError(status, raw.body)
		}
	}
}

// attemptResult carries the classified payload of a single HTTP exchange.
type attemptResult struct {
	body       []byte
	retryAfter time.Duration
}

// attempt performs a single HTTP exchange under an admission-control slot.
// The slot is released before the caller waits on any backoff, so a
// throttled call never starves other pending calls during its wait.
func (c *Connector) attempt(ctx context.Context, method, url string, payload []byte) (int, attemptResult, error) {
	if err := c.acquire(ctx); err != nil {
		return 0, attemptResult{}, cometerrors.Wrap(err, cometerrors.ErrorTypeTimeout,
			"canceled while awaiting request slot")
	}
	defer c.release()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, attemptResult{}, cometerrors.Wrap(err, cometerrors.ErrorTypeValidation,
			"failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAuthClient, c.config.ClientID)
	req.Header.Set(headerAuthToken, c.config.AccessToken)

	observability.IncInflight()
	start := time.Now()

	resp, err := c.httpClient.Do(req)

	observability.DecInflight()

	if err != nil {
		observability.RecordTransportError(method)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, attemptResult{}, cometerrors.Wrap(err, cometerrors.ErrorTypeTimeout,
				"request canceled")
		}
		return 0, attemptResult{}, cometerrors.Wrap(err, cometerrors.ErrorTypeConnection,
			"request failed")
	}
	defer resp.Body.Close()

	buf := jsonpool.GetBuffer()
	defer jsonpool.PutBuffer(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		observability.RecordTransportError(method)
		return 0, attemptResult{}, cometerrors.Wrap(err, cometerrors.ErrorTypeConnection,
			"failed to read response body")
	}

	observability.RecordRequest(method, resp.StatusCode, time.Since(start))

	// The pooled buffer is reused after return; the attempt owns a copy.
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())

	result := attemptResult{body: raw}
	if resp.StatusCode == http.StatusTooManyRequests {
		result.retryAfter = parseRetryAfter(resp.Header, c.config.Reliability.MinRetryAfter)
	}

	return resp.StatusCode, result, nil
}

// acquire takes an admission-control slot, honoring cancellation.
func (c *Connector) acquire(ctx context.Context) error {
	if c.slots == nil {
		return nil
	}
	select {
	case c.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release frees an admission-control slot.
func (c *Connector) release() {
	if c.slots == nil {
		return
	}
	<-c.slots
}

// decodeBody parses a 200 response body. An empty body resolves to nil;
// a malformed body surfaces as a parse error rather than a panic in the
// caller's continuation.
func decodeBody(raw attemptResult) (interface{}, error) {
	if len(raw.body) == 0 {
		return nil, nil
	}

	var parsed interface{}
	if err := jsonpool.Unmarshal(raw.body, &parsed); err != nil {
		return nil, cometerrors.Wrap(err, cometerrors.ErrorTypeParse,
			"failed to decode response body")
	}
	return parsed, nil
}

// normalizePath guarantees exactly one leading separator so callers can
// pass either "products" or "/products".
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
