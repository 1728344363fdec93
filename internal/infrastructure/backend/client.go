package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

const (
	defaultBackoffBase = time.Second
	defaultBackoffCap  = 5 * time.Second
)

// HTTPError is a non-2xx response from the upstream API. It is retryable like
// a transport failure; after retry exhaustion the last one reaches the caller.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// Client talks to the hosted HRIS API. Every request retries transient
// failures with capped exponential backoff; each attempt races a per-attempt
// timeout that aborts the in-flight call. GET results can be cached in an
// optional KeyValueCache and are invalidated by mutating verbs on the same
// endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	timeout    time.Duration

	cache    ports.KeyValueCache
	cacheTTL time.Duration

	backoffBase time.Duration
	backoffCap  time.Duration

	logger *logrus.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCache enables GET-result caching with the given freshness TTL.
func WithCache(cache ports.KeyValueCache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithHTTPClient overrides the transport; used by tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBackoff overrides the retry delay parameters; used by tests.
func WithBackoff(base, cap time.Duration) ClientOption {
	return func(c *Client) {
		c.backoffBase = base
		c.backoffCap = cap
	}
}

// NewClient creates an HRIS API client from config.
func NewClient(cfg *config.BackendConfig, logger *logrus.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{},
		maxRetries:  cfg.MaxRetries,
		timeout:     cfg.RequestTimeout,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// backoffDelay is the wait before retry n+1: base*2^attempt, capped.
func (c *Client) backoffDelay(attempt int) time.Duration {
	d := c.backoffBase << uint(attempt)
	if d > c.backoffCap || d <= 0 {
		d = c.backoffCap
	}
	return d
}

// Request performs method on endpoint with attempts 0..maxRetries inclusive.
// Timeouts and non-2xx statuses are retryable; the final attempt's failure is
// surfaced as-is. On success the raw response body is returned.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = b
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffDelay(attempt - 1)
			if c.logger != nil {
				c.logger.WithFields(logrus.Fields{
					"method":   method,
					"endpoint": endpoint,
					"attempt":  attempt,
					"delay":    delay.String(),
				}).WithError(lastErr).Warn("hris: retrying request")
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		data, err := c.attempt(ctx, method, endpoint, payload)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			// Caller cancelled; don't dress this up as a transport failure.
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, lastErr
}

// attempt issues one HTTP call bounded by the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timeout after %dms", c.timeout.Milliseconds())
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
