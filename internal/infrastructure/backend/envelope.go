package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Metadata describes how a response was produced.
type Metadata struct {
	Cached       bool  `json:"cached"`
	ResponseTime int64 `json:"response_time_ms"`
	FromCache    bool  `json:"from_cache"`
	Stale        bool  `json:"stale"`
}

// Envelope is the uniform result of every verb wrapper. On failure Success is
// false, Data is nil and Error holds the message; timing metadata is always
// populated.
type Envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error,omitempty"`
	Metadata Metadata        `json:"metadata"`
}

// cacheKey maps a verb+endpoint pair onto an identifier-safe cache key,
// e.g. GET /v1/holidays?year=2026 -> "GET__v1_holidays_year_2026".
func cacheKey(method, endpoint string) string {
	var b strings.Builder
	b.Grow(len(method) + 1 + len(endpoint))
	b.WriteString(method)
	b.WriteByte('_')
	for _, r := range endpoint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Get fetches endpoint, consulting the GET cache first when one is configured.
func (c *Client) Get(ctx context.Context, endpoint string) Envelope {
	start := time.Now()
	key := cacheKey(http.MethodGet, endpoint)

	if c.cache != nil {
		if b, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return Envelope{
				Success: true,
				Data:    b,
				Metadata: Metadata{
					Cached:       true,
					FromCache:    true,
					ResponseTime: time.Since(start).Milliseconds(),
				},
			}
		} else if err != nil && c.logger != nil {
			// Fail open: a broken cache never blocks the request.
			c.logger.WithField("key", key).WithError(err).Warn("hris: cache read failed")
		}
	}

	data, err := c.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Envelope{
			Success:  false,
			Error:    err.Error(),
			Metadata: Metadata{ResponseTime: time.Since(start).Milliseconds()},
		}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil && c.logger != nil {
			c.logger.WithField("key", key).WithError(err).Warn("hris: cache write failed")
		}
	}
	return Envelope{
		Success:  true,
		Data:     data,
		Metadata: Metadata{ResponseTime: time.Since(start).Milliseconds()},
	}
}

// Post performs a POST and invalidates the endpoint's GET cache entry.
func (c *Client) Post(ctx context.Context, endpoint string, body any) Envelope {
	return c.mutate(ctx, http.MethodPost, endpoint, body)
}

// Put performs a PUT and invalidates the endpoint's GET cache entry.
func (c *Client) Put(ctx context.Context, endpoint string, body any) Envelope {
	return c.mutate(ctx, http.MethodPut, endpoint, body)
}

// Delete performs a DELETE and invalidates the endpoint's GET cache entry.
func (c *Client) Delete(ctx context.Context, endpoint string) Envelope {
	return c.mutate(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Client) mutate(ctx context.Context, method, endpoint string, body any) Envelope {
	start := time.Now()

	data, err := c.Request(ctx, method, endpoint, body)
	if err != nil {
		return Envelope{
			Success:  false,
			Error:    err.Error(),
			Metadata: Metadata{ResponseTime: time.Since(start).Milliseconds()},
		}
	}

	// Best-effort invalidation of the cached GET for this endpoint; a cache
	// failure is logged and swallowed, never surfaced.
	if c.cache != nil {
		key := cacheKey(http.MethodGet, endpoint)
		if err := c.cache.Delete(ctx, key); err != nil && c.logger != nil {
			c.logger.WithField("key", key).WithError(err).Warn("hris: cache invalidation failed")
		}
	}
	return Envelope{
		Success:  true,
		Data:     data,
		Metadata: Metadata{ResponseTime: time.Since(start).Milliseconds()},
	}
}
