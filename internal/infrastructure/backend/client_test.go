package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/infrastructure/cache"
)

func testClient(t *testing.T, serverURL string, maxRetries int, opts ...ClientOption) *Client {
	t.Helper()
	cfg := &config.BackendConfig{
		BaseURL:        serverURL,
		APIKey:         "test-key",
		MaxRetries:     maxRetries,
		RequestTimeout: 2 * time.Second,
	}
	opts = append([]ClientOption{WithBackoff(time.Millisecond, 5*time.Millisecond)}, opts...)
	return NewClient(cfg, nil, opts...)
}

func TestBackoffDelayCappedDoubling(t *testing.T) {
	c := NewClient(&config.BackendConfig{BaseURL: "http://x"}, nil)

	require.Equal(t, time.Second, c.backoffDelay(0))
	require.Equal(t, 2*time.Second, c.backoffDelay(1))
	require.Equal(t, 4*time.Second, c.backoffDelay(2))
	require.Equal(t, 5*time.Second, c.backoffDelay(3))
	require.Equal(t, 5*time.Second, c.backoffDelay(10))
}

func TestRequestRetriesUntilSuccess(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 3)
	data, err := c.Request(context.Background(), http.MethodGet, "/v1/ping", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(data))
	require.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestRequestExhaustsRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 2)
	_, err := c.Request(context.Background(), http.MethodGet, "/v1/ping", nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusInternalServerError, httpErr.Status)
	// maxRetries=2 means attempts 0, 1 and 2.
	require.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestRequestPerAttemptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := &config.BackendConfig{
		BaseURL:        srv.URL,
		MaxRetries:     0,
		RequestTimeout: 50 * time.Millisecond,
	}
	c := NewClient(cfg, nil, WithBackoff(time.Millisecond, time.Millisecond))

	_, err := c.Request(context.Background(), http.MethodGet, "/v1/slow", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timeout after 50ms")
}

func TestRequestStopsOnCallerCancel(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(t, srv.URL, 5)
	_, err := c.Request(ctx, http.MethodGet, "/v1/ping", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestSendsAuthAndContentHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 0)
	_, err := c.Request(context.Background(), http.MethodPost, "/v1/things", map[string]string{"a": "b"})
	require.NoError(t, err)
}

func TestGetCachesAndMutationInvalidates(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&hits, 1)
		}
		w.Write([]byte(`{"value":"fresh"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 0, WithCache(cache.NewMemory(), time.Minute))
	ctx := context.Background()

	env := c.Get(ctx, "/v1/settings")
	require.True(t, env.Success)
	require.False(t, env.Metadata.FromCache)

	env = c.Get(ctx, "/v1/settings")
	require.True(t, env.Success)
	require.True(t, env.Metadata.Cached)
	require.True(t, env.Metadata.FromCache)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))

	// A mutation on the endpoint drops the cached GET.
	env = c.Put(ctx, "/v1/settings", map[string]string{"k": "v"})
	require.True(t, env.Success)

	env = c.Get(ctx, "/v1/settings")
	require.True(t, env.Success)
	require.False(t, env.Metadata.FromCache)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestGetFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 0)
	env := c.Get(context.Background(), "/v1/ping")
	require.False(t, env.Success)
	require.Nil(t, env.Data)
	require.Contains(t, env.Error, "502")
}

func TestCacheKeySanitizesEndpoint(t *testing.T) {
	key := cacheKey(http.MethodGet, "/v1/holidays?year=2026")
	require.Equal(t, "GET__v1_holidays_year_2026", key)
	require.False(t, strings.ContainsAny(key, "/?=&"))
}
