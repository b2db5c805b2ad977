package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)
	return c, srv
}

func TestSetBaseURLValidation(t *testing.T) {
	_, err := NewClient("ftp://example.com", nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = NewClient("   ", nil)
	require.ErrorAs(t, err, &vErr)

	c, err := NewClient("https://example.com///", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", c.BaseURL())
}

func TestErrorMessagePriority(t *testing.T) {
	t.Run("header wins", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Msg", "from header")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"msg":"from body"}`))
		}))
		_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "from header", reqErr.Message)
		assert.Equal(t, http.StatusConflict, reqErr.StatusCode)
	})

	t.Run("body msg next", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"msg":"from body"}`))
		}))
		_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "from body", reqErr.Message)
	})

	t.Run("status mapping next", func(t *testing.T) {
		for code, want := range map[int]string{
			401: "invalid credentials",
			403: "not authorized for this action",
			404: "resource not found",
			409: "action not valid for the current phase",
			428: "precondition required",
		} {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))
			_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, want, reqErr.Message, "status %d", code)
		}
	})

	t.Run("status line fallback", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, reqErr.Message, "418")
	})
}

func TestConditionalGetServesCachedBodyOn304(t *testing.T) {
	hits := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte(`{"status":200,"msg":"ok","data":[]}`))
	}))

	first, err := c.do(context.Background(), request{method: http.MethodGet, path: "/rounds", cacheKey: "k"})
	require.NoError(t, err)

	second, err := c.do(context.Background(), request{method: http.MethodGet, path: "/rounds", cacheKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, first, second, "304 must resolve to the cached body")
	assert.Equal(t, 2, hits)
}

func TestInvalidateCacheForcesFullFetch(t *testing.T) {
	conditional := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") != "" {
			conditional++
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte(`{"status":200}`))
	}))

	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x", cacheKey: "k"})
	require.NoError(t, err)
	c.InvalidateCache("k")
	_, err = c.do(context.Background(), request{method: http.MethodGet, path: "/x", cacheKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, 0, conditional, "invalidated entry must not send If-None-Match")
}

func TestBaseURLChangeClearsCache(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte(`{}`))
	}))
	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x", cacheKey: "k"})
	require.NoError(t, err)
	_, ok := c.cache.get("k")
	require.True(t, ok)

	require.NoError(t, c.SetBaseURL("https://other.example.com"))
	_, ok = c.cache.get("k")
	assert.False(t, ok, "switching servers must drop all cached ETags")
	require.NoError(t, c.SetBaseURL(srv.URL))
}

func TestCredentialHeaders(t *testing.T) {
	var gotPlayer, gotPassword, gotIdem, gotIfMatch string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlayer = r.Header.Get("player")
		gotPassword = r.Header.Get("password")
		gotIdem = r.Header.Get("Idempotency-Key")
		gotIfMatch = r.Header.Get("If-Match")
		w.Write([]byte(`{}`))
	}))

	_, err := c.do(context.Background(), request{
		method:         http.MethodPost,
		path:           "/x",
		player:         " Alice ",
		password:       "hunter2",
		ifMatch:        `"v3"`,
		idempotencyKey: "idem-1",
		body:           map[string]bool{"vote": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", gotPlayer)
	assert.Equal(t, "hunter2", gotPassword)
	assert.Equal(t, "idem-1", gotIdem)
	assert.Equal(t, `"v3"`, gotIfMatch)
}

func TestTransportErrorWrapping(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", nil)
	require.NoError(t, err)
	_, err = c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, err.Error(), "connection error")
}

func TestClientTimeoutIsTransportError(t *testing.T) {
	blocked := make(chan struct{})
	defer close(blocked)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	c.httpc.Timeout = 50 * time.Millisecond

	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr, "a client-side timeout is a network failure, not a caller cancellation")
}

func TestCallerCancellationPassesThrough(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.do(ctx, request{method: http.MethodGet, path: "/x"})
	require.Error(t, err)
	var tErr *TransportError
	assert.False(t, errors.As(err, &tErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"status":200,"msg":"ok","data":{"id":"g1"}}`))
	require.NoError(t, err)
	assert.Equal(t, 200, env.Status)

	env, err = decodeEnvelope([]byte(`[1,2,3]`))
	require.NoError(t, err, "bare arrays are tolerated")
	assert.NotNil(t, env.Data)

	_, err = decodeEnvelope([]byte(``))
	var mErr *MalformedResponseError
	require.ErrorAs(t, err, &mErr)

	_, err = decodeEnvelope([]byte(`not json`))
	require.ErrorAs(t, err, &mErr)
}
