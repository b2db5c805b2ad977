package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/decred/slog"
)

// Client executes HTTP calls against the game server. It owns a process
// wide response cache for conditional GETs and translates every failure
// into the error taxonomy in errors.go. Safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	baseURL string

	httpc *http.Client
	cache *responseCache
	log   slog.Logger
}

// NewClient creates a client pointed at baseURL. The URL must be absolute
// http or https; trailing slashes are trimmed.
func NewClient(baseURL string, log slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Disabled
	}
	c := &Client{
		httpc: &http.Client{Timeout: 15 * time.Second},
		cache: newResponseCache(),
		log:   log,
	}
	if err := c.SetBaseURL(baseURL); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBaseURL swaps the server base address. The response cache is cleared
// wholesale: ETags from one server mean nothing to another.
func (c *Client) SetBaseURL(raw string) error {
	cleaned := strings.TrimRight(strings.TrimSpace(raw), "/")
	if cleaned == "" {
		return validationf("server URL is required")
	}
	u, err := url.Parse(cleaned)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationf("server URL must start with http:// or https://")
	}
	c.mu.Lock()
	changed := c.baseURL != "" && c.baseURL != cleaned
	c.baseURL = cleaned
	c.mu.Unlock()
	if changed {
		c.cache.clear()
	}
	return nil
}

// BaseURL returns the current server base address.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// InvalidateCache drops a single cached response.
func (c *Client) InvalidateCache(key string) { c.cache.invalidate(key) }

// InvalidateCachePrefix drops every cached response whose key starts with
// prefix.
func (c *Client) InvalidateCachePrefix(prefix string) { c.cache.invalidatePrefix(prefix) }

// request describes one HTTP call. Credentials travel as headers; a
// non-empty cacheKey opts the call into conditional caching.
type request struct {
	method         string
	path           string
	query          url.Values
	player         string
	password       string
	body           any
	cacheKey       string
	ifMatch        string
	idempotencyKey string
}

// envelope is the server's standard response wrapper.
type envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// do performs the call and returns the raw response body. A 304 answer is
// resolved from the cache so callers never see not-modified as an error.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	u := c.BaseURL() + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var payload io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p := strings.TrimSpace(r.player); p != "" {
		req.Header.Set("player", p)
	}
	if pw := strings.TrimSpace(r.password); pw != "" {
		req.Header.Set("password", pw)
	}
	if r.ifMatch != "" {
		req.Header.Set("If-Match", r.ifMatch)
	}
	if r.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.idempotencyKey)
	}

	cached, haveCached := c.cache.get(r.cacheKey)
	if haveCached && cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}

	c.log.Debugf("%s %s", r.method, u)

	res, err := c.httpc.Do(req)
	if err != nil {
		// Only the caller's own cancellation passes through raw. The
		// http.Client timeout also surfaces as a deadline error, and that
		// one is a network failure like any other.
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotModified && haveCached && cached.body != nil {
		return cached.body, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, c.errorFrom(res, body)
	}

	if r.cacheKey != "" {
		c.cache.put(r.cacheKey, res.Header.Get("ETag"), body)
	}
	return body, nil
}

// errorFrom resolves the user-facing message for a non-2xx response. The
// priority order is fixed: X-Msg header, then the body's msg/message field,
// then the static status mapping, then the raw status line.
func (c *Client) errorFrom(res *http.Response, body []byte) error {
	msg := res.Header.Get("X-Msg")
	if msg == "" && len(body) > 0 {
		var parsed struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if parsed.Msg != "" {
				msg = parsed.Msg
			} else if parsed.Message != "" {
				msg = parsed.Message
			}
		}
	}
	if msg == "" {
		msg = statusMessage(res.StatusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("error: %d %s", res.StatusCode, http.StatusText(res.StatusCode))
	}
	return &RequestError{StatusCode: res.StatusCode, Message: msg}
}

// decodeEnvelope parses the standard {status, msg, data} wrapper. A bare
// JSON array is tolerated and wrapped, since some server builds answer the
// rounds listing without the envelope.
func decodeEnvelope(body []byte) (*envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &MalformedResponseError{Msg: "empty body"}
	}
	if trimmed[0] == '[' {
		return &envelope{Status: 200, Data: json.RawMessage(trimmed)}, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &MalformedResponseError{Msg: err.Error()}
	}
	return &env, nil
}
