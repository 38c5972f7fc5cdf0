// Package apiclient talks to the remote irrigation API. Reads go through a
// shared cache and concurrent identical reads are collapsed into one request.
package apiclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/irrigo/dashboard/internal/cache"
)

// Client is a typed client for the remote API. Every call takes the viewer's
// bearer token; an empty token makes an anonymous request.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Backend
	ttl     time.Duration
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables read-through caching of GET responses for ttl.
func WithCache(backend cache.Backend, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = backend
		c.ttl = ttl
	}
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops every cached response of a resource collection
// ("scripts", "models", "users").
func (c *Client) Invalidate(ctx context.Context, resource string) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.DeletePrefix(ctx, resource+":")
}

// cacheKey scopes a cached response to its resource collection and to the
// viewer, since responses carry viewer-relative fields such as "favorite".
func cacheKey(path string, query url.Values, token string) string {
	resource := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	viewer := "anon"
	if token != "" {
		sum := sha256.Sum256([]byte(token))
		viewer = hex.EncodeToString(sum[:8])
	}
	key := resource + ":" + viewer + ":" + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	return key
}

// get fetches path and decodes the JSON body into T, consulting the cache
// first when one is configured.
func get[T any](ctx context.Context, c *Client, token, path string, query url.Values) (T, error) {
	var zero T
	key := cacheKey(path, query, token)

	if c.cache != nil {
		if data, ok, err := c.cache.Get(ctx, key); err != nil {
			slog.Warn("api cache read failed", "key", key, "error", err)
		} else if ok {
			var out T
			if err := json.Unmarshal(data, &out); err == nil {
				return out, nil
			}
		}
	}

	// The shared fetch outlives any single caller; each caller stops waiting
	// when its own context is done. The HTTP client timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		body, err := c.do(fetchCtx, http.MethodGet, token, path, query, nil)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Set(fetchCtx, key, body, c.ttl); err != nil {
				slog.Warn("api cache write failed", "key", key, "error", err)
			}
		}
		return body, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("GET %s: %w", path, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}
	if res.Shared {
		slog.Debug("singleflight: shared api fetch", "key", key)
	}
	v := res.Val

	var out T
	if err := json.Unmarshal(v.([]byte), &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// send issues a mutating request and decodes the response into out when out
// is not nil.
func (c *Client) send(ctx context.Context, method, token, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}
	body, err := c.do(ctx, method, token, path, nil, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, token, path string, query url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return nil, newError(resp.StatusCode, body)
	}
	return body, nil
}
