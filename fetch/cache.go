package fetch

import (
	"context"
	"net/http"
	"sync"
)

// CachedClient wraps a Client with a naive map-based response cache.
// Successful GET responses are cached by resolved URL forever — there is
// no eviction and no TTL.
type CachedClient struct {
	client *Client

	mu      sync.Mutex
	entries map[string]*Response
}

// NewCached wraps client with a response cache.
func NewCached(client *Client) *CachedClient {
	return &CachedClient{
		client:  client,
		entries: make(map[string]*Response),
	}
}

// Get fetches path, serving repeat requests from the cache. Only
// successful responses are cached.
func (c *CachedClient) Get(ctx context.Context, path string) (*Response, error) {
	key := c.client.resolveURL(path)

	c.mu.Lock()
	if resp, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return resp, nil
	}
	c.mu.Unlock()

	resp, err := c.client.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return resp, err
	}

	c.mu.Lock()
	c.entries[key] = resp
	c.mu.Unlock()
	return resp, nil
}

// Text fetches path through the cache and returns the body as a string.
func (c *CachedClient) Text(ctx context.Context, path string) (string, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// Invalidate removes one cached entry.
func (c *CachedClient) Invalidate(path string) {
	key := c.client.resolveURL(path)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every cached entry.
func (c *CachedClient) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Response)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *CachedClient) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
