// Package cache provides the byte-oriented stores behind the API client's
// read-through cache.
package cache

import (
	"context"
	"time"
)

// Backend is a key/value store with per-entry expiry.
type Backend interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// New returns a Redis backend when redisURL is set and an in-memory one
// otherwise.
func New(redisURL string) (Backend, error) {
	if redisURL == "" {
		return NewMemory(), nil
	}
	return NewRedis(redisURL, "irrigo:")
}
