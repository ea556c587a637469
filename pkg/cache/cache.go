package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by implementations when a key is absent or
// expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw bytes with a TTL. Writers to the underlying records call
// DeletePrefix to invalidate everything cached for an entity; keys are
// structured "<prefix><entity-id>:<qualifier>" to make that cheap.
type Cache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}
