package ports

import (
	"context"
	"time"
)

// Cache is a get/set byte cache with TTL. The redis implementation is
// optional at runtime; callers must tolerate ErrCacheMiss and nil caches.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
