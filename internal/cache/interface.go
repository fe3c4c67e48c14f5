package cache

import (
	"context"
	"time"
)

// Cache stores encoded values with an explicit time to live.
type Cache interface {
	// Get decodes the value stored under key into dst. It reports false on a
	// miss or an expired entry.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Invalidate drops every entry.
	Invalidate(ctx context.Context) error
}
