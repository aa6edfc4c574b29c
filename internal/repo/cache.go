package repo

import (
	"context"
	"time"
)

// Cache is the fast keyed store in front of the authoritative database.
// Values are opaque serialized blobs with an independent per-key TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
