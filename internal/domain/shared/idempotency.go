package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys that have already been accepted so
// that a retried write is not executed twice.
type IdempotencyStore interface {
	// Reserve claims the key for ttl. It returns false when the key is
	// already held by an earlier request.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key so that a failed request can be retried
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
