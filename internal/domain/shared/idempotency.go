package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks request keys that have already been accepted so a
// retried submission does not commit twice. MarkProcessed must be atomic:
// exactly one of two concurrent callers with the same key sees true.
type IdempotencyStore interface {
	// MarkProcessed records the key with a TTL. Returns true if the key was
	// newly recorded, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release removes a recorded key so the same key can be submitted again.
	// Called when the request guarded by the key fails without committing.
	Release(ctx context.Context, key string) error
	// IsProcessed reports whether the key has been recorded.
	IsProcessed(ctx context.Context, key string) (bool, error)
}
