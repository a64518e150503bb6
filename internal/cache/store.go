package cache

import (
	"context"
	"time"

	"github.com/openmysteries/backend/internal/article"
)

// Store is the external durable keyed store the generation pipeline runs
// against. Documents are permanent (no expiration); locks are ephemeral
// set-if-absent markers with a bounded lifetime.
type Store interface {
	// GetDocument returns the cached document for key, with ok=false on a miss.
	GetDocument(ctx context.Context, key string) (article.Document, bool, error)
	// SetDocument persists the document under key with no expiration.
	SetDocument(ctx context.Context, key string, doc article.Document) error
	// AcquireLock atomically sets the lock slot if absent, with the given TTL.
	// Returns false when another holder already has it.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// ReleaseLock deletes the lock slot. Idempotent: releasing an expired or
	// already-released lock is not an error.
	ReleaseLock(ctx context.Context, key string) error
}
