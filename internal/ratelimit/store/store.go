package store

import (
	"context"
	"time"
)

// Decision is the outcome of one admission check.
type Decision struct {
	// Allowed reports whether the request is admitted.
	Allowed bool
	// Limit is the ceiling for the current window.
	Limit int64
	// Remaining is the number of requests left before the ceiling.
	Remaining int64
	// ResetAt is when the current window expires.
	ResetAt time.Time
}

// Store defines the fixed-window admission storage backend.
// Implementations must be safe for concurrent use and must make the
// check-then-count step atomic per key: two concurrent calls on the same
// key must never both slip under the ceiling. A denied call must not
// advance the counter.
type Store interface {
	// Allow performs one atomic check-and-admit for the given key.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (Decision, error)

	// Get retrieves the current count for the given key without counting.
	// Returns 0 if the key doesn't exist or its window has expired.
	Get(ctx context.Context, key string) (int64, error)

	// Reset removes the counter for the given key.
	Reset(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
