package store

import (
	"context"
	"sync"
	"time"
)

// sweepInterval is how many Allow calls pass between opportunistic sweeps
// of expired entries.
const sweepInterval = 100

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// Memory is an in-memory implementation of Store. State is per-process
// and disposable: a restart clears every window, which is the accepted
// trade-off for this limiter. Suitable for single-instance deployments
// and development.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	calls   uint64
}

// NewMemory creates a new in-memory store. Expired entries are swept
// opportunistically every sweepInterval admission checks rather than by a
// background goroutine, bounding memory growth from one-time clients
// without any timer to manage.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*memoryEntry),
	}
}

func (m *Memory) Allow(_ context.Context, key string, limit int64, window time.Duration) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls%sweepInterval == 0 {
		m.sweepLocked()
	}

	now := time.Now()
	entry, exists := m.entries[key]

	if !exists || now.After(entry.resetAt) {
		entry = &memoryEntry{count: 1, resetAt: now.Add(window)}
		m.entries[key] = entry
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: max(0, limit-1),
			ResetAt:   entry.resetAt,
		}, nil
	}

	if entry.count >= limit {
		// Denied calls leave the counter untouched.
		return Decision{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   entry.resetAt,
		}, nil
	}

	entry.count++
	return Decision{
		Allowed:   true,
		Limit:     limit,
		Remaining: max(0, limit-entry.count),
		ResetAt:   entry.resetAt,
	}, nil
}

func (m *Memory) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists || time.Now().After(entry.resetAt) {
		return 0, nil
	}
	return entry.count, nil
}

func (m *Memory) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Close implements Store. The memory store holds no external resources.
func (m *Memory) Close() error {
	return nil
}

// sweepLocked drops entries whose window has already passed. Callers must
// hold mu, so a sweep can never race an Allow that is reviving the same
// key: both sides test the same resetAt under the same lock.
func (m *Memory) sweepLocked() {
	now := time.Now()
	for key, entry := range m.entries {
		if now.After(entry.resetAt) {
			delete(m.entries, key)
		}
	}
}
