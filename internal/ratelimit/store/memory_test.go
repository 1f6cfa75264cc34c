package store

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestMemory_FixedWindow(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()
	key := "api:1.2.3.4"

	for i := 0; i < 3; i++ {
		d, err := m.Allow(ctx, key, 3, time.Second)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d denied, want admitted", i+1)
		}
	}

	d, err := m.Allow(ctx, key, 3, time.Second)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if d.Allowed {
		t.Fatal("4th request admitted, want denied")
	}
	if d.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining)
	}
}

func TestMemory_WindowExpiryResetsCount(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()
	key := "api:1.2.3.4"

	// Exhaust a window that is already expired.
	m.entries[key] = &memoryEntry{count: 3, resetAt: time.Now().Add(-time.Second)}

	d, err := m.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !d.Allowed {
		t.Fatal("request after window expiry denied, want admitted")
	}

	count, err := m.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count after reset = %d, want 1", count)
	}
}

func TestMemory_KeyIsolation(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		m.Allow(ctx, "api:a", 3, time.Minute)
	}

	d, err := m.Allow(ctx, "api:b", 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !d.Allowed {
		t.Fatal("exhausting key A denied key B")
	}
}

func TestMemory_DenialDoesNotMutateCount(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()
	key := "api:1.2.3.4"

	for i := 0; i < 3; i++ {
		m.Allow(ctx, key, 3, time.Minute)
	}
	for i := 0; i < 10; i++ {
		m.Allow(ctx, key, 3, time.Minute)
	}

	count, err := m.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count after denials = %d, want 3", count)
	}
}

func TestMemory_SweepEvictsExpiredEntries(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()

	expired := time.Now().Add(-time.Second)
	for i := 0; i < 10; i++ {
		m.entries["stale:"+strconv.Itoa(i)] = &memoryEntry{count: 1, resetAt: expired}
	}

	for i := 0; i < sweepInterval; i++ {
		m.Allow(ctx, "api:live", 1000, time.Minute)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if key != "api:live" {
			t.Errorf("expired entry %q survived the sweep", key)
		}
	}
}

func TestMemory_ConcurrentCeiling(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()
	key := "api:1.2.3.4"
	const limit = 50
	const callers = 20
	const callsEach = 10 // 200 attempts against a ceiling of 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				d, err := m.Allow(ctx, key, limit, time.Minute)
				if err != nil {
					t.Errorf("Allow() error = %v", err)
					return
				}
				if d.Allowed {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if admitted != limit {
		t.Errorf("admitted %d requests, want exactly %d", admitted, limit)
	}
}

func TestMemory_Reset(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	ctx := context.Background()
	key := "api:1.2.3.4"

	m.Allow(ctx, key, 3, time.Minute)
	if err := m.Reset(ctx, key); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	count, err := m.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count after reset = %d, want 0", count)
	}
}
