package store

import (
	"context"
	"sync"
)

// MockStore is an in-memory Backend for tests.
type MockStore struct {
	Snap *Snapshot
	Err  error

	mu       sync.Mutex
	calls    int
	replaced *Snapshot
	closed   bool
}

// Snapshot returns Snap, or Err when set.
func (m *MockStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Snap == nil {
		return &Snapshot{Categories: EnsureSystemCategories(nil)}, nil
	}
	return m.Snap, nil
}

// Replace records snap and makes it the next snapshot
func (m *MockStore) Replace(_ context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.replaced = snap
	m.Snap = snap
	return nil
}

// Close marks the store closed
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns how many snapshots were requested
func (m *MockStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Replaced returns the last snapshot passed to Replace
func (m *MockStore) Replaced() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}

// Closed reports whether Close was called
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
