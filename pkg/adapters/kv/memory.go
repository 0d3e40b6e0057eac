package kv

import (
	"context"
	"sync"
)

// Memory implements core.Storage in memory. It is used in tests and as
// a throwaway backend; the fault-injection hooks exercise the store's
// failure-absorption and write-ordering paths.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// SetErr, when non-nil, is returned by every Set.
	SetErr error
	// RemoveErr, when non-nil, is returned by every Remove.
	RemoveErr error
	// OnSet, when non-nil, runs before a Set takes effect. Tests use it
	// to block or reorder write completions.
	OnSet func(key string)
}

// NewMemory creates an empty in-memory key-value store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.OnSet != nil {
		m.OnSet(key)
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Snapshot returns a copy of the stored value for key; a test helper.
func (m *Memory) Snapshot(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Len returns the number of stored keys; a test helper.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
