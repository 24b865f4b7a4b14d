package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store backed by a map, scoped to one run's or one
// process's lifetime. The default choice when no durable cache is needed.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, url string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[url]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) Put(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.URL] = entry
	return nil
}

func (m *Memory) Close() error { return nil }
