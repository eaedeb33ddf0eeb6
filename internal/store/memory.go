package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps everything in process memory. Used for ephemeral
// sessions and tests; FailSet makes every Set fail to simulate a full disk.
type MemoryBackend struct {
	mu      sync.Mutex
	data    map[string][]byte
	FailSet error
	FailGet error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet != nil {
		return nil, false, m.FailGet
	}
	b, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	b := make([]byte, len(value))
	copy(b, value)
	m.data[key] = b
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
