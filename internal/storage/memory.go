package storage

import (
	"context"
	"sync"
)

// Memory is the in-process Store used in tests and as the default driver
// when no database is configured.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.data[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (m *Memory) Put(ctx context.Context, namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[namespace] = cp
	return nil
}

func (m *Memory) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, namespace)
	return nil
}
