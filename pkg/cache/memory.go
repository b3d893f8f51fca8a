package cache

import (
	"context"

	"github.com/sasha-s/go-deadlock"
)

// MemoryStore keeps at most limit entries and evicts the oldest insert first.
type MemoryStore struct {
	limit   int
	entries map[string][]byte
	order   []string
	mutex   deadlock.Mutex
}

func NewMemoryStore(limit int) *MemoryStore {
	if limit < 1 {
		limit = 1
	}

	return &MemoryStore{
		limit:   limit,
		entries: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, ok := m.entries[key]
	if !ok {
		return nil, ErrMissing
	}

	return data, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = data

	for len(m.order) > m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	return nil
}

func (m *MemoryStore) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.entries)
}
