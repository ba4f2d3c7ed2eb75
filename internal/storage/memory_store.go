package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. Used by tests and as the
// fallback when the database cannot be opened.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[Slot][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Slot][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, slot Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, slot Slot, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, slot Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slot]; !ok {
		return ErrNotFound
	}
	delete(m.slots, slot)
	return nil
}
