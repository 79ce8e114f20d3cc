package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ether/etherdelta/lib/resource"
)

type MemoryCache struct {
	namespace string
	mu        sync.RWMutex
	entries   map[string]Entry
	order     []resource.Identity
}

func NewMemoryCache(namespace string) *MemoryCache {
	return &MemoryCache{
		namespace: namespace,
		entries:   make(map[string]Entry),
	}
}

func (m *MemoryCache) Namespace() string {
	return m.namespace
}

func (m *MemoryCache) Match(_ context.Context, id resource.Identity) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id.Key()]
	if !ok {
		return nil, nil
	}
	entry = cloneEntry(entry)
	return &entry, nil
}

func (m *MemoryCache) Put(_ context.Context, id resource.Identity, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	if _, exists := m.entries[id.Key()]; !exists {
		m.order = append(m.order, id)
	}
	m.entries[id.Key()] = cloneEntry(entry)
	return nil
}

func (m *MemoryCache) Keys(_ context.Context) ([]resource.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]resource.Identity(nil), m.order...), nil
}

var _ Cache = (*MemoryCache)(nil)
