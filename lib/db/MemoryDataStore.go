package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ether/etherdelta/lib/models/db"
)

type MemoryDataStore struct {
	mu            sync.RWMutex
	resourceStore map[string]db.ResourceDB
	cacheStore    map[string]map[string]db.CacheEntryDB
	nextSeq       int64
}

func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		resourceStore: make(map[string]db.ResourceDB),
		cacheStore:    make(map[string]map[string]db.CacheEntryDB),
	}
}

func resourceKey(name, version, file string) string {
	return name + "\x00" + version + "\x00" + file
}

func (m *MemoryDataStore) GetResource(_ context.Context, name, version, file string) (*db.ResourceDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	retrieved, ok := m.resourceStore[resourceKey(name, version, file)]
	if !ok {
		return nil, ErrResourceNotFound
	}
	retrieved.Content = append([]byte(nil), retrieved.Content...)
	return &retrieved, nil
}

func (m *MemoryDataStore) SaveResource(_ context.Context, resource db.ResourceDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now().UTC()
	}
	resource.Content = append([]byte(nil), resource.Content...)
	m.resourceStore[resourceKey(resource.Name, resource.Version, resource.File)] = resource
	return nil
}

func (m *MemoryDataStore) GetVersions(_ context.Context, name, file string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var versions []string
	for _, r := range m.resourceStore {
		if r.Name == name && r.File == file {
			versions = append(versions, r.Version)
		}
	}
	sort.Strings(versions)
	return versions, nil
}

func (m *MemoryDataStore) RemoveResource(_ context.Context, name, version, file string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := resourceKey(name, version, file)
	if _, ok := m.resourceStore[key]; !ok {
		return ErrResourceNotFound
	}
	delete(m.resourceStore, key)
	return nil
}

func (m *MemoryDataStore) GetCacheEntry(_ context.Context, namespace, key string) (*db.CacheEntryDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.cacheStore[namespace][key]
	if !ok {
		return nil, ErrCacheEntryNotFound
	}
	entry.Content = append([]byte(nil), entry.Content...)
	return &entry, nil
}

func (m *MemoryDataStore) SaveCacheEntry(_ context.Context, entry db.CacheEntryDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.cacheStore[entry.Namespace]
	if !ok {
		entries = make(map[string]db.CacheEntryDB)
		m.cacheStore[entry.Namespace] = entries
	}

	if existing, ok := entries[entry.Key]; ok {
		entry.Seq = existing.Seq
	} else {
		m.nextSeq++
		entry.Seq = m.nextSeq
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	entry.Content = append([]byte(nil), entry.Content...)
	entries[entry.Key] = entry
	return nil
}

func (m *MemoryDataStore) GetCacheKeys(_ context.Context, namespace string) ([]db.CacheEntryDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]db.CacheEntryDB, 0, len(m.cacheStore[namespace]))
	for _, entry := range m.cacheStore[namespace] {
		entry.Content = nil
		keys = append(keys, entry)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Seq < keys[j].Seq })
	return keys, nil
}

func (m *MemoryDataStore) RemoveCacheNamespace(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cacheStore, namespace)
	return nil
}

func (m *MemoryDataStore) Ping() error {
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}
