package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/ether/etherdelta/lib/db"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/ether/etherdelta/lib/resource"
)

// StoreCache persists entries through the data store, so a client keeps its
// cache across runs.
type StoreCache struct {
	namespace string
	store     db.CacheMethods
}

func NewStoreCache(namespace string, store db.CacheMethods) *StoreCache {
	return &StoreCache{namespace: namespace, store: store}
}

func (s *StoreCache) Namespace() string {
	return s.namespace
}

func (s *StoreCache) Match(ctx context.Context, id resource.Identity) (*Entry, error) {
	stored, err := s.store.GetCacheEntry(ctx, s.namespace, id.Key())
	if err != nil {
		if errors.Is(err, db.ErrCacheEntryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error matching %s: %w", id, err)
	}

	return &Entry{
		Content:     stored.Content,
		ContentType: stored.ContentType,
		Header:      stored.Header,
		StoredAt:    stored.StoredAt,
	}, nil
}

func (s *StoreCache) Put(ctx context.Context, id resource.Identity, entry Entry) error {
	return s.store.SaveCacheEntry(ctx, modelsDB.CacheEntryDB{
		Namespace:   s.namespace,
		Key:         id.Key(),
		Name:        id.Name,
		Version:     id.Version,
		File:        id.File,
		Content:     entry.Content,
		ContentType: entry.ContentType,
		Header:      entry.Header,
		StoredAt:    entry.StoredAt,
	})
}

func (s *StoreCache) Keys(ctx context.Context) ([]resource.Identity, error) {
	stored, err := s.store.GetCacheKeys(ctx, s.namespace)
	if err != nil {
		return nil, err
	}

	keys := make([]resource.Identity, 0, len(stored))
	for _, entry := range stored {
		keys = append(keys, resource.Identity{Name: entry.Name, Version: entry.Version, File: entry.File})
	}
	return keys, nil
}

// Clear drops every entry of the namespace.
func (s *StoreCache) Clear(ctx context.Context) error {
	return s.store.RemoveCacheNamespace(ctx, s.namespace)
}

var _ Cache = (*StoreCache)(nil)
