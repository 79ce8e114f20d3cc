package db

import (
	"context"

	"github.com/ether/etherdelta/lib/models/db"
)

// ResourceReader is the read side of the resource content store. The
// producer only ever reads; the filesystem store implements nothing else.
type ResourceReader interface {
	GetResource(ctx context.Context, name, version, file string) (*db.ResourceDB, error)
	GetVersions(ctx context.Context, name, file string) ([]string, error)
}

type ResourceMethods interface {
	ResourceReader
	SaveResource(ctx context.Context, resource db.ResourceDB) error
	RemoveResource(ctx context.Context, name, version, file string) error
}

type CacheMethods interface {
	GetCacheEntry(ctx context.Context, namespace, key string) (*db.CacheEntryDB, error)
	SaveCacheEntry(ctx context.Context, entry db.CacheEntryDB) error
	// GetCacheKeys lists the entries of a namespace in first-insertion order,
	// without their content.
	GetCacheKeys(ctx context.Context, namespace string) ([]db.CacheEntryDB, error)
	RemoveCacheNamespace(ctx context.Context, namespace string) error
}

type DataStore interface {
	ResourceMethods
	CacheMethods
	Ping() error
	Close() error
}
