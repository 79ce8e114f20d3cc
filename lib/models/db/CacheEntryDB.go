package db

import "time"

// CacheEntryDB is a client cache entry. Seq records first insertion so that
// key listings are stable across overwrites.
type CacheEntryDB struct {
	Namespace   string
	Key         string
	Name        string
	Version     string
	File        string
	Content     []byte
	ContentType string
	Header      map[string]string
	Seq         int64
	StoredAt    time.Time
}
