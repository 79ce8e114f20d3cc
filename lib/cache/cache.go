// Package cache is the client's local content cache: whole responses keyed by
// resource identity, grouped under a namespace.
package cache

import (
	"context"
	"time"

	"github.com/ether/etherdelta/lib/resource"
)

const DefaultNamespace = "v1"

type Entry struct {
	Content     []byte
	ContentType string
	Header      map[string]string
	StoredAt    time.Time
}

// Cache is safe for concurrent use. Match returns (nil, nil) on a miss, and
// Keys lists identities in the order they were first stored.
type Cache interface {
	Match(ctx context.Context, id resource.Identity) (*Entry, error)
	Put(ctx context.Context, id resource.Identity, entry Entry) error
	Keys(ctx context.Context) ([]resource.Identity, error)
}

func cloneEntry(entry Entry) Entry {
	entry.Content = append([]byte(nil), entry.Content...)
	if entry.Header != nil {
		header := make(map[string]string, len(entry.Header))
		for k, v := range entry.Header {
			header[k] = v
		}
		entry.Header = header
	}
	return entry
}
