package db

import "errors"

var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrCacheEntryNotFound = errors.New("cache entry not found")
)
