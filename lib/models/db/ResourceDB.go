package db

import "time"

// ResourceDB is one published file of one version of an asset.
type ResourceDB struct {
	Name        string
	Version     string
	File        string
	Content     []byte
	ContentType string
	Checksum    string
	CreatedAt   time.Time
}
