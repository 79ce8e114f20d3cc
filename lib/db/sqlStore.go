package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/etherdelta/lib/models/db"
)

// sqlStore holds the queries shared by the SQLite and Postgres stores. Both
// dialects understand ON CONFLICT ... DO UPDATE, so only the placeholder
// format differs.
type sqlStore struct {
	sqlDB   *sql.DB
	builder sq.StatementBuilderType
}

func nonNil(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	return content
}

// ============== RESOURCE METHODS ==============

func (d sqlStore) GetResource(ctx context.Context, name, version, file string) (*db.ResourceDB, error) {
	resultedSQL, args, err := d.builder.
		Select("name", "version", "file", "content", "content_type", "checksum", "created_at").
		From("resource").
		Where(sq.Eq{"name": name, "version": version, "file": file}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var resource db.ResourceDB
	var createdAt sql.NullTime
	err = d.sqlDB.QueryRowContext(ctx, resultedSQL, args...).Scan(
		&resource.Name, &resource.Version, &resource.File, &resource.Content,
		&resource.ContentType, &resource.Checksum, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("error reading resource: %w", err)
	}
	if createdAt.Valid {
		resource.CreatedAt = createdAt.Time
	}
	return &resource, nil
}

func (d sqlStore) SaveResource(ctx context.Context, resource db.ResourceDB) error {
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now().UTC()
	}

	resultedSQL, args, err := d.builder.
		Insert("resource").
		Columns("name", "version", "file", "content", "content_type", "checksum", "created_at").
		Values(resource.Name, resource.Version, resource.File, nonNil(resource.Content),
			resource.ContentType, resource.Checksum, resource.CreatedAt).
		Suffix(`ON CONFLICT(name, version, file) DO UPDATE SET
			content = excluded.content,
			content_type = excluded.content_type,
			checksum = excluded.checksum`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err = d.sqlDB.ExecContext(ctx, resultedSQL, args...); err != nil {
		return fmt.Errorf("error saving resource: %w", err)
	}
	return nil
}

func (d sqlStore) GetVersions(ctx context.Context, name, file string) ([]string, error) {
	resultedSQL, args, err := d.builder.
		Select("version").
		From("resource").
		Where(sq.Eq{"name": name, "file": file}).
		OrderBy("version").
		ToSql()
	if err != nil {
		return nil, err
	}

	query, err := d.sqlDB.QueryContext(ctx, resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer query.Close()

	var versions []string
	for query.Next() {
		var version string
		if err := query.Scan(&version); err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, query.Err()
}

func (d sqlStore) RemoveResource(ctx context.Context, name, version, file string) error {
	resultedSQL, args, err := d.builder.
		Delete("resource").
		Where(sq.Eq{"name": name, "version": version, "file": file}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := d.sqlDB.ExecContext(ctx, resultedSQL, args...)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// ============== CACHE METHODS ==============

func (d sqlStore) GetCacheEntry(ctx context.Context, namespace, key string) (*db.CacheEntryDB, error) {
	resultedSQL, args, err := d.builder.
		Select("seq", "namespace", "cache_key", "name", "version", "file", "content",
			"content_type", "header", "stored_at").
		From("cache_entry").
		Where(sq.Eq{"namespace": namespace, "cache_key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var entry db.CacheEntryDB
	var header sql.NullString
	var storedAt sql.NullTime
	err = d.sqlDB.QueryRowContext(ctx, resultedSQL, args...).Scan(
		&entry.Seq, &entry.Namespace, &entry.Key, &entry.Name, &entry.Version, &entry.File,
		&entry.Content, &entry.ContentType, &header, &storedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheEntryNotFound
		}
		return nil, fmt.Errorf("error reading cache entry: %w", err)
	}

	if header.Valid && header.String != "" {
		if err := json.Unmarshal([]byte(header.String), &entry.Header); err != nil {
			return nil, fmt.Errorf("error unmarshaling cache entry header: %w", err)
		}
	}
	if storedAt.Valid {
		entry.StoredAt = storedAt.Time
	}
	return &entry, nil
}

func (d sqlStore) SaveCacheEntry(ctx context.Context, entry db.CacheEntryDB) error {
	header, err := json.Marshal(entry.Header)
	if err != nil {
		return fmt.Errorf("error marshaling cache entry header: %w", err)
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}

	resultedSQL, args, err := d.builder.
		Insert("cache_entry").
		Columns("namespace", "cache_key", "name", "version", "file", "content",
			"content_type", "header", "stored_at").
		Values(entry.Namespace, entry.Key, entry.Name, entry.Version, entry.File,
			nonNil(entry.Content), entry.ContentType, string(header), entry.StoredAt).
		Suffix(`ON CONFLICT(namespace, cache_key) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			file = excluded.file,
			content = excluded.content,
			content_type = excluded.content_type,
			header = excluded.header,
			stored_at = excluded.stored_at`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err = d.sqlDB.ExecContext(ctx, resultedSQL, args...); err != nil {
		return fmt.Errorf("error saving cache entry: %w", err)
	}
	return nil
}

func (d sqlStore) GetCacheKeys(ctx context.Context, namespace string) ([]db.CacheEntryDB, error) {
	resultedSQL, args, err := d.builder.
		Select("seq", "namespace", "cache_key", "name", "version", "file", "content_type", "stored_at").
		From("cache_entry").
		Where(sq.Eq{"namespace": namespace}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	query, err := d.sqlDB.QueryContext(ctx, resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer query.Close()

	entries := make([]db.CacheEntryDB, 0)
	for query.Next() {
		var entry db.CacheEntryDB
		var storedAt sql.NullTime
		if err := query.Scan(&entry.Seq, &entry.Namespace, &entry.Key, &entry.Name,
			&entry.Version, &entry.File, &entry.ContentType, &storedAt); err != nil {
			return nil, err
		}
		if storedAt.Valid {
			entry.StoredAt = storedAt.Time
		}
		entries = append(entries, entry)
	}
	return entries, query.Err()
}

func (d sqlStore) RemoveCacheNamespace(ctx context.Context, namespace string) error {
	resultedSQL, args, err := d.builder.
		Delete("cache_entry").
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = d.sqlDB.ExecContext(ctx, resultedSQL, args...)
	return err
}

func (d sqlStore) Ping() error {
	return d.sqlDB.Ping()
}

func (d sqlStore) Close() error {
	return d.sqlDB.Close()
}
