package migrations

import (
	"database/sql"
)

func migration002CacheEntries() Migration {
	return Migration{
		Version:     2,
		Description: "Create cache_entry table",
		Up: func(db *sql.DB, dialect Dialect) error {
			if dialect == DialectPostgres {
				return execAll(db, []string{
					`CREATE TABLE IF NOT EXISTS cache_entry (
						seq BIGSERIAL PRIMARY KEY,
						namespace TEXT NOT NULL,
						cache_key TEXT NOT NULL,
						name TEXT NOT NULL,
						version TEXT NOT NULL,
						file TEXT NOT NULL,
						content BYTEA NOT NULL,
						content_type TEXT NOT NULL DEFAULT '',
						header TEXT,
						stored_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (namespace, cache_key)
					)`,
				})
			}

			return execAll(db, []string{
				`CREATE TABLE IF NOT EXISTS cache_entry (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					namespace TEXT NOT NULL,
					cache_key TEXT NOT NULL,
					name TEXT NOT NULL,
					version TEXT NOT NULL,
					file TEXT NOT NULL,
					content BLOB NOT NULL,
					content_type TEXT NOT NULL DEFAULT '',
					header TEXT,
					stored_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (namespace, cache_key)
				)`,
			})
		},
	}
}
