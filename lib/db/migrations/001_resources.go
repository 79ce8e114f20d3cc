package migrations

import (
	"database/sql"
)

// GetMigrations returns all available migrations
func GetMigrations() []Migration {
	return []Migration{
		migration001Resources(),
		migration002CacheEntries(),
	}
}

func migration001Resources() Migration {
	return Migration{
		Version:     1,
		Description: "Create resource table",
		Up: func(db *sql.DB, dialect Dialect) error {
			if dialect == DialectPostgres {
				return execAll(db, []string{
					`CREATE TABLE IF NOT EXISTS resource (
						name TEXT NOT NULL,
						version TEXT NOT NULL,
						file TEXT NOT NULL,
						content BYTEA NOT NULL,
						content_type TEXT NOT NULL DEFAULT '',
						checksum TEXT NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						PRIMARY KEY (name, version, file)
					)`,
					`CREATE INDEX IF NOT EXISTS idx_resource_name_file ON resource(name, file)`,
				})
			}

			return execAll(db, []string{
				`CREATE TABLE IF NOT EXISTS resource (
					name TEXT NOT NULL,
					version TEXT NOT NULL,
					file TEXT NOT NULL,
					content BLOB NOT NULL,
					content_type TEXT NOT NULL DEFAULT '',
					checksum TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (name, version, file)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_resource_name_file ON resource(name, file)`,
			})
		},
	}
}
