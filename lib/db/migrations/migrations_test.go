package migrations

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestMigrationManager_RunsAllOnce(t *testing.T) {
	sqlDB := openSQLite(t)

	var applied []string
	manager := NewMigrationManager(sqlDB, DialectSQLite).WithLogger(func(format string, args ...any) {
		applied = append(applied, fmt.Sprintf(format, args...))
	})
	require.NoError(t, manager.Run())

	version, err := manager.GetCurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(GetMigrations()), version)
	assert.Len(t, applied, len(GetMigrations()))

	applied = nil
	require.NoError(t, manager.Run())
	assert.Empty(t, applied, "a second run applies nothing")
}

func TestMigrations_CreateTables(t *testing.T) {
	sqlDB := openSQLite(t)
	require.NoError(t, NewMigrationManager(sqlDB, DialectSQLite).Run())

	for _, table := range []string{"resource", "cache_entry"} {
		var name string
		err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
