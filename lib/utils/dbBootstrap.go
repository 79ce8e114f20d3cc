package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/db/fsstore"
	"github.com/ether/etherdelta/lib/settings"
	"go.uber.org/zap"
)

// ResourceStore is what the server reads resources from.
type ResourceStore interface {
	db.ResourceReader
	Ping() error
}

func GetDB(retrievedSettings settings.Settings, setupLogger *zap.SugaredLogger) (db.DataStore, error) {
	storeSettings := retrievedSettings.Store
	switch storeSettings.Type {
	case settings.SQLITE:
		setupLogger.Infof("Using SQLite database at %s", storeSettings.Filename)
		if err := ensureParentDir(storeSettings.Filename); err != nil {
			return nil, err
		}
		return db.NewSQLiteDB(storeSettings.Filename)
	case settings.MEMORY:
		setupLogger.Info("Using in-memory database (data will be lost on restart)")
		return db.NewMemoryDataStore(), nil
	case settings.POSTGRES:
		setupLogger.Infof("Using Postgres database at %s with database %s", storeSettings.Host, storeSettings.Database)
		return db.NewPostgresDB(db.PostgresOptions{
			Username: storeSettings.User,
			Password: storeSettings.Password,
			Host:     storeSettings.Host,
			Database: storeSettings.Database,
			Port:     storeSettings.Port,
		})
	case settings.FS:
		return nil, errors.New("the fs store is read-only; choose memory, sqlite or postgres")
	}
	return nil, fmt.Errorf("unsupported store type %q", storeSettings.Type)
}

// GetResourceStore opens the store the server answers from; the fs store reads
// the directory in place, every other type goes through GetDB. The returned
// close function releases the store.
func GetResourceStore(retrievedSettings settings.Settings, setupLogger *zap.SugaredLogger) (ResourceStore, func() error, error) {
	if retrievedSettings.Store.Type == settings.FS {
		setupLogger.Infof("Serving resources from directory %s", retrievedSettings.Store.Dir)
		return fsstore.NewOsFileStore(retrievedSettings.Store.Dir), func() error { return nil }, nil
	}

	dataStore, err := GetDB(retrievedSettings, setupLogger)
	if err != nil {
		return nil, nil, err
	}
	return dataStore, dataStore.Close, nil
}

// GetCacheStore opens the persistent store behind the client cache.
func GetCacheStore(retrievedSettings settings.Settings, setupLogger *zap.SugaredLogger) (db.DataStore, error) {
	client := retrievedSettings.Client
	switch client.CacheType {
	case settings.SQLITE:
		setupLogger.Debugf("Using client cache at %s", client.CacheFilename)
		if err := ensureParentDir(client.CacheFilename); err != nil {
			return nil, err
		}
		return db.NewSQLiteDB(client.CacheFilename)
	case settings.MEMORY:
		return db.NewMemoryDataStore(), nil
	}
	return nil, fmt.Errorf("unsupported client cache type %q", client.CacheType)
}

func ensureParentDir(filename string) error {
	if filename == "" || filename == ":memory" || filename == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", filename, err)
	}
	return nil
}
