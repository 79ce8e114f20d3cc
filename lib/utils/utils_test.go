package utils

import (
	"path/filepath"
	"testing"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/db/fsstore"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLogLevel(" warn "))
	assert.Equal(t, zapcore.InfoLevel, ParseLogLevel("chatty"))
}

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger("error", false)
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

func TestGetResourceStore(t *testing.T) {
	logger := zap.NewNop().Sugar()

	store, closeStore, err := GetResourceStore(settings.Settings{Store: settings.StoreSettings{Type: settings.FS, Dir: t.TempDir()}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &fsstore.FileStore{}, store)
	assert.NoError(t, closeStore())

	store, closeStore, err = GetResourceStore(settings.Settings{Store: settings.StoreSettings{
		Type:     settings.SQLITE,
		Filename: filepath.Join(t.TempDir(), "resources.db"),
	}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &db.SQLiteDB{}, store)
	assert.NoError(t, store.Ping())
	assert.NoError(t, closeStore())
}

func TestGetDB_RejectsFS(t *testing.T) {
	_, err := GetDB(settings.Settings{Store: settings.StoreSettings{Type: settings.FS}}, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestGetCacheStore(t *testing.T) {
	store, err := GetCacheStore(settings.Settings{Client: settings.ClientSettings{CacheType: settings.MEMORY}}, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.IsType(t, &db.MemoryDataStore{}, store)

	_, err = GetCacheStore(settings.Settings{Client: settings.ClientSettings{CacheType: settings.POSTGRES}}, zap.NewNop().Sugar())
	assert.Error(t, err)
}
