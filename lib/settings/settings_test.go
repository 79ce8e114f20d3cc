package settings

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreApplied(t *testing.T) {
	cfg, err := ReadConfig("{}")
	require.NoError(t, err)

	require.Equal(t, "9001", cfg.Port)
	require.Equal(t, FS, cfg.Store.Type)
	require.Equal(t, "public", cfg.Store.Dir)
	require.Equal(t, 256, cfg.Delta.MemoSize)
	require.Equal(t, 8<<20, cfg.Delta.MaxContentSize)
	require.Equal(t, "v1", cfg.Client.CacheNamespace)
	require.Equal(t, SQLITE, cfg.Client.CacheType)
	require.True(t, cfg.Compression)
	require.True(t, cfg.EnableMetrics)
	require.False(t, cfg.LogJSON)
}

func TestJSONOverridesDefaults(t *testing.T) {
	cfg, err := ReadConfig(`{"port":"8080","store":{"type":"sqlite","filename":"x.db"},"delta":{"memoSize":0}}`)
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, SQLITE, cfg.Store.Type)
	require.Equal(t, "x.db", cfg.Store.Filename)
	require.Zero(t, cfg.Delta.MemoSize)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ETHERDELTA_PORT", "9999")
	t.Setenv("ETHERDELTA_STORE_TYPE", "memory")

	cfg, err := ReadConfig("{}")
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, MEMORY, cfg.Store.Type)
}

func TestInvalidStoreType(t *testing.T) {
	_, err := ReadConfig(`{"store":{"type":"mongodb"}}`)
	require.Error(t, err)

	_, err = ReadConfig(`{"client":{"cacheType":"postgres"}}`)
	require.Error(t, err)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "ETHERDELTA_CLIENT_CACHENAMESPACE", EnvVar(ClientCacheNamespace))
}

func TestConfigCommands(t *testing.T) {
	_, err := ReadConfig(`{"port":"7000"}`)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ConfigGet(&out, Port))
	assert.Equal(t, "7000\n", out.String())

	assert.Error(t, ConfigGet(&out, "title"))

	out.Reset()
	ConfigEnv(&out)
	assert.Contains(t, out.String(), "ETHERDELTA_STORE_TYPE")

	out.Reset()
	ConfigShow(&out)
	assert.Contains(t, out.String(), "delta.memoSize")

	out.Reset()
	require.NoError(t, ConfigInit(&out))
	assert.Contains(t, out.String(), `"client.cacheNamespace": "v1"`)
}
