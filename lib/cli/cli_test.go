package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/integrity"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/ether/etherdelta/lib/server"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/gofiber/adaptor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, s settings.Settings, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(zap.NewNop().Sugar(), s)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "a.js", "let x = 1;")
	target := writeFile(t, dir, "b.js", "let x = 2;")

	stdout, stderr, err := run(t, settings.Settings{}, "diff", "--stats", base, target)
	require.NoError(t, err)

	ops, err := delta.Decode(bytes.TrimSpace([]byte(stdout)))
	require.NoError(t, err)
	rebuilt, err := delta.Apply(ops, "let x = 1;")
	require.NoError(t, err)
	assert.Equal(t, "let x = 2;", rebuilt)
	assert.Contains(t, stderr, string(integrity.Checksum("let x = 2;")))
}

func TestDiffCommand_MissingFile(t *testing.T) {
	_, _, err := run(t, settings.Settings{}, "diff", "/does/not/exist", "/nor/this")
	require.Error(t, err)
}

func TestFetchCommand_UsesDeltaForSecondVersion(t *testing.T) {
	store := db.NewMemoryDataStore()
	for version, content := range map[string]string{"1.0.0": "console.log('one')", "1.0.1": "console.log('one and two')"} {
		require.NoError(t, store.SaveResource(context.Background(), modelsDB.ResourceDB{
			Name:    "logger",
			Version: version,
			File:    "index.js",
			Content: []byte(content),
		}))
	}
	fiberApp, err := server.NewApp(zap.NewNop().Sugar(), &settings.Settings{}, store)
	require.NoError(t, err)
	ts := httptest.NewServer(adaptor.FiberApp(fiberApp))
	defer ts.Close()

	dir := t.TempDir()
	s := settings.Settings{Client: settings.ClientSettings{
		Server:         ts.URL,
		CacheNamespace: "v1",
		CacheType:      settings.SQLITE,
		CacheFilename:  filepath.Join(dir, "cache", "client.db"),
		TimeoutSeconds: 5,
	}}

	stdout, stderr, err := run(t, s, "fetch", "/logger/1.0.0/index.js")
	require.NoError(t, err)
	assert.Equal(t, "console.log('one')", stdout)
	assert.Contains(t, stderr, "network")

	out := filepath.Join(dir, "out.js")
	_, stderr, err = run(t, s, "fetch", ts.URL+"/logger/1.0.1/index.js", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "via delta from 1.0.0")
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "console.log('one and two')", string(written))

	stdout, _, err = run(t, s, "cache", "list")
	require.NoError(t, err)
	assert.Equal(t, "/logger/1.0.0/index.js\n/logger/1.0.1/index.js\n", stdout)

	_, _, err = run(t, s, "cache", "clear")
	require.NoError(t, err)
	stdout, _, err = run(t, s, "cache", "list")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFetchCommand_NeedsServer(t *testing.T) {
	s := settings.Settings{Client: settings.ClientSettings{CacheType: settings.MEMORY}}

	_, _, err := run(t, s, "fetch", "/logger/1.0.0/index.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server")
}

func TestSplitTarget(t *testing.T) {
	serverURL, id, err := splitTarget("https://cdn.example.com/react/16.8.1/umd/react.js", "http://ignored")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", serverURL)
	assert.Equal(t, "umd/react.js", id.File)

	serverURL, id, err = splitTarget("react/16.8.1/umd/react.js", "http://localhost:9001")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9001", serverURL)
	assert.Equal(t, "16.8.1", id.Version)

	_, _, err = splitTarget("/react/16.8.1", "http://localhost:9001")
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tree/lodash/4.17.21/lodash.js", "module.exports = {}")
	writeFile(t, dir, "tree/lodash/4.17.20/lodash.js", "module.exports = {};")

	s := settings.Settings{Store: settings.StoreSettings{
		Type:     settings.SQLITE,
		Filename: filepath.Join(dir, "store.db"),
	}}

	stdout, _, err := run(t, s, "import", filepath.Join(dir, "tree"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 2 files")

	sqlite, err := db.NewSQLiteDB(s.Store.Filename)
	require.NoError(t, err)
	defer sqlite.Close()
	versions, err := sqlite.GetVersions(context.Background(), "lodash", "lodash.js")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"4.17.20", "4.17.21"}, versions)
}

func TestConfigCommands(t *testing.T) {
	_, err := settings.ReadConfig(`{"port": "1234"}`)
	require.NoError(t, err)

	stdout, _, err := run(t, settings.Settings{}, "config", "get", "port")
	require.NoError(t, err)
	assert.Equal(t, "1234\n", stdout)

	_, _, err = run(t, settings.Settings{}, "config", "get", "nope")
	require.Error(t, err)

	stdout, _, err = run(t, settings.Settings{}, "config", "env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ETHERDELTA_PORT")
}
