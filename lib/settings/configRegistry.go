package settings

import (
	"strings"

	"github.com/spf13/viper"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
}

const envPrefix = "ETHERDELTA"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Core
	// ---------------------------------------------------------------------
	{Key: IP, Default: "0.0.0.0", Description: "Bind address"},
	{Key: Port, Default: "9001", Description: "HTTP server port"},
	{Key: Loglevel, Default: "INFO", Description: "Log level (DEBUG, INFO, WARN, ERROR)"},
	{Key: LogJSON, Default: false, Description: "Log as JSON instead of the console format"},
	{Key: Compression, Default: true, Description: "Compress responses (br, gzip, deflate)"},
	{Key: EnableMetrics, Default: true, Description: "Expose prometheus metrics on /metrics"},
	{Key: StaticDir, Default: "", Description: "Directory served verbatim under /static"},

	// ---------------------------------------------------------------------
	// Resource store
	// ---------------------------------------------------------------------
	{Key: StoreType, Default: string(FS), Description: "Resource store (fs, memory, sqlite, postgres)"},
	{Key: StoreDir, Default: "public", Description: "Root of <name>/<version>/<file> for the fs store"},
	{Key: StoreFilename, Default: "var/etherdelta.db", Description: "SQLite database filename"},
	{Key: StoreHost, Default: "localhost", Description: "Postgres host"},
	{Key: StorePort, Default: 5432, Description: "Postgres port"},
	{Key: StoreUser, Default: "", Description: "Postgres user"},
	{Key: StorePassword, Default: "", Description: "Postgres password"},
	{Key: StoreDatabase, Default: "etherdelta", Description: "Postgres database name"},

	// ---------------------------------------------------------------------
	// Delta production
	// ---------------------------------------------------------------------
	{Key: DeltaMemoSize, Default: 256, Description: "Verified deltas kept in memory (0 disables)"},
	{
		Key:         DeltaMaxContentSize,
		Default:     8 << 20,
		Description: "Largest base or target in bytes that is diffed (0 means unbounded)",
	},

	// ---------------------------------------------------------------------
	// Client
	// ---------------------------------------------------------------------
	{Key: ClientServer, Default: "http://localhost:9001", Description: "Server the fetch command talks to"},
	{Key: ClientCacheNamespace, Default: "v1", Description: "Cache namespace; changing it starts an empty cache"},
	{Key: ClientCacheType, Default: string(SQLITE), Description: "Client cache (memory, sqlite)"},
	{Key: ClientCacheFilename, Default: "var/etherdelta-cache.db", Description: "SQLite file of the client cache"},
	{Key: ClientTimeoutSeconds, Default: 30, Description: "HTTP timeout of the fetch command"},
}

func ApplyRegistryDefaults() {
	for _, c := range Registry {
		viper.SetDefault(c.Key, c.Default)
	}
}
