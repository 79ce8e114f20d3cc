package settings

const (
	IP            = "ip"
	Port          = "port"
	Loglevel      = "logLevel"
	LogJSON       = "logJson"
	Compression   = "compression"
	EnableMetrics = "enableMetrics"
	StaticDir     = "staticDir"

	StoreType     = "store.type"
	StoreDir      = "store.dir"
	StoreFilename = "store.filename"
	StoreHost     = "store.host"
	StorePort     = "store.port"
	StoreUser     = "store.user"
	StorePassword = "store.password"
	StoreDatabase = "store.database"

	DeltaMemoSize       = "delta.memoSize"
	DeltaMaxContentSize = "delta.maxContentSize"

	ClientServer         = "client.server"
	ClientCacheNamespace = "client.cacheNamespace"
	ClientCacheType      = "client.cacheType"
	ClientCacheFilename  = "client.cacheFilename"
	ClientTimeoutSeconds = "client.timeoutSeconds"
)
