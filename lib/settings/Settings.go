package settings

import "time"

type StoreSettings struct {
	Type     IStoreType
	Dir      string
	Filename string
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type DeltaSettings struct {
	MemoSize       int
	MaxContentSize int
}

type ClientSettings struct {
	Server         string
	CacheNamespace string
	CacheType      IStoreType
	CacheFilename  string
	TimeoutSeconds int
}

func (c ClientSettings) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Settings struct {
	IP            string
	Port          string
	LogLevel      string
	LogJSON       bool
	Compression   bool
	EnableMetrics bool
	StaticDir     string
	Store         StoreSettings
	Delta         DeltaSettings
	Client        ClientSettings
	GitVersion    string
}

var Displayed Settings
