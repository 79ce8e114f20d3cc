package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ReadConfig builds the settings from jsonStr, or from settings.json in the
// working directory when jsonStr is empty. Environment variables prefixed
// with ETHERDELTA_ override both.
func ReadConfig(jsonStr string) (*Settings, error) {
	viper.Reset()
	viper.SetConfigName("settings")
	viper.SetConfigType("json")

	if settingsPath := os.Getenv(EnvVar("settings.path")); settingsPath != "" {
		viper.AddConfigPath(settingsPath)
	}
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ToLower(envPrefix))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if jsonStr != "" {
		if err := viper.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := viper.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
		}
	}

	ApplyRegistryDefaults()

	storeType, err := ParseStoreType(viper.GetString(StoreType))
	if err != nil {
		return nil, err
	}
	cacheType, err := ParseStoreType(viper.GetString(ClientCacheType))
	if err != nil {
		return nil, err
	}
	if cacheType != MEMORY && cacheType != SQLITE {
		return nil, fmt.Errorf("client cache must be memory or sqlite, got %q", cacheType)
	}

	s := &Settings{
		IP:            viper.GetString(IP),
		Port:          viper.GetString(Port),
		LogLevel:      viper.GetString(Loglevel),
		LogJSON:       viper.GetBool(LogJSON),
		Compression:   viper.GetBool(Compression),
		EnableMetrics: viper.GetBool(EnableMetrics),
		StaticDir:     viper.GetString(StaticDir),

		Store: StoreSettings{
			Type:     storeType,
			Dir:      viper.GetString(StoreDir),
			Filename: viper.GetString(StoreFilename),
			Host:     viper.GetString(StoreHost),
			Port:     viper.GetInt(StorePort),
			User:     viper.GetString(StoreUser),
			Password: viper.GetString(StorePassword),
			Database: viper.GetString(StoreDatabase),
		},

		Delta: DeltaSettings{
			MemoSize:       viper.GetInt(DeltaMemoSize),
			MaxContentSize: viper.GetInt(DeltaMaxContentSize),
		},

		Client: ClientSettings{
			Server:         viper.GetString(ClientServer),
			CacheNamespace: viper.GetString(ClientCacheNamespace),
			CacheType:      cacheType,
			CacheFilename:  viper.GetString(ClientCacheFilename),
			TimeoutSeconds: viper.GetInt(ClientTimeoutSeconds),
		},
		GitVersion: GitVersion(),
	}

	return s, nil
}

// InitSettings loads settings.json and the environment into Displayed.
func InitSettings(logger *zap.SugaredLogger) error {
	s, err := ReadConfig("")
	if err != nil {
		return fmt.Errorf("error reading settings: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		abs, _ := filepath.Abs(used)
		logger.Infof("Loaded settings from %s", abs)
	} else {
		logger.Info("No settings.json found, using defaults")
	}
	Displayed = *s
	return nil
}
