package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger builds the sugared logger every component receives. json
// switches from the console encoder to zap's production encoder.
func SetupLogger(level string, json bool) *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	if json {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(ParseLogLevel(level))

	logger := zap.Must(config.Build())
	return logger.Sugar()
}

func ParseLogLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
