package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
		OutputFile: getEnv("LOG_OUTPUT_FILE", "stdout"),
	}
}

// ZapLevel converts the configured level, falling back to info.
func (c *LoggerConfig) ZapLevel() zapcore.Level {
	switch c.Level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
