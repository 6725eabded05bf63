package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/fars-report/internal/adapter/csvfile"
)

// Config holds all tool settings, populated from environment variables.
// Command-line flags may override individual fields after Load.
type Config struct {
	// DataDir is the directory holding the yearly accident files.
	DataDir string
	// FilenamePattern names a year's file; %d is the canonical year.
	FilenamePattern string
	LogLevel        string
	LogFormat       string
	// MetricsAddr enables the /healthz and /metrics listener when non-empty.
	// Reports are short batch runs, so it stays off by default.
	MetricsAddr string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present; a missing one is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:         envOrDefault("FARS_DATA_DIR", "."),
		FilenamePattern: envOrDefault("FARS_FILENAME_PATTERN", csvfile.DefaultPattern),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
	}

	if err := csvfile.ValidatePattern(cfg.FilenamePattern); err != nil {
		return nil, fmt.Errorf("FARS_FILENAME_PATTERN: %w", err)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q (want debug, info, warn, or error)", cfg.LogLevel)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
