// Package config provides runtime configuration values for the service.
//
// Every recognized option is an enumerated CATALOG_* environment
// variable. Unknown CATALOG_* keys and malformed values are load
// errors; nothing is resolved from the environment implicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds configuration knobs for the HTTP server and storage.
type Config struct {
	DBDSN           string
	HTTPAddr        string
	LogLevel        string
	ShutdownTimeout time.Duration
}

const envPrefix = "CATALOG_"

// knownKeys enumerates every recognized option.
var knownKeys = map[string]bool{
	"CATALOG_DB_DSN":           true,
	"CATALOG_HTTP_ADDR":        true,
	"CATALOG_LOG_LEVEL":        true,
	"CATALOG_SHUTDOWN_TIMEOUT": true,
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(defSec) * time.Second, nil
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative integer of seconds, got %q", key, v)
	}
	return time.Duration(sec) * time.Second, nil
}

// Load collects configuration from the environment with defaults.
// Unknown CATALOG_* keys are rejected rather than ignored.
func Load() (Config, error) {
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, envPrefix) && !knownKeys[k] {
			return Config{}, fmt.Errorf("config: unknown key %s", k)
		}
	}

	timeout, err := durenvs("CATALOG_SHUTDOWN_TIMEOUT", 15)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DBDSN:           os.Getenv("CATALOG_DB_DSN"),
		HTTPAddr:        getenv("CATALOG_HTTP_ADDR", ":8080"),
		LogLevel:        strings.ToLower(getenv("CATALOG_LOG_LEVEL", "info")),
		ShutdownTimeout: timeout,
	}
	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("config: CATALOG_DB_DSN is required (check your .env)")
	}
	if !logLevels[cfg.LogLevel] {
		return Config{}, fmt.Errorf("config: CATALOG_LOG_LEVEL must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	return cfg, nil
}
