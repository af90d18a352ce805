// Package config contains everything related to configuration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DataDir  string
	Cities   CityTable
	PageSize int
	Watch    bool
	LogLevel slog.Level
	LogFile  string
}

// Default values
const (
	defaultDataDir  = "."
	defaultPageSize = 5
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:  getEnvString("BIKESHARE_DATA_DIR", defaultDataDir),
		PageSize: getEnvInt("BIKESHARE_PAGE_SIZE", defaultPageSize),
		Watch:    getEnvBool("BIKESHARE_WATCH", true),
		LogLevel: getEnvLevel("BIKESHARE_LOG_LEVEL", slog.LevelInfo),
		LogFile:  getEnvString("BIKESHARE_LOG_FILE", ""),
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("BIKESHARE_PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	cfg.Cities = cityTableFromEnv(cfg.DataDir)

	return cfg, nil
}

// SetDataDir points the configuration at another data directory,
// re-resolving every city file that was not overridden by an absolute path.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.Cities = cityTableFromEnv(dir)
}

// cityTableFromEnv builds the city table under dir, applying per-city
// file overrides such as BIKESHARE_CHICAGO_FILE.
func cityTableFromEnv(dir string) CityTable {
	files := DefaultCityFiles()
	for city := range files {
		key := "BIKESHARE_" + strings.ToUpper(city) + "_FILE"
		files[city] = getEnvString(key, files[city])
	}
	return NewCityTable(dir, files)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "bikeshare", ".env"),
			filepath.Join(home, ".bikeshare", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts anything strconv.ParseBool does.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvLevel retrieves a slog level ("debug", "info", "warn", "error").
func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
