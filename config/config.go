// Package config loads engine configuration from an optional TOML file
// and the environment, environment winning. A .env file is honoured via
// godotenv so local setups need no exported variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Backend selects the document store: "memory" or "sqlite".
	Backend string `toml:"backend"`

	// SQLiteDBPath is the database file used by the sqlite backend.
	SQLiteDBPath string `toml:"sqlite_db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// DailyCalorieLimit is the kcal threshold the calorie screens flag.
	DailyCalorieLimit int `toml:"daily_calorie_limit"`
}

// Load builds the configuration: defaults, then the TOML file named by
// NUTRISPEND_CONFIG (default ./nutrispend.toml, silently skipped when
// absent), then environment variables.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:           BackendMemory,
		SQLiteDBPath:      "./data/nutrispend.db",
		LogLevel:          "info",
		DailyCalorieLimit: 2000,
	}

	if path := getEnv("NUTRISPEND_CONFIG", "nutrispend.toml"); path != "" {
		cfg.applyFile(path)
	}

	cfg.Backend = getEnv("DATA_BACKEND", cfg.Backend)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.DailyCalorieLimit = getEnvInt("DAILY_CALORIE_LIMIT", cfg.DailyCalorieLimit)

	return cfg
}

func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fileCfg Config
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: ignoring unreadable %s: %v\n", path, err)
		return
	}
	if fileCfg.Backend != "" {
		c.Backend = fileCfg.Backend
	}
	if fileCfg.SQLiteDBPath != "" {
		c.SQLiteDBPath = fileCfg.SQLiteDBPath
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.DailyCalorieLimit != 0 {
		c.DailyCalorieLimit = fileCfg.DailyCalorieLimit
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		errors = append(errors, fmt.Sprintf("invalid backend %q: must be %q or %q",
			c.Backend, BackendMemory, BackendSQLite))
	}

	if c.Backend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory %q: %v", dir, err))
				}
			}
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if c.DailyCalorieLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid daily calorie limit %d: must be at least 1", c.DailyCalorieLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
