package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"kharcha/internal/core"
	applog "kharcha/internal/log"
	"kharcha/internal/report"
)

// ConfigPathEnv names the environment variable holding the TOML file path.
const ConfigPathEnv = "KHARCHA_CONFIG"

type Config struct {
	// Storage
	DataBackend  string `toml:"data_backend"`
	DataDir      string `toml:"data_dir"`
	SQLiteDBPath string `toml:"sqlite_db_path"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Display defaults, overridable by stored preferences
	Currency    string `toml:"currency"`
	TrendMonths int    `toml:"trend_months"`

	// Backup
	BackupFile string `toml:"backup_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataBackend:  "file",
		DataDir:      "./data",
		SQLiteDBPath: "./data/kharcha.db",
		LogLevel:     "warn",
		LogFormat:    "text",
		Currency:     "INR",
		TrendMonths:  6,
		BackupFile:   "expense-backup.json",
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (or $KHARCHA_CONFIG when path is empty), then environment variables. A
// missing file is skipped.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	cfg.DataBackend = getEnv("DATA_BACKEND", cfg.DataBackend)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Currency = strings.ToUpper(getEnv("CURRENCY", cfg.Currency))
	cfg.TrendMonths = getEnvInt("TREND_MONTHS", cfg.TrendMonths)
	cfg.BackupFile = getEnv("BACKUP_FILE", cfg.BackupFile)

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"memory", "file", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "file" && c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty when using file backend")
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if !core.ValidCurrency(c.Currency) {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}
	if c.TrendMonths < 1 || c.TrendMonths > report.MaxTrendMonths {
		errors = append(errors, fmt.Sprintf("invalid trend months %d: must be between 1 and %d", c.TrendMonths, report.MaxTrendMonths))
	}

	if strings.TrimSpace(c.BackupFile) == "" {
		errors = append(errors, "backup file name cannot be empty")
	}

	// Return combined errors
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
