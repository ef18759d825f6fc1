package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"financetracker/internal/log"
)

type Config struct {
	// HTTP Server
	Port string `yaml:"port"`

	// Backend selection
	DataBackend string `yaml:"data_backend"`

	// Database files
	SQLiteDBPath string `yaml:"sqlite_db_path"`
	BoltDBPath   string `yaml:"bolt_db_path"`

	// Seed directory for the memory backend
	DataDirectory string `yaml:"data_directory"`

	// Read cache in front of the backend
	CacheEnabled  bool `yaml:"cache_enabled"`
	CacheMaxItems int  `yaml:"cache_max_items"`

	// Timezone used for month boundaries and date stamping
	Timezone string `yaml:"timezone"`

	LogLevel string `yaml:"log_level"`

	// Requests per minute per client on the HTTP API; 0 disables the limit
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

var validBackends = []string{"memory", "sqlite", "bolt"}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:          "8081",
		DataBackend:   "sqlite",
		SQLiteDBPath:  "./data/tracker.db",
		BoltDBPath:    "./data/tracker.bolt",
		DataDirectory: "data",
		CacheEnabled:  false,
		CacheMaxItems: 64,
		Timezone:      "Local",
		LogLevel:      "info",

		RateLimitPerMinute: 120,
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML configuration file, then applies environment
// overrides on top of it. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.DataBackend = getEnv("DATA_BACKEND", c.DataBackend)
	c.SQLiteDBPath = getEnv("SQLITE_DB_PATH", c.SQLiteDBPath)
	c.BoltDBPath = getEnv("BOLT_DB_PATH", c.BoltDBPath)
	c.DataDirectory = getEnv("DATA_DIRECTORY", c.DataDirectory)
	c.CacheEnabled = getEnvBool("CACHE_ENABLED", c.CacheEnabled)
	c.CacheMaxItems = getEnvInt("CACHE_MAX_ITEMS", c.CacheMaxItems)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
}

// Location resolves Timezone. "Local" and the empty string mean the system
// zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
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

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "bolt":
		if c.BoltDBPath == "" {
			errors = append(errors, "bolt database path cannot be empty when using bolt backend")
		}
	}

	if c.CacheEnabled && (c.CacheMaxItems < 1 || c.CacheMaxItems > 100000) {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be between 1 and 100000", c.CacheMaxItems))
	}

	if c.RateLimitPerMinute < 0 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must not be negative", c.RateLimitPerMinute))
	}

	if _, err := c.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
