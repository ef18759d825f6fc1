package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return *Defaults()
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid bolt backend",
			mutate: func(c *Config) {
				c.DataBackend = "bolt"
				c.BoltDBPath = "./test.bolt"
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite bolt]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "bolt backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "bolt"
				c.BoltDBPath = ""
			},
			wantErr:     true,
			errorString: "bolt database path cannot be empty when using bolt backend",
		},
		{
			name: "memory backend ignores database paths",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.SQLiteDBPath = ""
				c.BoltDBPath = ""
			},
			wantErr: false,
		},
		{
			name: "cache size out of range",
			mutate: func(c *Config) {
				c.CacheEnabled = true
				c.CacheMaxItems = 0
			},
			wantErr:     true,
			errorString: "invalid cache size 0: must be between 1 and 100000",
		},
		{
			name: "cache size ignored when disabled",
			mutate: func(c *Config) {
				c.CacheEnabled = false
				c.CacheMaxItems = 0
			},
			wantErr: false,
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus_Mons'",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "negative rate limit",
			mutate:      func(c *Config) { c.RateLimitPerMinute = -1 },
			wantErr:     true,
			errorString: "invalid rate limit -1",
		},
		{
			name:    "rate limit disabled",
			mutate:  func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "nope"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if n := strings.Count(msg, "\n- "); n != 3 {
		t.Errorf("expected 3 problems, got %d in %q", n, msg)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "BOLT_DB_PATH", "DATA_DIRECTORY",
		"CACHE_ENABLED", "CACHE_MAX_ITEMS", "TIMEZONE", "LOG_LEVEL", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearEnv(t)
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/tracker.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/tracker.db", cfg.SQLiteDBPath)
		}
		if cfg.CacheEnabled {
			t.Error("Load() CacheEnabled = true, want false")
		}
		if cfg.CacheMaxItems != 64 {
			t.Errorf("Load() CacheMaxItems = %v, want 64", cfg.CacheMaxItems)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "bolt")
		t.Setenv("BOLT_DB_PATH", "/tmp/test.bolt")
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("CACHE_MAX_ITEMS", "16")
		t.Setenv("TIMEZONE", "Asia/Kolkata")

		cfg := Load()
		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "bolt" {
			t.Errorf("Load() DataBackend = %v, want bolt", cfg.DataBackend)
		}
		if cfg.BoltDBPath != "/tmp/test.bolt" {
			t.Errorf("Load() BoltDBPath = %v, want /tmp/test.bolt", cfg.BoltDBPath)
		}
		if !cfg.CacheEnabled || cfg.CacheMaxItems != 16 {
			t.Errorf("Load() cache = %v/%d, want true/16", cfg.CacheEnabled, cfg.CacheMaxItems)
		}
		if cfg.Timezone != "Asia/Kolkata" {
			t.Errorf("Load() Timezone = %v, want Asia/Kolkata", cfg.Timezone)
		}
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CACHE_MAX_ITEMS", "lots")
		t.Setenv("CACHE_ENABLED", "perhaps")

		cfg := Load()
		if cfg.CacheMaxItems != 64 || cfg.CacheEnabled {
			t.Errorf("Load() cache = %v/%d, want false/64", cfg.CacheEnabled, cfg.CacheMaxItems)
		}
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.yaml")
	content := "port: \"9000\"\ndata_backend: memory\ndata_directory: seed\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.Port != "9000" || cfg.DataBackend != "memory" || cfg.DataDirectory != "seed" || cfg.LogLevel != "debug" {
			t.Errorf("LoadFile() = %+v", cfg)
		}
		// Keys absent from the file keep their defaults.
		if cfg.SQLiteDBPath != "./data/tracker.db" {
			t.Errorf("LoadFile() SQLiteDBPath = %v", cfg.SQLiteDBPath)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "7000")
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.Port != "7000" {
			t.Errorf("LoadFile() Port = %v, want 7000", cfg.Port)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "absent.yaml")); err == nil {
			t.Error("LoadFile() expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("port: [unterminated"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(bad); err == nil {
			t.Error("LoadFile() expected parse error")
		}
	})
}

func TestConfig_Location(t *testing.T) {
	cfg := validConfig()
	loc, err := cfg.Location()
	if err != nil || loc == nil {
		t.Fatalf("Location() = %v, %v", loc, err)
	}

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location() = %v, %v, want UTC", loc, err)
	}
}
