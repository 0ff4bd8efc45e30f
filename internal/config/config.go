package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is read once at startup
// and injected into the components that need it; nothing re-reads the
// environment per call.
type Config struct {
	Database struct {
		// URL is a Postgres connection string. When empty the server
		// falls back to a local SQLite file at Path.
		URL  string `yaml:"url"`
		Path string `yaml:"path"`
	} `yaml:"database"`
	Feed struct {
		URL        string `yaml:"url"`
		AuthHeader string `yaml:"auth_header"`
		Cookie     string `yaml:"cookie"`
		SyncCron   string `yaml:"sync_cron"`
	} `yaml:"feed"`
	SyncToken    string `yaml:"sync_token"`
	Port         string `yaml:"port"`
	CORSOrigins  string `yaml:"cors_origins"`
	SnapshotHour int    `yaml:"snapshot_hour"`
}

// A ConfigError reports required configuration that is missing. It maps
// to a server-side (500) response, never to a silent default.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// Load reads config from an optional YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Sentinel so an explicit hour 0 (midnight) is distinguishable from
	// "not configured".
	cfg.SnapshotHour = -1

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("FEED_AUTH_HEADER"); v != "" {
		cfg.Feed.AuthHeader = v
	}
	if v := os.Getenv("FEED_COOKIE"); v != "" {
		cfg.Feed.Cookie = v
	}
	if v := os.Getenv("SYNC_CRON"); v != "" {
		cfg.Feed.SyncCron = v
	}
	if v := os.Getenv("SYNC_TOKEN"); v != "" {
		cfg.SyncToken = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}
	if v := os.Getenv("SNAPSHOT_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			cfg.SnapshotHour = h
		}
	}

	// Defaults
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./cardvault.db"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SnapshotHour < 0 || cfg.SnapshotHour > 23 {
		cfg.SnapshotHour = 23
	}

	return cfg, nil
}

// RequireSyncToken fails when no shared secret is configured. The token
// is never defaulted; privileged endpoints are unusable without it.
func (c *Config) RequireSyncToken() error {
	if c.SyncToken == "" {
		return &ConfigError{Key: "SYNC_TOKEN"}
	}
	return nil
}

// RequireFeedURL fails when no feed endpoint is configured.
func (c *Config) RequireFeedURL() error {
	if c.Feed.URL == "" {
		return &ConfigError{Key: "FEED_URL"}
	}
	return nil
}
