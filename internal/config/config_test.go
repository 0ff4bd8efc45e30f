package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_PATH", "FEED_URL", "FEED_AUTH_HEADER", "FEED_COOKIE",
		"SYNC_CRON", "SYNC_TOKEN", "PORT", "CORS_ALLOWED_ORIGINS", "SNAPSHOT_HOUR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "./cardvault.db" {
		t.Errorf("Database.Path = %q, want ./cardvault.db", cfg.Database.Path)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SnapshotHour != 23 {
		t.Errorf("SnapshotHour = %d, want 23", cfg.SnapshotHour)
	}
	if cfg.SyncToken != "" {
		t.Errorf("SyncToken = %q, want empty", cfg.SyncToken)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/cards")
	t.Setenv("FEED_URL", "https://feed.example.com/prices.json.gz")
	t.Setenv("FEED_AUTH_HEADER", "Bearer tok")
	t.Setenv("SYNC_TOKEN", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("SNAPSHOT_HOUR", "21")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/cards" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Feed.URL != "https://feed.example.com/prices.json.gz" {
		t.Errorf("Feed.URL = %q", cfg.Feed.URL)
	}
	if cfg.Feed.AuthHeader != "Bearer tok" {
		t.Errorf("Feed.AuthHeader = %q", cfg.Feed.AuthHeader)
	}
	if cfg.SyncToken != "secret" {
		t.Errorf("SyncToken = %q", cfg.SyncToken)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.SnapshotHour != 21 {
		t.Errorf("SnapshotHour = %d, want 21", cfg.SnapshotHour)
	}
}

func TestLoadSnapshotHourZeroIsMidnight(t *testing.T) {
	t.Run("from env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SNAPSHOT_HOUR", "0")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.SnapshotHour != 0 {
			t.Errorf("SnapshotHour = %d, want 0", cfg.SnapshotHour)
		}
	})

	t.Run("from file", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("snapshot_hour: 0\n"), 0o644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.SnapshotHour != 0 {
			t.Errorf("SnapshotHour = %d, want 0", cfg.SnapshotHour)
		}
	})
}

func TestLoadInvalidSnapshotHourIgnored(t *testing.T) {
	tests := []string{"abc", "-1", "24"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SNAPSHOT_HOUR", v)

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.SnapshotHour != 23 {
				t.Errorf("SnapshotHour = %d, want default 23", cfg.SnapshotHour)
			}
		})
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
database:
  path: /data/cards.db
feed:
  url: https://feed.example.com/prices.json
  sync_cron: "0 6 * * *"
sync_token: from-file
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/data/cards.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Feed.URL != "https://feed.example.com/prices.json" {
		t.Errorf("Feed.URL = %q", cfg.Feed.URL)
	}
	if cfg.Feed.SyncCron != "0 6 * * *" {
		t.Errorf("Feed.SyncCron = %q", cfg.Feed.SyncCron)
	}
	if cfg.SyncToken != "from-file" {
		t.Errorf("SyncToken = %q", cfg.SyncToken)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNC_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sync_token: from-file\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SyncToken != "from-env" {
		t.Errorf("SyncToken = %q, want from-env", cfg.SyncToken)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed on missing file: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default", cfg.Port)
	}
}

func TestRequireSyncToken(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireSyncToken()

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected *ConfigError, got %v", err)
	}
	if cfgErr.Key != "SYNC_TOKEN" {
		t.Errorf("Key = %q, want SYNC_TOKEN", cfgErr.Key)
	}

	cfg.SyncToken = "x"
	if err := cfg.RequireSyncToken(); err != nil {
		t.Errorf("Expected nil with token set, got %v", err)
	}
}

func TestRequireFeedURL(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireFeedURL()

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected *ConfigError, got %v", err)
	}
	if cfgErr.Key != "FEED_URL" {
		t.Errorf("Key = %q, want FEED_URL", cfgErr.Key)
	}

	cfg.Feed.URL = "https://feed.example.com"
	if err := cfg.RequireFeedURL(); err != nil {
		t.Errorf("Expected nil with URL set, got %v", err)
	}
}
