package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"timebox/internal/platform/config"
)

func TestLoadCreatesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:8080" || cfg.Locale != "es_ES" || cfg.Remote.Timeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Authenticated() {
		t.Fatalf("default config must run as guest")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
}

func TestLoadReadsFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `listen: 0.0.0.0:9000
database: /tmp/timebox-test.db
timezone: Europe/Madrid
log_level: LOUD
remote:
  url: http://planner.local/api/
  username: ana
  timeout: 3s
users:
  - username: ana
    password_hash: $2a$10$abcdefghijklmnopqrstuu
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TIMEBOX_REMOTE_PASSWORD", "s3cret")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "0.0.0.0:9000" || cfg.Database != "/tmp/timebox-test.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Remote.URL != "http://planner.local/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Remote.URL)
	}
	if cfg.Remote.Password != "s3cret" {
		t.Fatalf("expected env override for password, got %q", cfg.Remote.Password)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Remote.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unknown log level should normalize to info, got %q", cfg.LogLevel)
	}
	if len(cfg.Users) != 1 || cfg.Users[0].Username != "ana" {
		t.Fatalf("users not decoded: %+v", cfg.Users)
	}
	if !cfg.Authenticated() {
		t.Fatalf("remote url + username should authenticate")
	}
	if cfg.Location().String() != "Europe/Madrid" {
		t.Fatalf("expected Europe/Madrid, got %s", cfg.Location())
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	cfg.Timezone = "Mars/Olympus"
	if cfg.Location() != time.Local {
		t.Fatalf("invalid zone should fall back to local")
	}
}
