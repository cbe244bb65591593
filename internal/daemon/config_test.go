package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8090 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8090)
	}
	if cfg.Store.BusyTimeoutMS != 5000 {
		t.Errorf("Store.BusyTimeoutMS = %d, want 5000", cfg.Store.BusyTimeoutMS)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if cfg.Store.BusyTimeout() != 5*time.Second {
		t.Errorf("BusyTimeout() = %v, want 5s", cfg.Store.BusyTimeout())
	}
	if cfg.API.Addr() != "127.0.0.1:8090" {
		t.Errorf("Addr() = %q", cfg.API.Addr())
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("Port = %d, want default 8090", cfg.API.Port)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
host = "0.0.0.0"
port = 9000

[store]
busy_timeout_ms = 1000

[metrics]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Host != "0.0.0.0" || cfg.API.Port != 9000 {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Store.BusyTimeout() != time.Second {
		t.Errorf("BusyTimeout() = %v, want 1s", cfg.Store.BusyTimeout())
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
	// Unset keys keep their defaults.
	if cfg.Documents.SpoolDir == "" {
		t.Error("Documents.SpoolDir lost its default")
	}
}

func TestLoadConfig_BrokenFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nport="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("broken config silently accepted")
	}
}
