// Package daemon holds the daemon configuration, loaded from a TOML
// file with sane defaults for a single-studio install.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Documents DocumentsConfig `toml:"documents"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StoreConfig controls the SQLite store.
type StoreConfig struct {
	Path          string `toml:"path"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
}

// DocumentsConfig controls the settlement document spool.
type DocumentsConfig struct {
	SpoolDir string `toml:"spool_dir"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the defaults used when no config file exists.
func DefaultConfig() Config {
	home := Home()
	return Config{
		API:       APIConfig{Host: "127.0.0.1", Port: 8090},
		Store:     StoreConfig{Path: filepath.Join(home, "pos.db"), BusyTimeoutMS: 5000},
		Documents: DocumentsConfig{SpoolDir: filepath.Join(home, "documents")},
		Metrics:   MetricsConfig{Enabled: true},
	}
}

// Home returns the daemon's data directory (~/.pos).
func Home() string {
	if v := os.Getenv("POS_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pos"
	}
	return filepath.Join(home, ".pos")
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(Home(), "config.toml")
}

// LoadConfig reads path, falling back to defaults when the file does
// not exist. A present-but-broken file is an error, never silently
// ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// BusyTimeout returns the store lock-wait bound as a duration.
func (c StoreConfig) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
