// Package daemon holds the service configuration: a TOML file under the
// onegoal home directory, with sane defaults when the file is absent.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration, read from config.toml.
type Config struct {
	API     APIConfig     `toml:"api"`
	Store   StoreConfig   `toml:"store"`
	Auth    AuthConfig    `toml:"auth"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StoreConfig controls the SQLite document store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// AuthConfig controls identity resolution. An empty secret enables the
// insecure dev mode where the bearer credential is taken as the user id.
type AuthConfig struct {
	Secret string `toml:"secret"`
}

// MetricsConfig gates the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// LogConfig selects the logger profile: "production" or "development".
type LogConfig struct {
	Mode string `toml:"mode"`
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		API:     APIConfig{Host: "127.0.0.1", Port: 8420},
		Store:   StoreConfig{Path: filepath.Join(Home(), "onegoal.db")},
		Auth:    AuthConfig{Secret: ""},
		Metrics: MetricsConfig{Enabled: true},
		Log:     LogConfig{Mode: "production"},
	}
}

// Home returns the onegoal home directory, honoring ONEGOAL_HOME.
func Home() string {
	if env := os.Getenv("ONEGOAL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".onegoal")
}

// ConfigPath returns the path of the daemon config file.
func ConfigPath() string {
	return filepath.Join(Home(), "config.toml")
}

// Load reads path, layering its values over DefaultConfig. A missing
// file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return Config{}, fmt.Errorf("config %s: api.port %d out of range", path, cfg.API.Port)
	}
	if cfg.Log.Mode != "production" && cfg.Log.Mode != "development" {
		return Config{}, fmt.Errorf("config %s: log.mode %q must be production or development", path, cfg.Log.Mode)
	}
	return cfg, nil
}

// Addr returns the host:port the API listener binds.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
