// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the
// configured keychain store.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ragflow/cli/internal/xdg"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultAPIURL  = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second
	DefaultBackend = "keyring"
)

// Environment variables that override file settings.
const (
	EnvAPIURL   = "RAGFLOW_API_URL"
	EnvStore    = "RAGFLOW_STORE"
	EnvRedisURL = "RAGFLOW_REDIS_URL"
	EnvLogLevel = "RAGFLOW_LOG_LEVEL"
	EnvTimeout  = "RAGFLOW_TIMEOUT"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
	Store    StoreConfig   `yaml:"store"`
}

// StoreConfig selects where the session token is persisted.
type StoreConfig struct {
	// Backend is one of "keyring", "file" or "redis".
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogLevel: "warn",
		Store:    StoreConfig{Backend: DefaultBackend},
	}
}

// Path returns the default path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from path; an empty path means Path().
// A missing file yields defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	c, err := LoadFile(path)
	if err != nil {
		return c, err
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// LoadFile reads only the defaults and the file, ignoring the environment.
// It is what `config set` edits so overrides never leak into the file.
func LoadFile(path string) (Config, error) {
	c := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return c, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return c, nil
	case err != nil:
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Store.RedisURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("api_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Store.Backend {
	case "keyring", "file":
	case "redis":
		if c.Store.RedisURL == "" {
			return errors.New("store.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want keyring, file or redis)", c.Store.Backend)
	}
	return nil
}

// Set updates a single setting by its YAML key name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		c.Timeout = d
	case "log_level":
		c.LogLevel = value
	case "store.backend", "store":
		c.Store.Backend = value
	case "store.redis_url", "redis_url":
		c.Store.RedisURL = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Save writes configuration to path (Path() when empty) with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
