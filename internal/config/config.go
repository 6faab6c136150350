// Package config handles loading and saving user configuration for wikiterm.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds settings for the term base backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"` // e.g., "https://wikitermbase.toolforge.org"
	Timeout time.Duration `yaml:"timeout"`  // HTTP client timeout
}

// SearchConfig holds settings for incremental search.
type SearchConfig struct {
	Mode       string        `yaml:"mode"`       // "aggregated" or "raw"
	Debounce   time.Duration `yaml:"debounce"`   // quiet period before a lookup
	Morphology bool          `yaml:"morphology"` // analyze Arabic queries
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty discards logs
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://wikitermbase.toolforge.org",
			Timeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Mode:       "aggregated",
			Debounce:   300 * time.Millisecond,
			Morphology: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadDir loads FileName from dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks values that cannot be used as-is.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout %s is negative", c.API.Timeout))
	}

	switch strings.ToLower(c.Search.Mode) {
	case "", "aggregated", "raw", "flat":
	default:
		errs = append(errs, fmt.Errorf("search.mode %q is not aggregated or raw", c.Search.Mode))
	}
	if c.Search.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("search.debounce %s must be positive", c.Search.Debounce))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is unknown", c.Log.Level))
	}

	return errors.Join(errs...)
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wikiterm"), nil
}
