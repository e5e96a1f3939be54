package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "trustview.yaml"

// Config holds all trustview configuration.
type Config struct {
	// Orchestrator API connection
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`

	// List cache
	Cache CacheConfig `yaml:"cache"`

	// Auto refresh
	Refresh RefreshConfig `yaml:"refresh"`

	// Offline database
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Presentation
	UI UIConfig `yaml:"ui"`
}

// OrchestratorConfig configures the HTTP source.
type OrchestratorConfig struct {
	APIURL      string `yaml:"api_url"`
	UserAddress string `yaml:"user_address"` // sent as X-User-Address; empty shows all intents
	Timeout     string `yaml:"timeout"`
}

// CacheConfig configures the list cache.
type CacheConfig struct {
	TTL string `yaml:"ttl"`
}

// RefreshConfig configures the dashboard's periodic refresh.
type RefreshConfig struct {
	Interval string `yaml:"interval"`
	Auto     bool   `yaml:"auto"`
}

// StoreConfig configures offline mode.
type StoreConfig struct {
	Path      string `yaml:"path"`       // Orchestrator SQLite database; empty means use the HTTP API
	ListLimit int    `yaml:"list_limit"` // most recent intents listed offline
}

// UIConfig configures presentation.
type UIConfig struct {
	Theme    string `yaml:"theme"`    // auto, dark, light
	Timezone string `yaml:"timezone"` // Local, UTC, or an IANA name
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Orchestrator: OrchestratorConfig{
			APIURL:  "http://localhost:8081",
			Timeout: "10s",
		},
		Cache: CacheConfig{
			TTL: "2s",
		},
		Refresh: RefreshConfig{
			Interval: "5s",
			Auto:     false,
		},
		Store: StoreConfig{
			ListLimit: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "trustview.log",
		},
		UI: UIConfig{
			Theme:    "auto",
			Timezone: "Local",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("API_URL"); v != "" {
		c.Orchestrator.APIURL = v
	}
	// USER_ADDRESS may be set to an empty string on purpose, so check presence.
	if v, ok := os.LookupEnv("USER_ADDRESS"); ok {
		c.Orchestrator.UserAddress = strings.TrimSpace(v)
	}
	if v := os.Getenv("TRUSTVIEW_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TRUSTVIEW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetTimeout returns the per-request timeout.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.Orchestrator.Timeout, 10*time.Second)
}

// GetCacheTTL returns the list cache TTL.
func (c *Config) GetCacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 2*time.Second)
}

// GetRefreshInterval returns the auto refresh interval.
func (c *Config) GetRefreshInterval() time.Duration {
	return parseDuration(c.Refresh.Interval, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Location resolves UI.Timezone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	switch strings.TrimSpace(c.UI.Timezone) {
	case "", "Local", "local":
		return time.Local
	case "UTC", "utc":
		return time.UTC
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IsOffline reports whether a database path replaces the HTTP API.
func (c *Config) IsOffline() bool {
	return c.Store.Path != ""
}

// ValidThemes lists accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.IsOffline() {
		u, err := url.Parse(c.Orchestrator.APIURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid orchestrator api_url %q (set API_URL or orchestrator.api_url)", c.Orchestrator.APIURL)
		}
	}

	for name, v := range map[string]string{
		"orchestrator.timeout": c.Orchestrator.Timeout,
		"cache.ttl":            c.Cache.TTL,
		"refresh.interval":     c.Refresh.Interval,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %q", name, v)
		}
	}

	if c.Store.ListLimit < 0 {
		return fmt.Errorf("invalid store list_limit: %d", c.Store.ListLimit)
	}

	validTheme := c.UI.Theme == ""
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	tz := c.UI.Timezone
	if tz != "" && tz != "Local" && tz != "local" && tz != "UTC" && tz != "utc" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("invalid ui timezone %q: %w", tz, err)
		}
	}

	return nil
}
