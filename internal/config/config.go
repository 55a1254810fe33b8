// Package config loads dex settings from a YAML file.
// A missing file is not an error; every field has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/robby/dex/internal/pokeapi"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for dex.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// APIConfig configures the PokeAPI client and the fetch fan-out.
type APIConfig struct {
	BaseURL   string  `yaml:"base_url"`
	Timeout   string  `yaml:"timeout"` // Go duration, e.g. "30s"
	UserAgent string  `yaml:"user_agent"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Limit     int     `yaml:"limit"`      // catalog entries to fetch

	// MaxConcurrency caps in-flight detail requests. 0 = uncapped.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig configures the in-process catalog cache.
type CacheConfig struct {
	DetailTTL string `yaml:"detail_ttl"`
}

// StorageConfig configures where preferences are persisted.
type StorageConfig struct {
	Path    string `yaml:"path"`
	Persist bool   `yaml:"persist"`
}

// LoggingConfig configures the log file. The terminal belongs to the UI,
// so logs are only ever written to File.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	File    string `yaml:"file"`
}

// UIConfig holds presentation defaults.
type UIConfig struct {
	View     string `yaml:"view"` // grid or table
	PageSize int    `yaml:"page_size"`
}

// ValidPageSizes mirrors the page sizes offered by the table view.
var ValidPageSizes = []int{10, 20, 30, 50, 100}

// Dir returns the dex configuration directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dex")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   pokeapi.DefaultBaseURL,
			Timeout:   pokeapi.DefaultTimeout.String(),
			UserAgent: pokeapi.DefaultUserAgent,
			Limit:     pokeapi.CatalogSize,
		},
		Cache: CacheConfig{
			DetailTTL: "24h",
		},
		Storage: StorageConfig{
			Path:    filepath.Join(Dir(), "dex.db"),
			Persist: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			File:    filepath.Join(Dir(), "dex.log"),
		},
		UI: UIConfig{
			View:     "grid",
			PageSize: 10,
		},
	}
}

// Load reads configuration from a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("DEX_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if path := os.Getenv("DEX_DB"); path != "" {
		c.Storage.Path = path
	}
	if path := os.Getenv("DEX_LOG_FILE"); path != "" {
		c.Logging.File = path
	}
}

// GetTimeout returns the HTTP timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return pokeapi.DefaultTimeout
	}
	return d
}

// GetDetailTTL returns the detail cache TTL as a duration.
func (c *Config) GetDetailTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.DetailTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if d, err := time.ParseDuration(c.Cache.DetailTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid cache.detail_ttl %q", c.Cache.DetailTTL)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}
	if c.API.MaxConcurrency < 0 {
		return fmt.Errorf("api.max_concurrency must not be negative")
	}
	if c.API.Limit <= 0 {
		return fmt.Errorf("api.limit must be positive")
	}
	if c.UI.View != "grid" && c.UI.View != "table" {
		return fmt.Errorf("invalid ui.view: %s (valid: grid, table)", c.UI.View)
	}
	if !slices.Contains(ValidPageSizes, c.UI.PageSize) {
		return fmt.Errorf("invalid ui.page_size: %d (valid: %v)", c.UI.PageSize, ValidPageSizes)
	}
	if c.Storage.Persist && c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set when persist is enabled")
	}
	return nil
}
