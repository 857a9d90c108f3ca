// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvLogLevel        = "BOB_LOG_LEVEL"
	EnvLogFormat       = "BOB_LOG_FORMAT"
	EnvContentCacheTTL = "BOB_CONTENT_CACHE_TTL"
	EnvDefaultLocale   = "BOB_DEFAULT_LOCALE"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url"` // PostgreSQL connection URL holding the content collections

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level"`   // debug, info, warn or error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format"` // text or json

	// Content
	ContentCacheTTL string `json:"content_cache_ttl,omitempty" yaml:"content_cache_ttl"` // e.g. "10m"; "0" keeps content until cleared
	WarmCache       bool   `json:"warm_cache,omitempty" yaml:"warm_cache"`               // Load every collection at startup
	DefaultLocale   string `json:"default_locale,omitempty" yaml:"default_locale"`       // Locale of users who have none
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "text",
		ContentCacheTTL: "0",
		DefaultLocale:   "fr",
	}
}

// Load reads the configuration file (if any), applies environment overrides
// and defaults, then validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON file, or a YAML one when its
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides the configuration with the environment variables that are set.
func (c *Config) ApplyEnv() {
	c.DatabaseURL = envStr(EnvDatabaseURL, c.DatabaseURL)
	c.LogLevel = envStr(EnvLogLevel, c.LogLevel)
	c.LogFormat = envStr(EnvLogFormat, c.LogFormat)
	c.ContentCacheTTL = envStr(EnvContentCacheTTL, c.ContentCacheTTL)
	c.DefaultLocale = envStr(EnvDefaultLocale, c.DefaultLocale)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}

	if _, err := c.CacheTTL(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if strings.ContainsAny(c.DefaultLocale, " :") {
		return fmt.Errorf("config error: invalid 'default_locale' %q", c.DefaultLocale)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ContentCacheTTL == "" {
		result.ContentCacheTTL = defaults.ContentCacheTTL
	}
	if result.DefaultLocale == "" {
		result.DefaultLocale = defaults.DefaultLocale
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// CacheTTL parses the content cache TTL. Zero means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.ContentCacheTTL == "" || c.ContentCacheTTL == "0" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.ContentCacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid 'content_cache_ttl' %q: %w", c.ContentCacheTTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("'content_cache_ttl' must be non-negative, got %s", ttl)
	}
	return ttl, nil
}

// Level returns the slog level of LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown 'log_level' %q", name)
	}
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
