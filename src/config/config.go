package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co"
	// DefaultAPIKey is Alpha Vantage's public demo key; it only answers a handful of symbols.
	DefaultAPIKey  = "demo"
	DefaultTimeout = 30 * time.Second

	PolicyAbort    = "abort"
	PolicyContinue = "continue"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Key     string        `yaml:"key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	LogLevel string `yaml:"log_level"`
	Loader   struct {
		OnQuoteError string `yaml:"on_quote_error"`
		// MaxRows caps the rows fetched per load; 0 = whole listing.
		MaxRows int `yaml:"max_rows"`
	} `yaml:"loader"`
	Export struct {
		Format   string `yaml:"format"`
		Path     string `yaml:"path"`
		Schedule string `yaml:"schedule"`
	} `yaml:"export"`
}

// Load reads an optional .env file and an optional YAML config, then applies environment
// overrides and defaults. A missing config file is not an error.
func Load(path string) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOCKVIEWER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STOCKVIEWER_ON_QUOTE_ERROR"); v != "" {
		cfg.Loader.OnQuoteError = v
	}
	if v := os.Getenv("STOCKVIEWER_MAX_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Loader.MaxRows = n
		}
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Key == "" {
		cfg.API.Key = DefaultAPIKey
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.Loader.OnQuoteError = strings.ToLower(strings.TrimSpace(cfg.Loader.OnQuoteError))
	if cfg.Loader.OnQuoteError == "" {
		cfg.Loader.OnQuoteError = PolicyAbort
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "csv"
	}

	return cfg, nil
}

// UsingDemoKey reports whether no real API key was configured.
func (c *Config) UsingDemoKey() bool { return c.API.Key == DefaultAPIKey }

// Validate checks field values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Loader.OnQuoteError {
	case PolicyAbort, PolicyContinue:
	default:
		return fmt.Errorf("loader.on_quote_error must be %q or %q, got %q", PolicyAbort, PolicyContinue, c.Loader.OnQuoteError)
	}
	if c.Loader.MaxRows < 0 {
		return fmt.Errorf("loader.max_rows must not be negative")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	return nil
}
