// Package config provides configuration management for the trade tracker
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config holds the application configuration
type Config struct {
	APIKey             string        `envconfig:"COINGECKO_API_KEY"`                                        // Static CoinGecko demo API key
	URL                string        `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"` // CoinGecko API base URL
	IconDir            string        `envconfig:"ICON_DIR" default:"static/images"`                         // Directory holding the coins/ icon folder
	MinRequestInterval time.Duration `envconfig:"MIN_REQUEST_INTERVAL" default:"500ms"`                     // Minimum gap between outbound requests
	PriceTTL           time.Duration `envconfig:"PRICE_TTL" default:"120s"`                                 // Lifetime of a cached price
	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`                               // Timeout for search and price calls
	IconTimeout        time.Duration `envconfig:"ICON_TIMEOUT" default:"30s"`                               // Timeout for coin metadata and icon downloads
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`                                 // zap log level
	Environment        string        `envconfig:"ENVIRONMENT" default:"development"`                        // development or production
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithEnvFile loads variables from a .env file and re-reads the environment
// on top of the current values.
func WithEnvFile(path string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}

		if err := envconfig.Process("", c); err != nil {
			return fmt.Errorf("failed to process env file: %w", err)
		}

		return nil
	}
}

// WithAPIKey sets the CoinGecko API key
func WithAPIKey(key string) Option {
	return func(c *Config) error {
		c.APIKey = key
		return nil
	}
}

// WithURL sets the CoinGecko base URL
func WithURL(u string) Option {
	return func(c *Config) error {
		c.URL = u
		return nil
	}
}

// WithIconDir sets the directory icons are written under
func WithIconDir(dir string) Option {
	return func(c *Config) error {
		c.IconDir = dir
		return nil
	}
}

// Defaults returns a Config with every default applied and no API key.
func Defaults() Config {
	return Config{
		URL:                "https://api.coingecko.com/api/v3",
		IconDir:            "static/images",
		MinRequestInterval: 500 * time.Millisecond,
		PriceTTL:           120 * time.Second,
		HTTPTimeout:        10 * time.Second,
		IconTimeout:        30 * time.Second,
		LogLevel:           "info",
		Environment:        "development",
	}
}

// validate performs validation on the config values
func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CoinGecko API key is required")
	}

	if c.URL == "" {
		return fmt.Errorf("CoinGecko URL is required")
	}
	if _, err := url.ParseRequestURI(c.URL); err != nil {
		return fmt.Errorf("invalid CoinGecko URL: %s", c.URL)
	}

	if c.MinRequestInterval < 0 {
		return fmt.Errorf("negative request interval: %s", c.MinRequestInterval)
	}

	for name, d := range map[string]time.Duration{
		"price TTL":    c.PriceTTL,
		"HTTP timeout": c.HTTPTimeout,
		"icon timeout": c.IconTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// NewConfig creates a new validated Config instance
func NewConfig(opts ...Option) (*Config, error) {
	var cfg Config

	// Process environment variables first
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Apply user options last so they take precedence
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
