package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Remote API
	BaseURL   string
	TokenFile string

	// Rate limiting
	RatePerSecond float64
	RateBurst     int
	MaxConcurrent int

	// Task polling
	PollInterval time.Duration

	// MCP HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:8000",
		TokenFile:     defaultTokenFile(),
		RatePerSecond: 5.0,
		RateBurst:     10,
		MaxConcurrent: 5,
		PollInterval:  5 * time.Second,
		HTTPPort:      "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("SCRAPPER_API_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SCRAPPER_TOKEN_FILE"); v != "" {
		c.TokenFile = v
	}
	if v := os.Getenv("SCRAPPER_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("SCRAPPER_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("SCRAPPER_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("SCRAPPER_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.PollInterval = d
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("SCRAPPER_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// defaultTokenFile resolves the durable token path under the user config dir.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "scrapper-token"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "scrapper", "token")
}
