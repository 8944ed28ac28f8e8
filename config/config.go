// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
// The Discord token is the only required value; use Validate before starting the bot worker.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTeamID is the MLB Stats API id for the Los Angeles Dodgers.
	DefaultTeamID = 119

	defaultPort              = 8000
	defaultMLBAPIBaseURL     = "https://statsapi.mlb.com"
	defaultKeepAliveInterval = 30 * time.Minute
	defaultFetchTimeout      = 8 * time.Second
)

type Config struct {
	// Discord
	DiscordToken string

	// HTTP
	HTTPAddr string

	// MLB Stats API
	MLBAPIBaseURL string
	TeamID        int

	// Worker tuning
	KeepAliveInterval time.Duration
	FetchTimeout      time.Duration
}

// Load reads environment variables and applies defaults. It doesn't fail if the Discord
// token is missing; use Validate() when you require the bot worker, so callers decide
// whether a missing token is fatal.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DiscordToken = os.Getenv("DISCORD_BOT_TOKEN")

	port := defaultPort
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		port = p
	}
	cfg.HTTPAddr = fmt.Sprintf(":%d", port)

	cfg.MLBAPIBaseURL = os.Getenv("MLB_API_BASE_URL")
	if cfg.MLBAPIBaseURL == "" {
		cfg.MLBAPIBaseURL = defaultMLBAPIBaseURL
	}

	cfg.TeamID = DefaultTeamID
	if v := os.Getenv("MLB_TEAM_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid MLB_TEAM_ID %q", v)
		}
		cfg.TeamID = id
	}

	cfg.KeepAliveInterval = defaultKeepAliveInterval
	if v := os.Getenv("KEEPALIVE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.KeepAliveInterval = d
		}
	}

	cfg.FetchTimeout = defaultFetchTimeout
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}

	return cfg, nil
}

// Validate checks required fields for running the Discord worker.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("missing discord env: require DISCORD_BOT_TOKEN")
	}
	return nil
}
