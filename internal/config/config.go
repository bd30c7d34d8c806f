// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and env vars over the defaults.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PlayersPath is the player list location (file path or http(s) URL).
	PlayersPath string `koanf:"players_path"`

	// PricesPath is the price table location. Empty skips the merge.
	PricesPath string `koanf:"prices_path"`

	// LogoMapPath overrides the built-in club logo map when set.
	LogoMapPath string `koanf:"logo_map_path"`

	// PriceSource picks which base price wins: csv or player.
	PriceSource string `koanf:"price_source"`

	// PlaceholderLogo is the last-resort team logo URL.
	PlaceholderLogo string `koanf:"placeholder_logo"`

	// LegacyEmptyMatch lets punctuation-only club names match the first map entry.
	LegacyEmptyMatch bool `koanf:"legacy_empty_match"`

	// CORSOrigins lists the browser origins allowed to read the feed.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRPS and RateLimitBurst bound requests per client IP. Zero disables the limit.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// FetchTimeoutMS bounds each remote source fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		PlayersPath:     "data/players.json",
		PricesPath:      "data/prices.csv",
		PriceSource:     "csv",
		PlaceholderLogo: "",
		CORSOrigins:     []string{"*"},
		RateLimitRPS:    20,
		RateLimitBurst:  40,
		FetchTimeoutMS:  20_000,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
