// Package common provides shared utilities for MOSEE
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for MOSEE
type Config struct {
	Environment string         `toml:"environment"`
	Tickers     []string       `toml:"tickers"` // default analysis universe
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	History AreaConfig `toml:"history"` // Profile history snapshots (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	FMP FMPConfig `toml:"fmp"`
}

// FMPConfig holds the financial data provider API configuration
type FMPConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AnalysisConfig holds the valuation and scoring tunables.
// These are the only knobs the core computation takes; they are passed
// into each call rather than read from process-wide state.
type AnalysisConfig struct {
	DiscountRate    float64 `toml:"discount_rate"`    // DCF discount rate
	RiskFreeRate    float64 `toml:"risk_free_rate"`   // PAD discounting rate
	TerminalGrowth  float64 `toml:"terminal_growth"`  // DCF terminal growth rate
	RequiredReturn  float64 `toml:"required_return"`  // owner-earnings perpetuity rate
	RequiredMoS     float64 `toml:"required_mos"`     // 0.7 = 30% discount to conservative
	ProjectionYears int     `toml:"projection_years"` // years of projected cash flows
	DecayRate       float64 `toml:"decay_rate"`       // regression weight per year of recency
	IndustryPE      float64 `toml:"industry_pe"`      // baseline P/E for earnings multiple
	EffectiveTax    float64 `toml:"effective_tax"`    // neutral tax rate when unreported
	Style           string  `toml:"style"`            // scoring style preset name
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			History: AreaConfig{Path: "data/history"},
		},
		Clients: ClientsConfig{
			FMP: FMPConfig{
				BaseURL:   "https://financialmodelingprep.com/api/v3",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Analysis: AnalysisConfig{
			DiscountRate:    0.10,
			RiskFreeRate:    0.04,
			TerminalGrowth:  0.03,
			RequiredReturn:  0.10,
			RequiredMoS:     0.7,
			ProjectionYears: 10,
			DecayRate:       1.25,
			IndustryPE:      15,
			EffectiveTax:    0.25,
			Style:           "balanced",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Analysis.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MOSEE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("MOSEE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("MOSEE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("MOSEE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("MOSEE_DATA_PATH"); path != "" {
		config.Storage.History.Path = filepath.Join(path, "history")
	}

	if key := os.Getenv("MOSEE_FMP_API_KEY"); key != "" {
		config.Clients.FMP.APIKey = key
	}
}

// Validate checks that the analysis tunables are internally consistent.
func (c *AnalysisConfig) Validate() error {
	if c.ProjectionYears <= 0 {
		return fmt.Errorf("analysis.projection_years must be positive, got %d", c.ProjectionYears)
	}
	if c.DiscountRate <= c.TerminalGrowth {
		return fmt.Errorf("analysis.discount_rate (%.3f) must exceed terminal_growth (%.3f)",
			c.DiscountRate, c.TerminalGrowth)
	}
	if c.RequiredMoS <= 0 {
		return fmt.Errorf("analysis.required_mos must be positive, got %.3f", c.RequiredMoS)
	}
	if c.DecayRate <= 0 {
		return fmt.Errorf("analysis.decay_rate must be positive, got %.3f", c.DecayRate)
	}
	return nil
}
