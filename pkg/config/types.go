// Package config provides configuration management for sahkolasku.
//
// Configuration is loaded from multiple sources with the following
// precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("usage export: %s\n", cfg.Usage.File)
package config

import (
	"github.com/jtuomin/sahkolasku/pkg/pricing"
	"github.com/jtuomin/sahkolasku/pkg/usage"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Timezone must name a resolvable IANA zone
// - Pricing.VAT must be > 0
// - Contract.Kind must be flat, daynight, or spot
// - Contract rates must be >= 0.
type Config struct {
	// Timezone the usage export's local dates are interpreted in.
	Timezone string `yaml:"timezone"`

	// Usage export settings
	Usage UsageConfig `yaml:"usage"`

	// Spot price settings
	Pricing PricingConfig `yaml:"pricing"`

	// Contract selects the pricing policy
	Contract ContractConfig `yaml:"contract"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Home Assistant publishing settings
	HomeAssistant HAConfig `yaml:"home_assistant,omitempty"`
}

// UsageConfig locates and describes the metering export.
type UsageConfig struct {
	// Path to the usage export file
	File string `yaml:"file"`

	// Phrase the export writes for hours without data
	NoDataSentinel string `yaml:"no_data_sentinel"`
}

// PricingConfig contains spot price source settings.
type PricingConfig struct {
	// Spot price source files, merged in order (later files win)
	SpotFiles []string `yaml:"spot_files"`

	// Value-added-tax multiplier applied to raw market prices
	VAT float64 `yaml:"vat"`
}

// ContractConfig selects and parameterizes the pricing policy.
type ContractConfig struct {
	// Contract kind: flat, daynight, or spot
	Kind string `yaml:"kind"`

	// Unit price for the flat contract
	Rate float64 `yaml:"rate,omitempty"`

	// Unit prices for the day/night contract
	DayRate   float64 `yaml:"day_rate,omitempty"`
	NightRate float64 `yaml:"night_rate,omitempty"`
}

// DisplayConfig contains output rendering settings.
type DisplayConfig struct {
	// Output format (table, json, simple)
	Format string `yaml:"format"`

	// Compact output
	Compact bool `yaml:"compact"`
}

// StorageConfig contains storage settings for the driver-side caches.
type StorageConfig struct {
	// Path to the BoltDB price cache file
	DBPath string `yaml:"db_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// HAConfig contains Home Assistant / MQTT publishing settings.
type HAConfig struct {
	// Enabled turns publishing on
	Enabled bool `yaml:"enabled"`

	// MQTT broker address, host:port
	Broker string `yaml:"broker"`

	// Topic prefix for published summaries
	TopicPrefix string `yaml:"topic_prefix"`

	// Optional broker credentials
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: this method is read-only and thread-safe.
func (c *Config) Validate() error {
	if c.Timezone == "" {
		return ErrNoTimezone
	}

	if c.Usage.File == "" {
		return ErrNoUsageFile
	}

	if c.Pricing.VAT <= 0 {
		return ErrInvalidVAT
	}

	switch pricing.Kind(c.Contract.Kind) {
	case pricing.KindFlat:
		if c.Contract.Rate < 0 {
			return ErrNegativeRate
		}
	case pricing.KindDayNight:
		if c.Contract.DayRate < 0 || c.Contract.NightRate < 0 {
			return ErrNegativeRate
		}
	case pricing.KindSpot:
		if len(c.Pricing.SpotFiles) == 0 {
			return ErrNoSpotFiles
		}
	default:
		return ErrInvalidContractKind
	}

	validFormats := map[string]bool{
		"table":  true,
		"json":   true,
		"simple": true,
	}
	if !validFormats[c.Display.Format] {
		return ErrInvalidDisplayFormat
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.HomeAssistant.Enabled && c.HomeAssistant.Broker == "" {
		return ErrNoBroker
	}

	return nil
}

// Policy builds the pricing policy the contract section describes.
// The spot variant needs the built index supplied by the caller,
// since index construction involves I/O the config layer never does.
func (c *Config) Policy(index *pricing.Index) (pricing.Policy, error) {
	switch pricing.Kind(c.Contract.Kind) {
	case pricing.KindFlat:
		return pricing.Flat(c.Contract.Rate), nil
	case pricing.KindDayNight:
		return pricing.DayNight(c.Contract.DayRate, c.Contract.NightRate), nil
	case pricing.KindSpot:
		if index == nil {
			return pricing.Policy{}, pricing.ErrNoIndex
		}
		return pricing.Spot(index), nil
	default:
		return pricing.Policy{}, ErrInvalidContractKind
	}
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Timezone: "Europe/Helsinki",
		Usage: UsageConfig{
			File:           "sahko.csv",
			NoDataSentinel: usage.NoDataSentinel,
		},
		Pricing: PricingConfig{
			VAT: pricing.DefaultVAT,
		},
		Contract: ContractConfig{
			Kind:      string(pricing.KindDayNight),
			DayRate:   6,
			NightRate: 5,
		},
		Display: DisplayConfig{
			Format: "table",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
