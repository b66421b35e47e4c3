package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader provides methods for loading configuration from various
// sources.
type Loader interface {
	// Load loads configuration with the following precedence:
	// 1. Environment variables
	// 2. Configuration file
	// 3. Default values
	//
	// Returns the merged configuration or an error if validation
	// fails.
	Load() (*Config, error)

	// LoadFromFile loads configuration from a specific file.
	LoadFromFile(path string) (*Config, error)
}

// loader implements the Loader interface.
type loader struct {
	configPath string
}

// NewLoader creates a configuration loader.
//
// If configPath is empty, the SAHKOLASKU_CONFIG environment variable
// names the file; failing that, searches for a config file in:
// 1. ./sahkolasku.yaml (current directory)
// 2. ~/.config/sahkolasku/config.yaml.
func NewLoader(configPath string) Loader {
	return &loader{configPath: configPath}
}

// Load implements Loader.Load.
func (l *loader) Load() (*Config, error) {
	cfg := Default()

	configPath := l.configPath
	explicit := configPath != ""

	if configPath == "" {
		if envPath := os.Getenv("SAHKOLASKU_CONFIG"); envPath != "" {
			configPath = envPath
			explicit = true
		}
	}
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	if configPath != "" {
		fileCfg, err := l.LoadFromFile(configPath)
		if err != nil {
			// An explicitly named file must load; a discovered one
			// may be absent.
			if explicit {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		} else {
			cfg = mergeConfigs(cfg, fileCfg)
		}
	}

	cfg = applyEnvVars(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile implements Loader.LoadFromFile.
func (l *loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &cfg, nil
}

// findConfigFile searches the standard locations, returning the first
// file that exists, or empty string.
func (l *loader) findConfigFile() string {
	candidates := []string{
		"./sahkolasku.yaml",
		defaultConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// mergeConfigs merges file configuration into the defaults. File
// values override, but only when non-zero.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Timezone != "" {
		result.Timezone = override.Timezone
	}

	if override.Usage.File != "" {
		result.Usage.File = override.Usage.File
	}
	if override.Usage.NoDataSentinel != "" {
		result.Usage.NoDataSentinel = override.Usage.NoDataSentinel
	}

	if len(override.Pricing.SpotFiles) > 0 {
		result.Pricing.SpotFiles = override.Pricing.SpotFiles
	}
	if override.Pricing.VAT > 0 {
		result.Pricing.VAT = override.Pricing.VAT
	}

	if override.Contract.Kind != "" {
		result.Contract = override.Contract
	}

	if override.Display.Format != "" {
		result.Display.Format = override.Display.Format
	}
	result.Display.Compact = override.Display.Compact

	if override.Storage.DBPath != "" {
		result.Storage.DBPath = override.Storage.DBPath
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		result.Logging.Output = override.Logging.Output
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	if override.HomeAssistant.Enabled {
		result.HomeAssistant = override.HomeAssistant
	}

	return &result
}

// applyEnvVars applies environment variable overrides.
//
// Supported variables:
//   - SAHKOLASKU_USAGE_FILE: usage export path
//   - SAHKOLASKU_TZ: timezone name
//   - SAHKOLASKU_DB: price cache path
//   - SAHKOLASKU_LOG_LEVEL: log level
//
// SAHKOLASKU_CONFIG names the config file itself and is handled in
// Load, before the file is read.
func applyEnvVars(cfg *Config) *Config {
	result := *cfg

	if path := os.Getenv("SAHKOLASKU_USAGE_FILE"); path != "" {
		result.Usage.File = path
	}

	if tz := os.Getenv("SAHKOLASKU_TZ"); tz != "" {
		result.Timezone = tz
	}

	if dbPath := os.Getenv("SAHKOLASKU_DB"); dbPath != "" {
		result.Storage.DBPath = dbPath
	}

	if level := os.Getenv("SAHKOLASKU_LOG_LEVEL"); level != "" {
		result.Logging.Level = strings.ToLower(level)
	}

	return &result
}

// Load is a convenience function that creates a loader and loads
// configuration.
func Load() (*Config, error) {
	return NewLoader("").Load()
}

// LoadFromFile is a convenience function that loads configuration
// from a file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Save writes the configuration to a YAML file, creating parent
// directories if needed. The file is created with 0600 permissions.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
