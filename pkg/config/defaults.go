package config

import (
	"os"
	"path/filepath"
)

// defaultDBPath returns the default price cache path.
//
// Returns: ~/.config/sahkolasku/prices.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./prices.db"
	}

	return filepath.Join(homeDir, ".config", "sahkolasku", "prices.db")
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/sahkolasku/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "sahkolasku", "config.yaml")
}
