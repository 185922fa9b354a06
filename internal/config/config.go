// Package config provides configuration management for CardVault.
//
// Configuration is layered: defaults, then an optional YAML file, then
// CARDVAULT_* environment variables, then command-line flags (applied by
// the caller). Later layers win.
//
// Config file locations (priority order):
//  1. $CARDVAULT_CONFIG
//  2. ./cardvault.yaml
//  3. ~/.config/cardvault/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration
type Config struct {
	// Addr is the HTTP listen address
	Addr string `yaml:"addr" env:"CARDVAULT_ADDR"`

	// DBPath is the SQLite database path
	DBPath string `yaml:"db_path" env:"CARDVAULT_DB"`

	// UploadsDir is the directory for uploaded photos
	UploadsDir string `yaml:"uploads_dir" env:"CARDVAULT_UPLOADS"`

	// Seed inserts sample contacts when the database is empty
	Seed bool `yaml:"seed" env:"CARDVAULT_SEED"`
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Addr:       ":8080",
		DBPath:     "./cardvault.db",
		UploadsDir: "./uploads",
	}
}

// Load finds and loads the config file, applies environment overrides,
// and returns the effective configuration plus the file path used ("" if
// running on defaults).
func Load() (*Config, string, error) {
	cfg := DefaultConfig()

	path := FindConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
		cfg.applyDefaults()
	}

	if err := env.Parse(cfg); err != nil {
		return nil, path, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, path, nil
}

// FindConfigPath returns the first existing config file path, or ""
func FindConfigPath() string {
	if p := os.Getenv("CARDVAULT_CONFIG"); p != "" {
		return p
	}

	candidates := []string{"./cardvault.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "cardvault", "config.yaml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "./cardvault.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "./uploads"
	}
}
