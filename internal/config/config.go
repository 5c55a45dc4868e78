// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"equipment-quote/core/engine"
	"equipment-quote/internal/errors"
	"equipment-quote/internal/logging"
)

// CurrentVersion is the configuration schema version written by Save
const CurrentVersion = "1.0"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains every pricing rate; the catalog is loaded separately
	Engine engine.Config `json:"engine"`

	// CatalogPath points at an HCL rate-card file; empty selects the built-in catalog
	CatalogPath string `json:"catalog_path,omitempty"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowLineage prints how each figure was derived
	ShowLineage bool `json:"show_lineage"`
}

// Default returns a default configuration
func Default() *Config {
	eng := engine.DefaultConfig()
	eng.Catalog = nil

	return &Config{
		Version: CurrentVersion,
		Engine:  eng,
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.quote-engine.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quote-engine.json"
	}
	return filepath.Join(home, ".quote-engine.json")
}

// Load loads configuration from a file. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read config %s", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "failed to parse config %s", path)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "failed to create %s", dir)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to encode config", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "failed to write config %s", path)
	}
	return nil
}
