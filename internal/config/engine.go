package config

import (
	"go.uber.org/zap"

	catalogHCL "equipment-quote/adapters/catalog/hcl"
	"equipment-quote/core/engine"
)

// EngineConfig returns the engine configuration with its catalog attached.
// The catalog is read from CatalogPath when set, otherwise the built-in one is used.
func (c *Config) EngineConfig(logger *zap.Logger) (engine.Config, error) {
	cfg := c.Engine
	if c.CatalogPath == "" {
		cfg.Catalog = nil
		return cfg, nil
	}

	cat, err := catalogHCL.NewLoader(catalogHCL.WithLogger(logger)).LoadFile(c.CatalogPath)
	if err != nil {
		return engine.Config{}, err
	}
	cfg.Catalog = cat
	return cfg, nil
}

// NewEngine builds an engine from the application configuration
func (c *Config) NewEngine(logger *zap.Logger) (*engine.Engine, error) {
	cfg, err := c.EngineConfig(logger)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, engine.WithLogger(logger))
}
