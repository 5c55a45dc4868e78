package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// Environment variables that override file configuration
const (
	EnvTaxRate           = "QUOTE_TAX_RATE"
	EnvProjectTaxRate    = "QUOTE_PROJECT_TAX_RATE"
	EnvDepositPercentage = "QUOTE_DEPOSIT_PERCENTAGE"
	EnvCatalogPath       = "QUOTE_CATALOG_PATH"
	EnvLogLevel          = "QUOTE_LOG_LEVEL"
	EnvOutputFormat      = "QUOTE_OUTPUT_FORMAT"
	EnvCurrency          = "QUOTE_CURRENCY"
)

// EnvKeys lists every recognized variable
var EnvKeys = []string{
	EnvTaxRate,
	EnvProjectTaxRate,
	EnvDepositPercentage,
	EnvCatalogPath,
	EnvLogLevel,
	EnvOutputFormat,
	EnvCurrency,
}

// ApplyEnv overlays QUOTE_* settings onto c. Values come from envFile (a
// dotenv file, optional; a missing file is ignored) and then from the process
// environment, which wins.
func (c *Config) ApplyEnv(envFile string) error {
	vars := make(map[string]string)
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(errors.TypeConfig, err, "failed loading env file %s", envFile)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range EnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	return c.applyVars(vars)
}

func (c *Config) applyVars(vars map[string]string) error {
	rates := []struct {
		key    string
		target *decimal.Decimal
	}{
		{EnvTaxRate, &c.Engine.TaxRate},
		{EnvProjectTaxRate, &c.Engine.ProjectTaxRate},
		{EnvDepositPercentage, &c.Engine.DepositPercentage},
	}
	for _, r := range rates {
		raw, ok := vars[r.key]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s must be a decimal rate, got %q", r.key, raw)
		}
		*r.target = d
	}

	if v := strings.TrimSpace(vars[EnvCatalogPath]); v != "" {
		c.CatalogPath = v
	}
	if v := strings.TrimSpace(vars[EnvLogLevel]); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(vars[EnvOutputFormat]); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := strings.TrimSpace(vars[EnvCurrency]); v != "" {
		c.Engine.Currency = types.Currency(strings.ToUpper(v))
	}
	return nil
}
