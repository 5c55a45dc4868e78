// Package engine provides the primary API for equipment pricing.
// CLI and any other surface are thin wrappers around this engine.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"equipment-quote/core/catalog"
	"equipment-quote/core/pricing"
	"equipment-quote/core/quote"
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
	"equipment-quote/internal/logging"
)

// Config is the complete engine configuration. It is supplied once at
// construction; there is no global engine state.
type Config struct {
	// Catalog is the rate catalog; nil selects catalog.Default()
	Catalog *catalog.Catalog `json:"-"`

	TaxRate             decimal.Decimal `json:"tax_rate"`
	ProjectTaxRate      decimal.Decimal `json:"project_tax_rate"`
	DepositPercentage   decimal.Decimal `json:"deposit_percentage"`
	MinimumDeliveryFee  decimal.Decimal `json:"minimum_delivery_fee"`
	PerKmRate           decimal.Decimal `json:"per_km_rate"`
	LongHaulThresholdKm decimal.Decimal `json:"long_haul_threshold_km"`
	LongHaulSurcharge   decimal.Decimal `json:"long_haul_surcharge"`

	ManagementFeeRate decimal.Decimal `json:"management_fee_rate"`
	InsuranceRate     decimal.Decimal `json:"insurance_rate"`
	SitePrepFee       decimal.Decimal `json:"site_prep_fee"`
	SitePrepMinDays   int             `json:"site_prep_min_days"`
	PermitFee         decimal.Decimal `json:"permit_fee"`
	RushSurchargeRate decimal.Decimal `json:"rush_surcharge_rate"`
	QuoteValidityDays int             `json:"quote_validity_days"`

	VolumeDiscounts []pricing.VolumeDiscount `json:"volume_discounts"`
	Surcharges      []pricing.Surcharge      `json:"surcharges"`

	Currency types.Currency `json:"currency"`
}

// DefaultConfig returns the standard configuration with the built-in catalog
func DefaultConfig() Config {
	line := pricing.DefaultConfig()
	project := quote.DefaultConfig()
	return Config{
		Catalog:             catalog.Default(),
		TaxRate:             line.TaxRate,
		ProjectTaxRate:      project.ProjectTaxRate,
		DepositPercentage:   project.DepositPercentage,
		MinimumDeliveryFee:  line.MinimumDeliveryFee,
		PerKmRate:           line.PerKmRate,
		LongHaulThresholdKm: line.LongHaulThresholdKm,
		LongHaulSurcharge:   line.LongHaulSurcharge,
		ManagementFeeRate:   project.ManagementFeeRate,
		InsuranceRate:       project.InsuranceRate,
		SitePrepFee:         project.SitePrepFee,
		SitePrepMinDays:     project.SitePrepMinDays,
		PermitFee:           project.PermitFee,
		RushSurchargeRate:   project.RushSurchargeRate,
		QuoteValidityDays:   project.QuoteValidityDays,
		VolumeDiscounts:     line.VolumeDiscounts,
		Surcharges:          line.Surcharges,
		Currency:            line.Currency,
	}
}

// LineConfig extracts the line calculator's settings
func (c Config) LineConfig() pricing.Config {
	return pricing.Config{
		TaxRate:             c.TaxRate,
		MinimumDeliveryFee:  c.MinimumDeliveryFee,
		PerKmRate:           c.PerKmRate,
		LongHaulThresholdKm: c.LongHaulThresholdKm,
		LongHaulSurcharge:   c.LongHaulSurcharge,
		VolumeDiscounts:     c.VolumeDiscounts,
		Surcharges:          c.Surcharges,
		Currency:            c.Currency,
	}
}

// ProjectConfig extracts the quote aggregator's settings
func (c Config) ProjectConfig() quote.Config {
	return quote.Config{
		ProjectTaxRate:    c.ProjectTaxRate,
		DepositPercentage: c.DepositPercentage,
		ManagementFeeRate: c.ManagementFeeRate,
		InsuranceRate:     c.InsuranceRate,
		SitePrepFee:       c.SitePrepFee,
		SitePrepMinDays:   c.SitePrepMinDays,
		PermitFee:         c.PermitFee,
		RushSurchargeRate: c.RushSurchargeRate,
		QuoteValidityDays: c.QuoteValidityDays,
		Currency:          c.Currency,
	}
}

// Engine composes the rate catalog, line calculator and quote aggregator
type Engine struct {
	catalog    *catalog.Catalog
	calculator *pricing.Calculator
	aggregator *quote.Aggregator
	logger     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger shared by all engine components
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrNop(l)
	}
}

// New builds an engine from cfg
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	e.catalog = cfg.Catalog
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}

	calc, err := pricing.NewCalculator(e.catalog, cfg.LineConfig(),
		pricing.WithLogger(e.logger.Named("pricing")))
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid line pricing configuration", err)
	}
	agg, err := quote.NewAggregator(calc, cfg.ProjectConfig(),
		quote.WithLogger(e.logger.Named("quote")))
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid project quote configuration", err)
	}
	e.calculator = calc
	e.aggregator = agg

	stats := e.catalog.Stats()
	e.logger.Debug("pricing engine ready",
		zap.Int("categories", stats.Categories),
		zap.Int("tiers", stats.Tiers),
		zap.String("tax_rate", cfg.TaxRate.String()),
		zap.String("project_tax_rate", cfg.ProjectTaxRate.String()),
	)
	return e, nil
}

// Resolve maps a free-text description to a rate tier
func (e *Engine) Resolve(description string) types.ResolvedTier {
	return e.catalog.Resolve(description)
}

// PriceLine prices a single equipment line
func (e *Engine) PriceLine(req types.PricingRequest) (*types.PricingBreakdown, error) {
	return e.calculator.PriceLine(req)
}

// BuildQuote prices a multi-equipment project
func (e *Engine) BuildQuote(lines []types.PricingRequest, params types.ProjectParams) (*types.ProjectQuote, error) {
	return e.aggregator.BuildQuote(lines, params)
}

// Catalog returns the engine's rate catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
