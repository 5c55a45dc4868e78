// Package quote - Project quote aggregator
// Prices every equipment line of a project, adds project-level fees and
// surcharges, and splits the grand total into a payment schedule.
package quote

import (
	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// Config holds the project-level rates
type Config struct {
	// ProjectTaxRate is applied to the project subtotal, independently of line tax
	ProjectTaxRate decimal.Decimal `json:"project_tax_rate"`

	// DepositPercentage is the share of the grand total due up front (0.5 = 50%)
	DepositPercentage decimal.Decimal `json:"deposit_percentage"`

	// ManagementFeeRate is a fraction of the equipment total
	ManagementFeeRate decimal.Decimal `json:"management_fee_rate"`

	// InsuranceRate is a fraction of the equipment total
	InsuranceRate decimal.Decimal `json:"insurance_rate"`

	// SitePrepFee is charged when the project lasts longer than SitePrepMinDays
	SitePrepFee     decimal.Decimal `json:"site_prep_fee"`
	SitePrepMinDays int             `json:"site_prep_min_days"`

	// PermitFee is charged when permit assistance is requested
	PermitFee decimal.Decimal `json:"permit_fee"`

	// RushSurchargeRate is a fraction of the equipment total, charged for rush orders
	RushSurchargeRate decimal.Decimal `json:"rush_surcharge_rate"`

	// QuoteValidityDays is how long the quote stands after its quote date
	QuoteValidityDays int `json:"quote_validity_days"`

	// Currency labels emitted amounts
	Currency types.Currency `json:"currency"`
}

// DefaultConfig returns the standard project terms
func DefaultConfig() Config {
	return Config{
		ProjectTaxRate:    decimal.RequireFromString("0.08"),
		DepositPercentage: decimal.RequireFromString("0.5"),
		ManagementFeeRate: decimal.RequireFromString("0.08"),
		InsuranceRate:     decimal.RequireFromString("0.03"),
		SitePrepFee:       decimal.NewFromInt(1500),
		SitePrepMinDays:   7,
		PermitFee:         decimal.NewFromInt(2500),
		RushSurchargeRate: decimal.RequireFromString("0.20"),
		QuoteValidityDays: 30,
		Currency:          types.CurrencyINR,
	}
}

// Validate checks that every rate is usable
func (c Config) Validate() error {
	one := decimal.NewFromInt(1)
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"project_tax_rate", c.ProjectTaxRate},
		{"management_fee_rate", c.ManagementFeeRate},
		{"insurance_rate", c.InsuranceRate},
		{"rush_surcharge_rate", c.RushSurchargeRate},
		{"deposit_percentage", c.DepositPercentage},
	} {
		if f.value.IsNegative() || f.value.GreaterThan(one) {
			return errors.Configf("%s must be within [0, 1], got %s", f.name, f.value)
		}
	}
	if c.SitePrepFee.IsNegative() {
		return errors.Configf("site_prep_fee must be non-negative, got %s", c.SitePrepFee)
	}
	if c.PermitFee.IsNegative() {
		return errors.Configf("permit_fee must be non-negative, got %s", c.PermitFee)
	}
	if c.SitePrepMinDays < 0 {
		return errors.Configf("site_prep_min_days must be non-negative, got %d", c.SitePrepMinDays)
	}
	if c.QuoteValidityDays < 0 {
		return errors.Configf("quote_validity_days must be non-negative, got %d", c.QuoteValidityDays)
	}
	return nil
}
