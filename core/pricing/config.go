// Package pricing - Line pricing calculator
// Turns one equipment rental request into a tax-inclusive cost breakdown.
package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// VolumeDiscount applies Rate to the shift-adjusted equipment cost when the
// rental lasts at least MinDays
type VolumeDiscount struct {
	MinDays int             `json:"min_days"`
	Rate    decimal.Decimal `json:"rate"`
}

// Surcharge is a fixed amount added when Keyword occurs in a special requirement
type Surcharge struct {
	Keyword string          `json:"keyword"`
	Amount  decimal.Decimal `json:"amount"`
}

// Config holds the line-level rates
type Config struct {
	// TaxRate is applied to the line subtotal (0.18 = 18%)
	TaxRate decimal.Decimal `json:"tax_rate"`

	// MinimumDeliveryFee is charged for any non-zero delivery distance
	MinimumDeliveryFee decimal.Decimal `json:"minimum_delivery_fee"`

	// PerKmRate is the delivery rate per kilometre
	PerKmRate decimal.Decimal `json:"per_km_rate"`

	// LongHaulThresholdKm is the distance beyond which LongHaulSurcharge is added
	LongHaulThresholdKm decimal.Decimal `json:"long_haul_threshold_km"`

	// LongHaulSurcharge is a flat amount added to delivery for long hauls
	LongHaulSurcharge decimal.Decimal `json:"long_haul_surcharge"`

	// VolumeDiscounts are duration thresholds; only the highest qualifying one applies
	VolumeDiscounts []VolumeDiscount `json:"volume_discounts"`

	// Surcharges are special-requirement keywords, matched in this order
	Surcharges []Surcharge `json:"surcharges"`

	// Currency labels emitted amounts
	Currency types.Currency `json:"currency"`
}

// DefaultConfig returns the standard rate card settings (INR, 18% GST)
func DefaultConfig() Config {
	return Config{
		TaxRate:             decimal.RequireFromString("0.18"),
		MinimumDeliveryFee:  decimal.NewFromInt(15000),
		PerKmRate:           decimal.NewFromInt(350),
		LongHaulThresholdKm: decimal.NewFromInt(160),
		LongHaulSurcharge:   decimal.NewFromInt(40000),
		VolumeDiscounts: []VolumeDiscount{
			{MinDays: 30, Rate: decimal.RequireFromString("0.15")},
			{MinDays: 14, Rate: decimal.RequireFromString("0.10")},
			{MinDays: 7, Rate: decimal.RequireFromString("0.05")},
		},
		Surcharges: []Surcharge{
			{Keyword: "night", Amount: decimal.NewFromInt(40000)},
			{Keyword: "weekend", Amount: decimal.NewFromInt(25000)},
			{Keyword: "crane pad", Amount: decimal.NewFromInt(65000)},
			{Keyword: "rigging", Amount: decimal.NewFromInt(32000)},
			{Keyword: "assembly", Amount: decimal.NewFromInt(50000)},
			{Keyword: "disassembly", Amount: decimal.NewFromInt(32000)},
			{Keyword: "permit", Amount: decimal.NewFromInt(20000)},
		},
		Currency: types.CurrencyINR,
	}
}

// Validate checks that every rate is usable
func (c Config) Validate() error {
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.Configf("tax_rate must be within [0, 1], got %s", c.TaxRate)
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"minimum_delivery_fee", c.MinimumDeliveryFee},
		{"per_km_rate", c.PerKmRate},
		{"long_haul_threshold_km", c.LongHaulThresholdKm},
		{"long_haul_surcharge", c.LongHaulSurcharge},
	} {
		if f.value.IsNegative() {
			return errors.Configf("%s must be non-negative, got %s", f.name, f.value)
		}
	}

	seenDays := make(map[int]bool)
	for _, d := range c.VolumeDiscounts {
		if d.MinDays < 1 {
			return errors.Configf("volume discount min_days must be positive, got %d", d.MinDays)
		}
		if d.Rate.IsNegative() || d.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return errors.Configf("volume discount rate must be within [0, 1], got %s", d.Rate)
		}
		if seenDays[d.MinDays] {
			return errors.Configf("duplicate volume discount threshold %d", d.MinDays)
		}
		seenDays[d.MinDays] = true
	}

	seenKeywords := make(map[string]bool)
	for _, s := range c.Surcharges {
		kw := strings.ToLower(strings.TrimSpace(s.Keyword))
		if kw == "" {
			return errors.Config("surcharge keyword must be non-empty")
		}
		if s.Amount.IsNegative() {
			return errors.Configf("surcharge %q must be non-negative, got %s", kw, s.Amount)
		}
		if seenKeywords[kw] {
			return errors.Configf("duplicate surcharge keyword %q", kw)
		}
		seenKeywords[kw] = true
	}
	return nil
}

// normalized returns a copy with discounts sorted by descending threshold and
// surcharge keywords lowercased. Surcharge order is preserved.
func (c Config) normalized() Config {
	out := c
	out.VolumeDiscounts = append([]VolumeDiscount(nil), c.VolumeDiscounts...)
	sort.SliceStable(out.VolumeDiscounts, func(i, j int) bool {
		return out.VolumeDiscounts[i].MinDays > out.VolumeDiscounts[j].MinDays
	})
	out.Surcharges = make([]Surcharge, len(c.Surcharges))
	for i, s := range c.Surcharges {
		out.Surcharges[i] = Surcharge{
			Keyword: strings.ToLower(strings.TrimSpace(s.Keyword)),
			Amount:  s.Amount,
		}
	}
	if out.Currency == "" {
		out.Currency = types.CurrencyINR
	}
	return out
}
