package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTier is an immutable catalog entry for one equipment variant
type RateTier struct {
	// Category is the equipment family (e.g., "mobile crane")
	Category string `json:"category"`

	// Variant is the size or model within the category (e.g., "50-ton")
	Variant string `json:"variant"`

	// DailyRate is the equipment rate per rental day
	DailyRate decimal.Decimal `json:"daily_rate"`

	// HourlyRate is the equipment rate per hour
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	// OperatorDailyRate is the certified operator rate per rental day
	OperatorDailyRate decimal.Decimal `json:"operator_daily_rate"`
}

// Label returns the customer-facing name of the tier, e.g. "mobile crane (50-ton)"
func (t RateTier) Label() string {
	if t.Variant == "" {
		return t.Category
	}
	return fmt.Sprintf("%s (%s)", t.Category, t.Variant)
}

// ResolvedTier is the outcome of resolving a free-text description
type ResolvedTier struct {
	RateTier

	// Match is the label shown to the customer. For unmatched descriptions
	// it echoes the description itself.
	Match string `json:"match"`

	// Unmatched is set when the default tier was used; the price is an estimate only
	Unmatched bool `json:"unmatched"`
}
