package catalog

import (
	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
)

// Built-in rate card, in INR. Declaration order is significant.
var defaultRates = []struct {
	category string
	variant  string
	daily    int64
	hourly   int64
	operator int64
}{
	{"mobile crane", "25-ton", 120000, 15000, 8000},
	{"mobile crane", "50-ton", 200000, 25000, 10000},
	{"mobile crane", "100-ton", 350000, 44000, 12000},
	{"mobile crane", "130-ton", 450000, 56000, 15000},
	{"mobile crane", "150-ton", 550000, 69000, 18000},
	{"tower crane", "standard", 300000, 38000, 12000},
	{"tower crane", "heavy-duty", 450000, 56000, 15000},
	{"boom lift", "40ft", 80000, 10000, 6000},
	{"boom lift", "60ft", 120000, 15000, 7000},
	{"boom lift", "80ft", 180000, 23000, 8000},
	{"rough terrain crane", "30-ton", 150000, 19000, 9000},
	{"rough terrain crane", "40-ton", 180000, 23000, 10000},
}

const (
	defaultFallbackDaily    = 120000
	defaultFallbackOperator = 6500
)

// Default returns the built-in catalog
func Default() *Catalog {
	b := NewBuilder()
	for _, r := range defaultRates {
		b.Register(types.RateTier{
			Category:          r.category,
			Variant:           r.variant,
			DailyRate:         decimal.NewFromInt(r.daily),
			HourlyRate:        decimal.NewFromInt(r.hourly),
			OperatorDailyRate: decimal.NewFromInt(r.operator),
		})
	}
	b.Fallback(decimal.NewFromInt(defaultFallbackDaily), decimal.NewFromInt(defaultFallbackOperator))

	c, err := b.Build()
	if err != nil {
		panic("built-in rate catalog is invalid: " + err.Error())
	}
	return c
}
