// Package types defines the pricing engine's data model.
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// MoneyPlaces is the number of decimal places every emitted amount is rounded to
const MoneyPlaces int32 = 2

// Hundred is used to turn fractional rates into percentages
var Hundred = decimal.NewFromInt(100)

// RoundMoney rounds an amount to MoneyPlaces, half away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Percent renders a fractional rate (0.18) as a percentage (18)
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(Hundred)
}
