package types

import "github.com/shopspring/decimal"

// PricingBreakdown is the priced result of one equipment line.
// All monetary fields are rounded to MoneyPlaces and satisfy
//
//	Subtotal == EquipmentCost + OperatorCost + DeliveryCost + SurchargeCost - DiscountAmount
//	Total    == Subtotal + TaxAmount
type PricingBreakdown struct {
	// Tier is the resolved rate tier, including overrides actually applied
	Tier ResolvedTier `json:"tier"`

	RentalDays           int             `json:"rental_days"`
	ShiftType            ShiftType       `json:"shift_type"`
	ShiftMultiplier      decimal.Decimal `json:"shift_multiplier"`
	Complexity           Complexity      `json:"complexity"`
	ComplexityMultiplier decimal.Decimal `json:"complexity_multiplier"`

	EquipmentCost decimal.Decimal `json:"equipment_cost"`
	OperatorCost  decimal.Decimal `json:"operator_cost"`
	DeliveryCost  decimal.Decimal `json:"delivery_cost"`
	SurchargeCost decimal.Decimal `json:"surcharge_cost"`

	// Surcharges itemizes SurchargeCost by matched keyword
	Surcharges []SurchargeItem `json:"surcharges,omitempty"`

	// DiscountRate is the volume discount as a fraction (0.05 for 5%)
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
	DailyAverage decimal.Decimal `json:"daily_average"`

	Currency Currency `json:"currency"`

	// Lineage records how each figure was derived
	Lineage []string `json:"lineage,omitempty"`
}

// SurchargeItem is one recognized special-requirement keyword and its fixed amount
type SurchargeItem struct {
	Keyword string          `json:"keyword"`
	Amount  decimal.Decimal `json:"amount"`
}

// Unmatched reports whether the line was priced from the default tier
func (b *PricingBreakdown) Unmatched() bool {
	return b.Tier.Unmatched
}
