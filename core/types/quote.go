package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteLineItem pairs a line request with its priced result
type QuoteLineItem struct {
	Request   PricingRequest   `json:"request"`
	Breakdown PricingBreakdown `json:"breakdown"`
}

// ProjectQuote is an immutable multi-equipment quote. A change requires a new quote.
type ProjectQuote struct {
	QuoteID string `json:"quote_id"`

	Project    ProjectParams `json:"project"`
	EndDate    time.Time     `json:"end_date"`
	ValidUntil time.Time     `json:"valid_until"`

	// LineItems preserves the caller-supplied order
	LineItems []QuoteLineItem `json:"line_items"`

	Summary  CostSummary     `json:"cost_summary"`
	Payment  PaymentSchedule `json:"payment_schedule"`
	Terms    QuoteTerms      `json:"quote_terms"`
	Currency Currency        `json:"currency"`
}

// CostSummary holds project-level totals
type CostSummary struct {
	// EquipmentTotal is the sum of the tax-inclusive line totals
	EquipmentTotal decimal.Decimal `json:"equipment_total"`

	ManagementFee decimal.Decimal `json:"management_fee"`
	Insurance     decimal.Decimal `json:"insurance"`
	SitePrep      decimal.Decimal `json:"site_prep"`
	PermitFee     decimal.Decimal `json:"permit_fee"`
	RushSurcharge decimal.Decimal `json:"rush_surcharge"`

	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// PaymentSchedule splits the grand total into deposit and balance.
// Deposit + Balance == grand total exactly.
type PaymentSchedule struct {
	Deposit           decimal.Decimal `json:"deposit"`
	DepositPercentage decimal.Decimal `json:"deposit_percentage"`
	Balance           decimal.Decimal `json:"balance"`
}

// QuoteTerms are the commercial conditions attached to every quote
type QuoteTerms struct {
	PaymentTerms       string `json:"payment_terms"`
	ValidityDays       int    `json:"validity_days"`
	Warranty           string `json:"warranty"`
	CancellationPolicy string `json:"cancellation_policy"`
	WeatherPolicy      string `json:"weather_policy"`
}

// HasEstimates reports whether any line was priced from the default tier
func (q *ProjectQuote) HasEstimates() bool {
	for i := range q.LineItems {
		if q.LineItems[i].Breakdown.Tier.Unmatched {
			return true
		}
	}
	return false
}
