package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingRequest is the input for pricing one equipment line
type PricingRequest struct {
	// EquipmentDescription is free text such as "50-ton mobile crane"
	EquipmentDescription string `json:"equipment_description"`

	// RentalDays must be at least 1
	RentalDays int `json:"rental_days"`

	// ShiftType defaults to DAY in callers that accept partial input
	ShiftType ShiftType `json:"shift_type"`

	// OperatorRequired adds a certified operator per rental day
	OperatorRequired bool `json:"operator_required"`

	// DeliveryDistanceKm is the depot-to-site distance
	DeliveryDistanceKm decimal.Decimal `json:"delivery_distance_km"`

	// SpecialRequirements are free-text tokens scanned for surcharge keywords
	SpecialRequirements []string `json:"special_requirements,omitempty"`

	// Complexity grades the job
	Complexity Complexity `json:"complexity"`

	// Overrides replaces catalog rates with ones quoted for a concrete unit
	Overrides *RateOverrides `json:"overrides,omitempty"`
}

// RateOverrides carries rates supplied by the availability source. Nil fields keep the catalog rate.
type RateOverrides struct {
	DailyRate         *decimal.Decimal `json:"daily_rate,omitempty"`
	OperatorDailyRate *decimal.Decimal `json:"operator_daily_rate,omitempty"`
}

// ProjectParams describes the project a multi-equipment quote is for
type ProjectParams struct {
	Name         string    `json:"project_name"`
	Customer     string    `json:"customer_name"`
	Site         string    `json:"site_location"`
	Description  string    `json:"project_description,omitempty"`
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"project_duration_days"`

	// IncludePermits adds the flat permit-assistance fee
	IncludePermits bool `json:"include_permits"`

	// RushOrder marks expedited turnaround (under 48 hours notice)
	RushOrder bool `json:"rush_order"`

	// QuoteDate is the issue date; the validity window starts here
	QuoteDate time.Time `json:"quote_date"`
}
