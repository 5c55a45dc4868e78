package pricing

import (
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// withDefaults fills unset enumerations: DAY shift, STANDARD complexity
func withDefaults(req types.PricingRequest) types.PricingRequest {
	if req.ShiftType == "" {
		req.ShiftType = types.ShiftDay
	}
	if req.Complexity == "" {
		req.Complexity = types.ComplexityStandard
	}
	return req
}

// Validate rejects malformed requests before any arithmetic.
// Unset shift type and complexity are reported as invalid; PriceLine fills
// them with defaults first.
func Validate(req types.PricingRequest) error {
	if req.RentalDays < 1 {
		return errors.Validation("rentalDays", "must be a positive integer, got %d", req.RentalDays)
	}
	if !req.ShiftType.Valid() {
		return errors.Validation("shiftType", "must be one of %v, got %q", types.ShiftTypes, req.ShiftType)
	}
	if !req.Complexity.Valid() {
		return errors.Validation("complexity", "must be one of %v, got %q", types.Complexities, req.Complexity)
	}
	if req.DeliveryDistanceKm.IsNegative() {
		return errors.Validation("deliveryDistanceKm", "must be non-negative, got %s", req.DeliveryDistanceKm)
	}
	if o := req.Overrides; o != nil {
		if o.DailyRate != nil && o.DailyRate.IsNegative() {
			return errors.Validation("overrides.dailyRate", "must be non-negative, got %s", *o.DailyRate)
		}
		if o.OperatorDailyRate != nil && o.OperatorDailyRate.IsNegative() {
			return errors.Validation("overrides.operatorDailyRate", "must be non-negative, got %s", *o.OperatorDailyRate)
		}
	}
	return nil
}
