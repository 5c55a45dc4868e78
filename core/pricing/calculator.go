package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"equipment-quote/core/guards"
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
	"equipment-quote/internal/logging"
)

var (
	shiftMultipliers = map[types.ShiftType]decimal.Decimal{
		types.ShiftDay:           decimal.NewFromInt(1),
		types.ShiftNight:         decimal.RequireFromString("1.3"),
		types.ShiftRoundTheClock: decimal.RequireFromString("1.5"),
	}

	complexityMultipliers = map[types.Complexity]decimal.Decimal{
		types.ComplexityStandard:    decimal.NewFromInt(1),
		types.ComplexityComplex:     decimal.RequireFromString("1.15"),
		types.ComplexitySpecialized: decimal.RequireFromString("1.3"),
	}
)

// ShiftMultiplier returns the rate multiplier for a shift type
func ShiftMultiplier(s types.ShiftType) (decimal.Decimal, bool) {
	m, ok := shiftMultipliers[s]
	return m, ok
}

// ComplexityMultiplier returns the rate multiplier for a complexity grade
func ComplexityMultiplier(c types.Complexity) (decimal.Decimal, bool) {
	m, ok := complexityMultipliers[c]
	return m, ok
}

// Resolver maps an equipment description to a rate tier
type Resolver interface {
	Resolve(description string) types.ResolvedTier
}

// Calculator prices single equipment lines. It holds only read-only state and
// is safe for concurrent use.
type Calculator struct {
	resolver Resolver
	config   Config
	logger   *zap.Logger
}

// Option configures a Calculator
type Option func(*Calculator)

// WithLogger sets the calculator's logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) {
		c.logger = logging.OrNop(l)
	}
}

// NewCalculator creates a calculator over resolver with the given rates
func NewCalculator(resolver Resolver, cfg Config, opts ...Option) (*Calculator, error) {
	if resolver == nil {
		return nil, errors.Config("pricing calculator requires a rate resolver")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{
		resolver: resolver,
		config:   cfg.normalized(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the calculator's effective configuration
func (c *Calculator) Config() Config {
	return c.config
}

// PriceLine computes the full cost breakdown for one equipment line.
//
// Figures are computed at full precision. Each cost component is rounded once
// for output; the subtotal is the sum of the rounded components and the total
// is subtotal plus rounded tax, so the breakdown identities hold exactly.
func (c *Calculator) PriceLine(req types.PricingRequest) (*types.PricingBreakdown, error) {
	req = withDefaults(req)
	if err := Validate(req); err != nil {
		return nil, err
	}

	tier := c.resolver.Resolve(req.EquipmentDescription)
	tier.RateTier = applyOverrides(tier.RateTier, req.Overrides)

	days := decimal.NewFromInt(int64(req.RentalDays))
	// Validate has already rejected unknown enumerations.
	shiftM, _ := ShiftMultiplier(req.ShiftType)
	complexM, _ := ComplexityMultiplier(req.Complexity)

	var lineage []string

	// Discount is fixed against the shift-adjusted cost, before complexity.
	shiftedEquipment := tier.DailyRate.Mul(days).Mul(shiftM)
	discountRate := c.volumeDiscountRate(req.RentalDays)
	discount := shiftedEquipment.Mul(discountRate)

	equipment := shiftedEquipment.Mul(complexM)
	lineage = append(lineage, fmt.Sprintf("equipment = %s/day x %d days x %s shift x %s complexity",
		tier.DailyRate, req.RentalDays, shiftM, complexM))

	operator := decimal.Zero
	if req.OperatorRequired {
		operator = tier.OperatorDailyRate.Mul(days).Mul(shiftM).Mul(complexM)
		lineage = append(lineage, fmt.Sprintf("operator = %s/day x %d days x %s shift x %s complexity",
			tier.OperatorDailyRate, req.RentalDays, shiftM, complexM))
	}

	delivery := c.deliveryCost(req.DeliveryDistanceKm)
	if delivery.IsPositive() {
		lineage = append(lineage, fmt.Sprintf("delivery = max(%s, %s km x %s/km)%s",
			c.config.MinimumDeliveryFee, req.DeliveryDistanceKm, c.config.PerKmRate, c.longHaulNote(req.DeliveryDistanceKm)))
	}

	items := c.surcharges(req.SpecialRequirements)
	surcharge := decimal.Zero
	for _, item := range items {
		surcharge = surcharge.Add(item.Amount)
		lineage = append(lineage, fmt.Sprintf("surcharge %q = %s", item.Keyword, item.Amount))
	}

	if discountRate.IsPositive() {
		lineage = append(lineage, fmt.Sprintf("volume discount = %s%% of shift-adjusted equipment (%d+ days)",
			types.Percent(discountRate), c.volumeDiscountThreshold(req.RentalDays)))
	}

	b := &types.PricingBreakdown{
		Tier:                 tier,
		RentalDays:           req.RentalDays,
		ShiftType:            req.ShiftType,
		ShiftMultiplier:      shiftM,
		Complexity:           req.Complexity,
		ComplexityMultiplier: complexM,
		EquipmentCost:        types.RoundMoney(equipment),
		OperatorCost:         types.RoundMoney(operator),
		DeliveryCost:         types.RoundMoney(delivery),
		SurchargeCost:        types.RoundMoney(surcharge),
		Surcharges:           items,
		DiscountRate:         discountRate,
		DiscountAmount:       types.RoundMoney(discount),
		TaxRate:              c.config.TaxRate,
		Currency:             c.config.Currency,
	}

	b.Subtotal = b.EquipmentCost.
		Add(b.OperatorCost).
		Add(b.DeliveryCost).
		Add(b.SurchargeCost).
		Sub(b.DiscountAmount)
	b.TaxAmount = types.RoundMoney(b.Subtotal.Mul(c.config.TaxRate))
	b.Total = b.Subtotal.Add(b.TaxAmount)
	b.DailyAverage = types.RoundMoney(b.Total.Div(days))

	lineage = append(lineage, fmt.Sprintf("tax = subtotal x %s", c.config.TaxRate))
	b.Lineage = lineage
	guards.AssertBreakdown(b)

	c.logger.Debug("priced line",
		zap.String("match", tier.Match),
		zap.Bool("unmatched", tier.Unmatched),
		zap.Int("rental_days", req.RentalDays),
		zap.String("shift", string(req.ShiftType)),
		zap.String("complexity", string(req.Complexity)),
		zap.String("total", b.Total.StringFixed(types.MoneyPlaces)),
	)

	return b, nil
}

func (c *Calculator) volumeDiscountRate(days int) decimal.Decimal {
	for _, d := range c.config.VolumeDiscounts {
		if days >= d.MinDays {
			return d.Rate
		}
	}
	return decimal.Zero
}

func (c *Calculator) volumeDiscountThreshold(days int) int {
	for _, d := range c.config.VolumeDiscounts {
		if days >= d.MinDays {
			return d.MinDays
		}
	}
	return 0
}

func (c *Calculator) deliveryCost(km decimal.Decimal) decimal.Decimal {
	if !km.IsPositive() {
		return decimal.Zero
	}
	cost := decimal.Max(c.config.MinimumDeliveryFee, km.Mul(c.config.PerKmRate))
	if km.GreaterThan(c.config.LongHaulThresholdKm) {
		cost = cost.Add(c.config.LongHaulSurcharge)
	}
	return cost
}

func (c *Calculator) longHaulNote(km decimal.Decimal) string {
	if km.GreaterThan(c.config.LongHaulThresholdKm) {
		return fmt.Sprintf(" + %s long haul (> %s km)", c.config.LongHaulSurcharge, c.config.LongHaulThresholdKm)
	}
	return ""
}

// surcharges returns each configured keyword found in any requirement, once,
// in configuration order
func (c *Calculator) surcharges(requirements []string) []types.SurchargeItem {
	if len(requirements) == 0 {
		return nil
	}
	lowered := make([]string, len(requirements))
	for i, r := range requirements {
		lowered[i] = strings.ToLower(r)
	}

	var items []types.SurchargeItem
	for _, s := range c.config.Surcharges {
		for _, r := range lowered {
			if strings.Contains(r, s.Keyword) {
				items = append(items, types.SurchargeItem{Keyword: s.Keyword, Amount: s.Amount})
				break
			}
		}
	}
	return items
}

func applyOverrides(tier types.RateTier, o *types.RateOverrides) types.RateTier {
	if o == nil {
		return tier
	}
	if o.DailyRate != nil {
		tier.DailyRate = *o.DailyRate
	}
	if o.OperatorDailyRate != nil {
		tier.OperatorDailyRate = *o.OperatorDailyRate
	}
	return tier
}
