package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"equipment-quote/core/determinism"
	"equipment-quote/core/guards"
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
	"equipment-quote/internal/logging"
)

// LinePricer prices one equipment line
type LinePricer interface {
	PriceLine(req types.PricingRequest) (*types.PricingBreakdown, error)
}

// Aggregator builds project quotes. It holds only read-only state and is
// safe for concurrent use.
type Aggregator struct {
	pricer LinePricer
	config Config
	ids    *determinism.IDGenerator
	logger *zap.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithLogger sets the aggregator's logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logging.OrNop(l)
	}
}

// NewAggregator creates an aggregator that prices lines with pricer
func NewAggregator(pricer LinePricer, cfg Config, opts ...Option) (*Aggregator, error) {
	if pricer == nil {
		return nil, errors.Config("quote aggregator requires a line pricer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Currency == "" {
		cfg.Currency = types.CurrencyINR
	}
	a := &Aggregator{
		pricer: pricer,
		config: cfg,
		ids:    determinism.NewIDGenerator("equipment-quote/project-quote"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the aggregator's configuration
func (a *Aggregator) Config() Config {
	return a.config
}

// BuildQuote prices each line independently and aggregates the project quote.
// A line with zero rental days is rented for the whole project duration.
// Line validation failures are reported with an indexed field, e.g. "lines[1].rentalDays".
func (a *Aggregator) BuildQuote(lines []types.PricingRequest, params types.ProjectParams) (*types.ProjectQuote, error) {
	if len(lines) == 0 {
		return nil, errors.Validation("lines", "at least one equipment line is required")
	}
	if params.DurationDays < 1 {
		return nil, errors.Validation("projectDurationDays", "must be a positive integer, got %d", params.DurationDays)
	}
	if params.StartDate.IsZero() {
		return nil, errors.Validation("startDate", "is required")
	}

	items := make([]types.QuoteLineItem, 0, len(lines))
	equipmentTotal := decimal.Zero
	for i, req := range lines {
		if req.RentalDays == 0 {
			req.RentalDays = params.DurationDays
		}
		b, err := a.pricer.PriceLine(req)
		if err != nil {
			return nil, errors.WithFieldPrefix(err, fmt.Sprintf("lines[%d]", i))
		}
		items = append(items, types.QuoteLineItem{Request: req, Breakdown: *b})
		equipmentTotal = equipmentTotal.Add(b.Total)
	}

	summary := a.summarize(equipmentTotal, params)
	payment := a.schedule(summary.GrandTotal)

	id, err := a.quoteID(items, params)
	if err != nil {
		return nil, err
	}

	q := &types.ProjectQuote{
		QuoteID:   id,
		Project:   params,
		EndDate:   params.StartDate.AddDate(0, 0, params.DurationDays-1),
		LineItems: items,
		Summary:   summary,
		Payment:   payment,
		Terms:     a.terms(),
		Currency:  a.config.Currency,
	}
	if !params.QuoteDate.IsZero() {
		q.ValidUntil = params.QuoteDate.AddDate(0, 0, a.config.QuoteValidityDays)
	}
	guards.AssertQuote(q)

	a.logger.Info("built project quote",
		zap.String("quote_id", q.QuoteID),
		zap.String("project", params.Name),
		zap.Int("lines", len(items)),
		zap.Bool("rush_order", params.RushOrder),
		zap.Bool("estimates", q.HasEstimates()),
		zap.String("grand_total", summary.GrandTotal.StringFixed(types.MoneyPlaces)),
	)

	return q, nil
}

func (a *Aggregator) summarize(equipmentTotal decimal.Decimal, params types.ProjectParams) types.CostSummary {
	s := types.CostSummary{
		EquipmentTotal: equipmentTotal,
		ManagementFee:  types.RoundMoney(equipmentTotal.Mul(a.config.ManagementFeeRate)),
		Insurance:      types.RoundMoney(equipmentTotal.Mul(a.config.InsuranceRate)),
		SitePrep:       decimal.Zero,
		PermitFee:      decimal.Zero,
		RushSurcharge:  decimal.Zero,
		TaxRate:        a.config.ProjectTaxRate,
	}
	if params.DurationDays > a.config.SitePrepMinDays {
		s.SitePrep = types.RoundMoney(a.config.SitePrepFee)
	}
	if params.IncludePermits {
		s.PermitFee = types.RoundMoney(a.config.PermitFee)
	}
	if params.RushOrder {
		s.RushSurcharge = types.RoundMoney(equipmentTotal.Mul(a.config.RushSurchargeRate))
	}

	s.Subtotal = s.EquipmentTotal.
		Add(s.ManagementFee).
		Add(s.Insurance).
		Add(s.SitePrep).
		Add(s.PermitFee).
		Add(s.RushSurcharge)
	s.TaxAmount = types.RoundMoney(s.Subtotal.Mul(a.config.ProjectTaxRate))
	s.GrandTotal = s.Subtotal.Add(s.TaxAmount)
	return s
}

func (a *Aggregator) terms() types.QuoteTerms {
	return types.QuoteTerms{
		PaymentTerms:       "Deposit due upon contract signing, balance due upon project completion",
		ValidityDays:       a.config.QuoteValidityDays,
		Warranty:           "Equipment performance guaranteed",
		CancellationPolicy: "72-hour notice required for cancellation",
		WeatherPolicy:      "Weather delays do not incur additional charges",
	}
}

func (a *Aggregator) schedule(grandTotal decimal.Decimal) types.PaymentSchedule {
	deposit := types.RoundMoney(grandTotal.Mul(a.config.DepositPercentage))
	return types.PaymentSchedule{
		Deposit:           deposit,
		DepositPercentage: a.config.DepositPercentage,
		Balance:           grandTotal.Sub(deposit),
	}
}

// quoteID derives the ID from the priced inputs so equal inputs give equal quotes
func (a *Aggregator) quoteID(items []types.QuoteLineItem, params types.ProjectParams) (string, error) {
	requests := make([]types.PricingRequest, len(items))
	for i := range items {
		requests[i] = items[i].Request
	}
	h, err := determinism.HashJSON(struct {
		Lines   []types.PricingRequest `json:"lines"`
		Project types.ProjectParams    `json:"project"`
	}{requests, params})
	if err != nil {
		return "", errors.Internal("failed to hash quote inputs", err)
	}
	return string(a.ids.Short("QUOTE_", 8, h.Hex())), nil
}
