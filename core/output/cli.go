package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
)

const tableWidth = 73

// CLIFormatter renders boxed tables for terminals
type CLIFormatter struct {
	// ShowLineage appends the derivation of each figure below a breakdown
	ShowLineage bool
}

// NewCLIFormatter creates a CLI table formatter
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderBreakdown writes a single priced line
func (f *CLIFormatter) RenderBreakdown(w io.Writer, b *types.PricingBreakdown) error {
	t := &table{w: w}
	cur := b.Currency

	t.top()
	t.title("EQUIPMENT PRICING BREAKDOWN")
	t.sep()
	t.row("Equipment", b.Tier.Match)
	if b.Tier.Unmatched {
		t.row("  (no catalog match, default rates applied)", "")
	}
	t.row("Rental days", fmt.Sprintf("%d", b.RentalDays))
	t.row("Shift", fmt.Sprintf("%s x%s", b.ShiftType, b.ShiftMultiplier))
	t.row("Complexity", fmt.Sprintf("%s x%s", b.Complexity, b.ComplexityMultiplier))
	t.sep()
	t.row("Equipment cost", Money(b.EquipmentCost, cur))
	t.row("Operator cost", Money(b.OperatorCost, cur))
	t.row("Delivery cost", Money(b.DeliveryCost, cur))
	t.row("Special requirements", Money(b.SurchargeCost, cur))
	for _, s := range b.Surcharges {
		t.row("  └─ "+s.Keyword, Money(s.Amount, cur))
	}
	if b.DiscountAmount.IsPositive() {
		t.row(fmt.Sprintf("Volume discount (%s)", PercentLabel(b.DiscountRate)), "-"+Money(b.DiscountAmount, cur))
	}
	t.sep()
	t.row("Subtotal", Money(b.Subtotal, cur))
	t.row(fmt.Sprintf("Tax (%s)", PercentLabel(b.TaxRate)), Money(b.TaxAmount, cur))
	t.row("TOTAL", Money(b.Total, cur))
	t.row("Daily average", Money(b.DailyAverage, cur))
	t.bottom()

	if f.ShowLineage && len(b.Lineage) > 0 {
		t.printf("\nLineage:\n")
		for _, l := range b.Lineage {
			t.printf("  - %s\n", l)
		}
	}
	return t.err
}

// RenderQuote writes a project quote
func (f *CLIFormatter) RenderQuote(w io.Writer, q *types.ProjectQuote) error {
	t := &table{w: w}
	cur := q.Currency
	s := q.Summary

	t.top()
	t.title("PROJECT QUOTE")
	t.sep()
	t.row("Quote ID", q.QuoteID)
	if q.Project.Name != "" {
		t.row("Project", q.Project.Name)
	}
	if q.Project.Customer != "" {
		t.row("Customer", q.Project.Customer)
	}
	if q.Project.Site != "" {
		t.row("Site", q.Project.Site)
	}
	t.row("Period", period(q))
	if !q.ValidUntil.IsZero() {
		t.row("Valid until", q.ValidUntil.Format(dateLayout))
	}
	t.sep()
	for i, item := range q.LineItems {
		b := item.Breakdown
		label := fmt.Sprintf("%d. %s", i+1, b.Tier.Match)
		if b.Tier.Unmatched {
			label += " *"
		}
		t.row(label, Money(b.Total, cur))
		t.row(fmt.Sprintf("   └─ %d days, %s, %s", b.RentalDays, b.ShiftType, b.Complexity), "")
	}
	t.sep()
	t.row("Equipment total", Money(s.EquipmentTotal, cur))
	t.row("Project management", Money(s.ManagementFee, cur))
	t.row("Insurance", Money(s.Insurance, cur))
	optionalRow(t, "Site preparation", s.SitePrep, cur)
	optionalRow(t, "Permit assistance", s.PermitFee, cur)
	optionalRow(t, "Rush surcharge", s.RushSurcharge, cur)
	t.row("Subtotal", Money(s.Subtotal, cur))
	t.row(fmt.Sprintf("Tax (%s)", PercentLabel(s.TaxRate)), Money(s.TaxAmount, cur))
	t.row("GRAND TOTAL", Money(s.GrandTotal, cur))
	t.sep()
	t.row(fmt.Sprintf("Deposit (%s)", PercentLabel(q.Payment.DepositPercentage)), Money(q.Payment.Deposit, cur))
	t.row("Balance on completion", Money(q.Payment.Balance, cur))
	t.sep()
	t.title("TERMS")
	t.sep()
	for _, line := range termLines(q) {
		t.line(line)
	}
	t.bottom()

	if q.HasEstimates() {
		t.printf("\n* No catalog match; priced from default rates as an estimate.\n")
	}
	return t.err
}

// RenderTiers writes a catalog listing
func (f *CLIFormatter) RenderTiers(w io.Writer, tiers []types.RateTier) error {
	t := &table{w: w}
	t.top()
	t.title("RATE CATALOG")
	t.sep()
	t.printf("│ %-39s %15s %15s │\n", "Equipment", "Daily", "Operator/day")
	t.sep()
	for _, tier := range tiers {
		t.printf("│ %-39s %15s %15s │\n",
			truncate(tier.Label(), 39),
			Money(tier.DailyRate, ""),
			Money(tier.OperatorDailyRate, ""))
	}
	t.bottom()
	return t.err
}

const dateLayout = "2006-01-02"

// termLines lists the quote terms in display order, skipping blank ones
func termLines(q *types.ProjectQuote) []string {
	terms := q.Terms
	validity := fmt.Sprintf("Valid for %d days", terms.ValidityDays)
	if !q.ValidUntil.IsZero() {
		validity += " (until " + q.ValidUntil.Format(dateLayout) + ")"
	}
	var lines []string
	for _, l := range []string{terms.PaymentTerms, validity, terms.Warranty, terms.CancellationPolicy, terms.WeatherPolicy} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func period(q *types.ProjectQuote) string {
	return fmt.Sprintf("%s to %s (%d days)",
		q.Project.StartDate.Format(dateLayout),
		q.EndDate.Format(dateLayout),
		q.Project.DurationDays)
}

func optionalRow(t *table, label string, amount decimal.Decimal, cur types.Currency) {
	if amount.IsZero() {
		return
	}
	t.row(label, Money(amount, cur))
}

// table writes box-drawn rows and keeps the first write error
type table struct {
	w   io.Writer
	err error
}

func (t *table) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *table) rule(left, right string) {
	t.printf("%s%s%s\n", left, strings.Repeat("─", tableWidth), right)
}

func (t *table) top()    { t.rule("┌", "┐") }
func (t *table) sep()    { t.rule("├", "┤") }
func (t *table) bottom() { t.rule("└", "┘") }

func (t *table) title(s string) {
	inner := tableWidth - 2
	pad := (inner - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	t.printf("│ %-*s │\n", inner, strings.Repeat(" ", pad)+s)
}

func (t *table) line(s string) {
	t.printf("│ %-*s │\n", tableWidth-2, truncate(s, tableWidth-2))
}

func (t *table) row(label, value string) {
	t.printf("│ %-50s %20s │\n", truncate(label, 50), value)
}
