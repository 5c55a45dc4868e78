package output

import (
	"fmt"
	"io"
	"strings"

	"equipment-quote/core/types"
)

// MarkdownFormatter renders markdown reports suitable for email or tickets
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// RenderBreakdown writes a single priced line
func (f *MarkdownFormatter) RenderBreakdown(w io.Writer, b *types.PricingBreakdown) error {
	var sb strings.Builder
	cur := b.Currency

	fmt.Fprintf(&sb, "## %s\n\n", b.Tier.Match)
	if b.Tier.Unmatched {
		sb.WriteString("> **Estimate:** no catalog match, default rates applied.\n\n")
	}
	fmt.Fprintf(&sb, "%d days, %s shift, %s complexity\n\n", b.RentalDays, b.ShiftType, b.Complexity)
	sb.WriteString("| Item | Amount |\n|---|---:|\n")
	mdRow(&sb, "Equipment", Money(b.EquipmentCost, cur))
	mdRow(&sb, "Operator", Money(b.OperatorCost, cur))
	mdRow(&sb, "Delivery", Money(b.DeliveryCost, cur))
	for _, s := range b.Surcharges {
		mdRow(&sb, "Special: "+s.Keyword, Money(s.Amount, cur))
	}
	if b.DiscountAmount.IsPositive() {
		mdRow(&sb, fmt.Sprintf("Volume discount (%s)", PercentLabel(b.DiscountRate)), "-"+Money(b.DiscountAmount, cur))
	}
	mdRow(&sb, "Subtotal", Money(b.Subtotal, cur))
	mdRow(&sb, fmt.Sprintf("Tax (%s)", PercentLabel(b.TaxRate)), Money(b.TaxAmount, cur))
	mdRow(&sb, "**Total**", "**"+Money(b.Total, cur)+"**")
	mdRow(&sb, "Daily average", Money(b.DailyAverage, cur))

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderQuote writes a project quote
func (f *MarkdownFormatter) RenderQuote(w io.Writer, q *types.ProjectQuote) error {
	var sb strings.Builder
	cur := q.Currency
	s := q.Summary

	title := q.Project.Name
	if title == "" {
		title = "Project"
	}
	fmt.Fprintf(&sb, "# Quote %s: %s\n\n", q.QuoteID, title)
	if q.Project.Customer != "" {
		fmt.Fprintf(&sb, "- **Customer:** %s\n", q.Project.Customer)
	}
	if q.Project.Site != "" {
		fmt.Fprintf(&sb, "- **Site:** %s\n", q.Project.Site)
	}
	fmt.Fprintf(&sb, "- **Period:** %s\n", period(q))
	if !q.ValidUntil.IsZero() {
		fmt.Fprintf(&sb, "- **Valid until:** %s\n", q.ValidUntil.Format(dateLayout))
	}

	sb.WriteString("\n## Equipment\n\n| # | Equipment | Days | Shift | Total |\n|---:|---|---:|---|---:|\n")
	for i, item := range q.LineItems {
		b := item.Breakdown
		label := b.Tier.Match
		if b.Tier.Unmatched {
			label += " (estimate)"
		}
		fmt.Fprintf(&sb, "| %d | %s | %d | %s | %s |\n", i+1, label, b.RentalDays, b.ShiftType, Money(b.Total, cur))
	}

	sb.WriteString("\n## Summary\n\n| Item | Amount |\n|---|---:|\n")
	mdRow(&sb, "Equipment total", Money(s.EquipmentTotal, cur))
	mdRow(&sb, "Project management", Money(s.ManagementFee, cur))
	mdRow(&sb, "Insurance", Money(s.Insurance, cur))
	if !s.SitePrep.IsZero() {
		mdRow(&sb, "Site preparation", Money(s.SitePrep, cur))
	}
	if !s.PermitFee.IsZero() {
		mdRow(&sb, "Permit assistance", Money(s.PermitFee, cur))
	}
	if !s.RushSurcharge.IsZero() {
		mdRow(&sb, "Rush surcharge", Money(s.RushSurcharge, cur))
	}
	mdRow(&sb, "Subtotal", Money(s.Subtotal, cur))
	mdRow(&sb, fmt.Sprintf("Tax (%s)", PercentLabel(s.TaxRate)), Money(s.TaxAmount, cur))
	mdRow(&sb, "**Grand total**", "**"+Money(s.GrandTotal, cur)+"**")

	sb.WriteString("\n## Payment\n\n")
	fmt.Fprintf(&sb, "- Deposit (%s): %s\n", PercentLabel(q.Payment.DepositPercentage), Money(q.Payment.Deposit, cur))
	fmt.Fprintf(&sb, "- Balance on completion: %s\n", Money(q.Payment.Balance, cur))

	sb.WriteString("\n## Terms\n\n")
	for _, line := range termLines(q) {
		fmt.Fprintf(&sb, "- %s\n", line)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderTiers writes a catalog listing
func (f *MarkdownFormatter) RenderTiers(w io.Writer, tiers []types.RateTier) error {
	var sb strings.Builder
	sb.WriteString("| Category | Variant | Daily | Hourly | Operator/day |\n|---|---|---:|---:|---:|\n")
	for _, t := range tiers {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			t.Category, t.Variant,
			Money(t.DailyRate, ""), Money(t.HourlyRate, ""), Money(t.OperatorDailyRate, ""))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func mdRow(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "| %s | %s |\n", label, value)
}
