// Package output provides output formatting interfaces.
// This package produces human and machine-readable renderings of
// line breakdowns and project quotes.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats in display order
var Formats = []Format{FormatCLI, FormatJSON, FormatMarkdown}

// ParseFormat maps a flag value to a Format. "md" and "table" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "table":
		return FormatCLI, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", errors.Validation("format", "unsupported output format %q (want one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderBreakdown writes a single priced line
	RenderBreakdown(w io.Writer, b *types.PricingBreakdown) error

	// RenderQuote writes a project quote
	RenderQuote(w io.Writer, q *types.ProjectQuote) error

	// RenderTiers writes a catalog listing
	RenderTiers(w io.Writer, tiers []types.RateTier) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry with the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(NewCLIFormatter())
	r.Register(NewJSONFormatter())
	r.Register(NewMarkdownFormatter())
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// Lookup parses a format name and returns its formatter
func (r *Registry) Lookup(name string) (Formatter, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	f, ok := r.Get(format)
	if !ok {
		return nil, errors.Validation("format", "no formatter registered for %q", format)
	}
	return f, nil
}

// Money renders an amount with its currency, e.g. "INR 2,360,000.00"
func Money(amount decimal.Decimal, currency types.Currency) string {
	s := groupThousands(types.RoundMoney(amount).StringFixed(types.MoneyPlaces))
	if currency == "" {
		return s
	}
	return fmt.Sprintf("%s %s", currency, s)
}

// PercentLabel renders a fractional rate as "18%"
func PercentLabel(rate decimal.Decimal) string {
	return types.Percent(rate).String() + "%"
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
