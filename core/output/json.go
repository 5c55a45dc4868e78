package output

import (
	"encoding/json"
	"io"

	"equipment-quote/core/types"
)

// JSONFormatter renders indented JSON documents
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a JSON formatter with two-space indentation
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// RenderBreakdown writes a single priced line
func (f *JSONFormatter) RenderBreakdown(w io.Writer, b *types.PricingBreakdown) error {
	return f.encode(w, b)
}

// RenderQuote writes a project quote
func (f *JSONFormatter) RenderQuote(w io.Writer, q *types.ProjectQuote) error {
	return f.encode(w, q)
}

// RenderTiers writes a catalog listing
func (f *JSONFormatter) RenderTiers(w io.Writer, tiers []types.RateTier) error {
	return f.encode(w, struct {
		Tiers []types.RateTier `json:"tiers"`
	}{tiers})
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(v)
}
