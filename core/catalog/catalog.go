// Package catalog - Equipment rate catalog
// Maps free-text equipment descriptions to rate tiers.
// Matching is declaration-order, first match wins; the order is part of the
// customer-facing price contract.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// category is one equipment family with its variants in declaration order
type category struct {
	name     string
	variants []variant
}

type variant struct {
	name   string
	tokens []string
	tier   types.RateTier
}

// Catalog is an immutable, ordered rate catalog. It is safe for concurrent use.
type Catalog struct {
	categories []category
	fallback   types.RateTier
}

// Resolve maps a description to a rate tier.
//
// The first category (in declaration order) whose name occurs in the lowercased
// description is selected. Its variants are then scanned in declaration order,
// first for the full variant name and then for any hyphen-delimited token of it.
// If no category occurs, or the selected category has no matching variant, the
// fallback tier is returned with Unmatched set.
//
// Known limitation: a description naming two categories resolves to whichever
// was declared first.
func (c *Catalog) Resolve(description string) types.ResolvedTier {
	desc := strings.ToLower(description)

	for _, cat := range c.categories {
		if !strings.Contains(desc, cat.name) {
			continue
		}
		if v, ok := cat.match(desc); ok {
			return types.ResolvedTier{
				RateTier: v.tier,
				Match:    v.tier.Label(),
			}
		}
		break
	}

	return types.ResolvedTier{
		RateTier:  c.fallback,
		Match:     strings.TrimSpace(description),
		Unmatched: true,
	}
}

func (cat category) match(desc string) (variant, bool) {
	for _, v := range cat.variants {
		if strings.Contains(desc, v.name) {
			return v, true
		}
	}
	for _, v := range cat.variants {
		for _, tok := range v.tokens {
			if strings.Contains(desc, tok) {
				return v, true
			}
		}
	}
	return variant{}, false
}

// Tiers returns every tier in declaration order
func (c *Catalog) Tiers() []types.RateTier {
	var result []types.RateTier
	for _, cat := range c.categories {
		for _, v := range cat.variants {
			result = append(result, v.tier)
		}
	}
	return result
}

// Categories returns category names in declaration order
func (c *Catalog) Categories() []string {
	result := make([]string, len(c.categories))
	for i, cat := range c.categories {
		result[i] = cat.name
	}
	return result
}

// Fallback returns the tier used for unmatched descriptions
func (c *Catalog) Fallback() types.RateTier {
	return c.fallback
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{
		Categories: len(c.categories),
		ByCategory: make(map[string]int, len(c.categories)),
	}
	for _, cat := range c.categories {
		stats.Tiers += len(cat.variants)
		stats.ByCategory[cat.name] = len(cat.variants)
	}
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Categories int
	Tiers      int
	ByCategory map[string]int
}

// Builder assembles a Catalog. Categories keep the order in which they are
// first registered; variants keep registration order within their category.
type Builder struct {
	categories []category
	index      map[string]int
	fallback   types.RateTier
	hasDefault bool
	errs       []string
}

// NewBuilder creates an empty builder. Build fails until Fallback is called.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
	}
}

// Register adds a tier to the catalog
func (b *Builder) Register(tier types.RateTier) *Builder {
	catName := normalizeName(tier.Category)
	varName := normalizeName(tier.Variant)
	if catName == "" || varName == "" {
		b.errs = append(b.errs, "tier category and variant must be non-empty")
		return b
	}
	if msg, ok := checkRates(tier); !ok {
		b.errs = append(b.errs, catName+" ("+varName+"): "+msg)
		return b
	}

	tier.Category = catName
	tier.Variant = varName

	idx, ok := b.index[catName]
	if !ok {
		idx = len(b.categories)
		b.index[catName] = idx
		b.categories = append(b.categories, category{name: catName})
	}
	for _, existing := range b.categories[idx].variants {
		if existing.name == varName {
			b.errs = append(b.errs, "duplicate tier "+tier.Label())
			return b
		}
	}
	b.categories[idx].variants = append(b.categories[idx].variants, variant{
		name:   varName,
		tokens: tokens(varName),
		tier:   tier,
	})
	return b
}

// Fallback sets the default tier's rates. Its hourly rate is always zero.
func (b *Builder) Fallback(dailyRate, operatorDailyRate decimal.Decimal) *Builder {
	tier := types.RateTier{
		DailyRate:         dailyRate,
		OperatorDailyRate: operatorDailyRate,
	}
	if msg, ok := checkRates(tier); !ok {
		b.errs = append(b.errs, "fallback tier: "+msg)
		return b
	}
	b.fallback = tier
	b.hasDefault = true
	return b
}

// Build validates and freezes the catalog
func (b *Builder) Build() (*Catalog, error) {
	if len(b.errs) > 0 {
		return nil, errors.Configf("invalid rate catalog: %s", strings.Join(b.errs, "; ")).
			WithContext("problems", len(b.errs))
	}
	if len(b.categories) == 0 {
		return nil, errors.Config("rate catalog has no tiers")
	}
	if !b.hasDefault {
		return nil, errors.Config("rate catalog has no default tier for unmatched equipment")
	}

	cats := make([]category, len(b.categories))
	for i, cat := range b.categories {
		cats[i] = category{
			name:     cat.name,
			variants: append([]variant(nil), cat.variants...),
		}
	}
	return &Catalog{
		categories: cats,
		fallback:   b.fallback,
	}, nil
}

func checkRates(t types.RateTier) (string, bool) {
	switch {
	case t.DailyRate.IsNegative():
		return "daily rate must be non-negative", false
	case t.HourlyRate.IsNegative():
		return "hourly rate must be non-negative", false
	case t.OperatorDailyRate.IsNegative():
		return "operator daily rate must be non-negative", false
	}
	return "", true
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokens splits a variant name on hyphens, dropping empty parts
func tokens(name string) []string {
	var result []string
	for _, part := range strings.Split(name, "-") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
