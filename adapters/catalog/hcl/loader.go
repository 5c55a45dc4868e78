// Package hcl loads and writes rate catalogs in HCL.
//
//	category "mobile crane" {
//	  variant "50-ton" {
//	    daily_rate          = 150000
//	    hourly_rate         = 22000
//	    operator_daily_rate = 8000
//	  }
//	}
//
//	default {
//	  daily_rate          = 120000
//	  operator_daily_rate = 6500
//	}
//
// Blocks keep their file order, which is the catalog's matching order.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.uber.org/zap"

	"equipment-quote/core/catalog"
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
	"equipment-quote/internal/logging"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "category", LabelNames: []string{"name"}},
		{Type: "default"},
	},
}

var categorySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "variant", LabelNames: []string{"name"}},
	},
}

var variantSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "daily_rate", Required: true},
		{Name: "hourly_rate"},
		{Name: "operator_daily_rate"},
	},
}

var defaultSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "daily_rate", Required: true},
		{Name: "operator_daily_rate"},
	},
}

// Loader reads rate catalog files
type Loader struct {
	logger *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the loader's logger
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		ld.logger = logging.OrNop(l)
	}
}

// NewLoader creates a catalog loader
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// LoadFile parses the catalog at path
func (ld *Loader) LoadFile(path string) (*catalog.Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read rate catalog %s", path)
	}
	return ld.Parse(src, path)
}

// Parse parses catalog source; filename is used in diagnostics only
func (ld *Loader) Parse(src []byte, filename string) (*catalog.Catalog, error) {
	// A fresh parser per call; hclparse caches files by name.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	b := catalog.NewBuilder()
	var fallbackSeen bool
	for _, block := range content.Blocks {
		switch block.Type {
		case "category":
			if err := ld.category(b, block); err != nil {
				return nil, err
			}
		case "default":
			if fallbackSeen {
				return nil, errors.Parsing(fmt.Sprintf("%s: duplicate default block", block.DefRange), nil)
			}
			fallbackSeen = true
			if err := fallback(b, block); err != nil {
				return nil, err
			}
		}
	}

	cat, err := b.Build()
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid rate catalog %s", filename)
	}

	stats := cat.Stats()
	ld.logger.Debug("loaded rate catalog",
		zap.String("file", filename),
		zap.Int("categories", stats.Categories),
		zap.Int("tiers", stats.Tiers),
		zap.Bool("default_block", fallbackSeen),
	)
	return cat, nil
}

func (ld *Loader) category(b *catalog.Builder, block *hcl.Block) error {
	content, diags := block.Body.Content(categorySchema)
	if diags.HasErrors() {
		return diagError(block.DefRange.Filename, diags)
	}
	if len(content.Blocks) == 0 {
		ld.logger.Warn("category has no variants", zap.String("category", block.Labels[0]))
	}

	for _, vb := range content.Blocks {
		attrs, diags := vb.Body.Content(variantSchema)
		if diags.HasErrors() {
			return diagError(vb.DefRange.Filename, diags)
		}
		tier := types.RateTier{Category: block.Labels[0], Variant: vb.Labels[0]}
		var err error
		if tier.DailyRate, err = number(attrs.Attributes, "daily_rate"); err != nil {
			return err
		}
		if tier.HourlyRate, err = number(attrs.Attributes, "hourly_rate"); err != nil {
			return err
		}
		if tier.OperatorDailyRate, err = number(attrs.Attributes, "operator_daily_rate"); err != nil {
			return err
		}
		b.Register(tier)
	}
	return nil
}

func fallback(b *catalog.Builder, block *hcl.Block) error {
	attrs, diags := block.Body.Content(defaultSchema)
	if diags.HasErrors() {
		return diagError(block.DefRange.Filename, diags)
	}
	daily, err := number(attrs.Attributes, "daily_rate")
	if err != nil {
		return err
	}
	operator, err := number(attrs.Attributes, "operator_daily_rate")
	if err != nil {
		return err
	}
	b.Fallback(daily, operator)
	return nil
}

// number evaluates a constant numeric attribute. Absent attributes are zero.
func number(attrs hcl.Attributes, name string) (decimal.Decimal, error) {
	attr, ok := attrs[name]
	if !ok {
		return decimal.Zero, nil
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, diagError(attr.Range.Filename, diags)
	}
	if !val.IsKnown() || val.IsNull() {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("%s: %s must be a known number", attr.Range, name), nil)
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("%s: %s must be a number", attr.Range, name), err)
	}

	d, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("%s: %s is not a valid amount", attr.Range, name), err)
	}
	return d, nil
}

func diagError(filename string, diags hcl.Diagnostics) error {
	return errors.Parsing(fmt.Sprintf("failed to parse rate catalog %s", filename), diags).
		WithContext("diagnostics", len(diags))
}
