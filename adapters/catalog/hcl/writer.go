package hcl

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"equipment-quote/core/catalog"
	"equipment-quote/internal/errors"
)

// Encode renders a catalog in the format Parse reads
func Encode(cat *catalog.Catalog) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	blocks := make(map[string]*hclwrite.Body)
	for _, tier := range cat.Tiers() {
		body, ok := blocks[tier.Category]
		if !ok {
			if len(blocks) > 0 {
				root.AppendNewline()
			}
			body = root.AppendNewBlock("category", []string{tier.Category}).Body()
			blocks[tier.Category] = body
		}
		vb := body.AppendNewBlock("variant", []string{tier.Variant}).Body()
		for _, attr := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"daily_rate", tier.DailyRate},
			{"hourly_rate", tier.HourlyRate},
			{"operator_daily_rate", tier.OperatorDailyRate},
		} {
			v, err := numberVal(attr.value)
			if err != nil {
				return nil, err
			}
			vb.SetAttributeValue(attr.name, v)
		}
	}

	fb := cat.Fallback()
	root.AppendNewline()
	def := root.AppendNewBlock("default", nil).Body()
	daily, err := numberVal(fb.DailyRate)
	if err != nil {
		return nil, err
	}
	operator, err := numberVal(fb.OperatorDailyRate)
	if err != nil {
		return nil, err
	}
	def.SetAttributeValue("daily_rate", daily)
	def.SetAttributeValue("operator_daily_rate", operator)

	return f.Bytes(), nil
}

// Write encodes a catalog to w
func Write(w io.Writer, cat *catalog.Catalog) error {
	src, err := Encode(cat)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

func numberVal(d decimal.Decimal) (cty.Value, error) {
	v, err := cty.ParseNumberVal(d.String())
	if err != nil {
		return cty.NilVal, errors.Internal("failed to encode amount "+d.String(), err)
	}
	return v, nil
}
