// Package cmd - price command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"equipment-quote/core/output"
	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

type priceOptions struct {
	days         int
	shift        string
	complexity   string
	operator     bool
	distanceKm   string
	requirements []string
	dailyRate    string
	operatorRate string
	lineage      bool
}

func newPriceCommand(a *app) *cobra.Command {
	o := &priceOptions{}
	cmd := &cobra.Command{
		Use:   "price <equipment description>",
		Short: "Price a single equipment rental line",
		Long: `Resolve an equipment description against the rate catalog and price one
rental line: equipment, operator, delivery, special requirements, volume
discount and tax.

Descriptions that match no catalog tier are priced from the default tier
and flagged as estimates.

Examples:
  quote-engine price "50-ton mobile crane" --days 10 --operator
  quote-engine price "100-ton mobile crane" --days 30 --shift night --complexity complex \
      --distance 240 --requirement "crane pad" --requirement rigging
  quote-engine price "tower crane" --days 60 --daily-rate 310000 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := o.request(args[0])
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			b, err := eng.PriceLine(req)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}
			if cli, ok := f.(*output.CLIFormatter); ok && o.lineage {
				cli.ShowLineage = true
			}
			return f.RenderBreakdown(cmd.OutOrStdout(), b)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&o.days, "days", "d", 1, "rental days")
	flags.StringVar(&o.shift, "shift", "day", "shift type (day, night, round_the_clock)")
	flags.StringVar(&o.complexity, "complexity", "standard", "job complexity (standard, complex, specialized)")
	flags.BoolVar(&o.operator, "operator", false, "include a certified operator")
	flags.StringVar(&o.distanceKm, "distance", "0", "delivery distance in km")
	flags.StringArrayVarP(&o.requirements, "requirement", "r", nil, "special requirement (repeatable)")
	flags.StringVar(&o.dailyRate, "daily-rate", "", "override the catalog daily rate")
	flags.StringVar(&o.operatorRate, "operator-rate", "", "override the catalog operator daily rate")
	flags.BoolVar(&o.lineage, "lineage", false, "show how each figure was derived (cli format)")
	return cmd
}

// request converts flag values into a pricing request. Enumerations accept the
// same spellings as JSON input; unknown ones are passed through so the engine
// reports the offending field.
func (o *priceOptions) request(description string) (types.PricingRequest, error) {
	req := types.PricingRequest{
		EquipmentDescription: description,
		RentalDays:           o.days,
		OperatorRequired:     o.operator,
		SpecialRequirements:  o.requirements,
	}
	_ = req.ShiftType.UnmarshalText([]byte(o.shift))
	_ = req.Complexity.UnmarshalText([]byte(o.complexity))

	km, err := flagDecimal("deliveryDistanceKm", o.distanceKm)
	if err != nil {
		return req, err
	}
	req.DeliveryDistanceKm = km

	if o.dailyRate != "" || o.operatorRate != "" {
		req.Overrides = &types.RateOverrides{}
		if o.dailyRate != "" {
			d, err := flagDecimal("overrides.dailyRate", o.dailyRate)
			if err != nil {
				return req, err
			}
			req.Overrides.DailyRate = &d
		}
		if o.operatorRate != "" {
			d, err := flagDecimal("overrides.operatorDailyRate", o.operatorRate)
			if err != nil {
				return req, err
			}
			req.Overrides.OperatorDailyRate = &d
		}
	}
	return req, nil
}

func flagDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Validation(field, "must be a number, got %q", raw)
	}
	return d, nil
}
