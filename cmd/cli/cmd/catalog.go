// Package cmd - catalog command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	catalogHCL "equipment-quote/adapters/catalog/hcl"
	"equipment-quote/core/types"
)

func newCatalogCommand(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List rate tiers or resolve a description",
		Long: `List the rate catalog in matching order, or show which tier a free-text
description resolves to.

Examples:
  quote-engine catalog
  quote-engine catalog --match "need a 60ft boom lift"
  quote-engine catalog export > rates.hcl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if match == "" {
				f, err := a.formatter()
				if err != nil {
					return err
				}
				return f.RenderTiers(out, eng.Catalog().Tiers())
			}

			r := eng.Resolve(match)
			a.logger.Debug("resolved description",
				zap.String("description", match),
				zap.String("match", r.Match),
				zap.Bool("unmatched", r.Unmatched),
			)
			if r.Unmatched {
				writeln(out, "No catalog match for %q; the default tier applies (estimate).", match)
			} else {
				writeln(out, "Matched: %s", r.Match)
			}
			f, err := a.formatter()
			if err != nil {
				return err
			}
			tier := r.RateTier
			if tier.Category == "" {
				tier.Category = "default"
			}
			return f.RenderTiers(out, []types.RateTier{tier})
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "equipment description to resolve")

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as an HCL rate card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			return catalogHCL.Write(cmd.OutOrStdout(), eng.Catalog())
		},
	})
	return cmd
}
