// Package cmd - quote command
package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

func newQuoteCommand(a *app) *cobra.Command {
	var quoteDate string

	cmd := &cobra.Command{
		Use:   "quote <request.json | ->",
		Short: "Build a multi-equipment project quote",
		Long: `Price every equipment line of a project and aggregate the quote: project
management, insurance, site preparation, permits, rush surcharge, project
tax and the deposit schedule.

The request file holds a "project" object and a "lines" array:

  {
    "project": {
      "project_name": "Metro depot",
      "customer_name": "Apex Infra",
      "site_location": "Pune",
      "start_date": "2026-11-02",
      "project_duration_days": 10,
      "include_permits": true,
      "rush_order": false
    },
    "lines": [
      {"equipment_description": "50-ton mobile crane", "rental_days": 10, "operator_required": true},
      {"equipment_description": "boom lift 60ft", "shift_type": "night"}
    ]
  }

A line without rental_days is rented for the whole project.

Examples:
  quote-engine quote project.json
  cat project.json | quote-engine quote - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readQuoteRequest(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if quoteDate != "" {
				req.Project.QuoteDate = quoteDate
			}
			params, err := req.Project.params(today(time.Now()))
			if err != nil {
				return err
			}

			eng, err := a.engine()
			if err != nil {
				return err
			}
			q, err := eng.BuildQuote(req.Lines, params)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}
			return f.RenderQuote(cmd.OutOrStdout(), q)
		},
	}

	cmd.Flags().StringVar(&quoteDate, "quote-date", "", "issue date (YYYY-MM-DD, default today)")
	return cmd
}
