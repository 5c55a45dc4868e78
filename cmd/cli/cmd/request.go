package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

// quoteRequest is the on-disk form of a project quote request
type quoteRequest struct {
	Project projectRequest         `json:"project"`
	Lines   []types.PricingRequest `json:"lines"`
}

// projectRequest mirrors types.ProjectParams with calendar-date strings
type projectRequest struct {
	Name           string `json:"project_name"`
	Customer       string `json:"customer_name"`
	Site           string `json:"site_location"`
	Description    string `json:"project_description"`
	StartDate      string `json:"start_date"`
	DurationDays   int    `json:"project_duration_days"`
	IncludePermits bool   `json:"include_permits"`
	RushOrder      bool   `json:"rush_order"`
	QuoteDate      string `json:"quote_date"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// readQuoteRequest decodes a request from path, or from stdin when path is "-"
func readQuoteRequest(path string, stdin io.Reader) (*quoteRequest, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "failed to open quote request %s", path)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var req quoteRequest
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "failed to parse quote request %s", path)
	}
	return &req, nil
}

// params converts the project section. An absent quote date falls back to today.
func (p projectRequest) params(today time.Time) (types.ProjectParams, error) {
	params := types.ProjectParams{
		Name:           p.Name,
		Customer:       p.Customer,
		Site:           p.Site,
		Description:    p.Description,
		DurationDays:   p.DurationDays,
		IncludePermits: p.IncludePermits,
		RushOrder:      p.RushOrder,
		QuoteDate:      today,
	}

	var err error
	if strings.TrimSpace(p.StartDate) != "" {
		if params.StartDate, err = parseDate("startDate", p.StartDate); err != nil {
			return params, err
		}
	}
	if strings.TrimSpace(p.QuoteDate) != "" {
		if params.QuoteDate, err = parseDate("quoteDate", p.QuoteDate); err != nil {
			return params, err
		}
	}
	return params, nil
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Validation(field, "must be a date (YYYY-MM-DD), got %q", s)
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
