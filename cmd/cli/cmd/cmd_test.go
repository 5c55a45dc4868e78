package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

const projectRequestJSON = `{
  "project": {
    "project_name": "Metro depot",
    "customer_name": "Apex Infra",
    "site_location": "Pune",
    "start_date": "2026-11-02",
    "project_duration_days": 10,
    "include_permits": true
  },
  "lines": [
    {"equipment_description": "50-ton mobile crane", "rental_days": 10, "operator_required": true},
    {"equipment_description": "boom lift 40ft", "shift_type": "Night Shift"}
  ]
}`

// run executes the CLI with an isolated config file and no dotenv file
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	cfgFile := filepath.Join(t.TempDir(), "config.json")
	root.SetArgs(append([]string{"--config", cfgFile, "--env-file", ""}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(out, "quote-engine version "+Version) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPriceCommandJSON(t *testing.T) {
	out, err := run(t, "", "price", "50-ton mobile crane", "--days", "10", "--operator", "--format", "json")
	if err != nil {
		t.Fatalf("price error: %v", err)
	}

	var b types.PricingBreakdown
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if !b.Total.Equal(decimal.NewFromInt(2360000)) {
		t.Errorf("total = %s, want 2360000", b.Total)
	}
	if b.Tier.Match != "mobile crane (50-ton)" {
		t.Errorf("match = %q", b.Tier.Match)
	}
}

func TestPriceCommandTable(t *testing.T) {
	out, err := run(t, "", "price", "100-ton mobile crane",
		"--days", "14", "--shift", "night", "--distance", "200",
		"-r", "crane pad", "--daily-rate", "250000", "--lineage")
	if err != nil {
		t.Fatalf("price error: %v", err)
	}
	for _, want := range []string{"EQUIPMENT PRICING BREAKDOWN", "NIGHT", "Volume discount (10%)", "crane pad", "Lineage:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPriceCommandValidation(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"zero days", []string{"--days", "0"}, "rentalDays"},
		{"unknown shift", []string{"--shift", "dusk"}, "shiftType"},
		{"unknown complexity", []string{"--complexity", "extreme"}, "complexity"},
		{"bad distance", []string{"--distance", "far"}, "deliveryDistanceKm"},
		{"negative distance", []string{"--distance", "-3"}, "deliveryDistanceKm"},
		{"negative override", []string{"--daily-rate", "-1"}, "overrides.dailyRate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"price", "50-ton mobile crane"}, tt.args...)
			_, err := run(t, "", args...)
			if !errors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := errors.FieldOf(err); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestQuoteCommandFromFile(t *testing.T) {
	path := writeFile(t, "project.json", projectRequestJSON)
	out, err := run(t, "", "quote", path, "--quote-date", "2026-10-14", "--format", "json")
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}

	var q types.ProjectQuote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if !strings.HasPrefix(q.QuoteID, "QUOTE_") || len(q.QuoteID) != len("QUOTE_")+8 {
		t.Errorf("quote id = %q", q.QuoteID)
	}
	if len(q.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(q.LineItems))
	}
	if got := q.LineItems[1].Breakdown; got.RentalDays != 10 || got.ShiftType != types.ShiftNight {
		t.Errorf("second line = %d days %s, want project duration and NIGHT", got.RentalDays, got.ShiftType)
	}
	if want := time.Date(2026, 11, 13, 0, 0, 0, 0, time.UTC); !q.ValidUntil.Equal(want) {
		t.Errorf("valid until = %s, want %s", q.ValidUntil, want)
	}
	if !q.Payment.Deposit.Add(q.Payment.Balance).Equal(q.Summary.GrandTotal) {
		t.Error("deposit + balance != grand total")
	}
	if !q.Summary.PermitFee.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("permit fee = %s, want 2500", q.Summary.PermitFee)
	}
}

func TestQuoteCommandIsDeterministic(t *testing.T) {
	path := writeFile(t, "project.json", projectRequestJSON)
	first, err := run(t, "", "quote", path, "--quote-date", "2026-10-14", "--format", "json")
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	second, err := run(t, projectRequestJSON, "quote", "-", "--quote-date", "2026-10-14", "--format", "json")
	if err != nil {
		t.Fatalf("quote from stdin error: %v", err)
	}
	if first != second {
		t.Error("identical requests produced different quotes")
	}
}

func TestQuoteCommandErrors(t *testing.T) {
	malformed := writeFile(t, "bad.json", `{"project": {`)
	if _, err := run(t, "", "quote", malformed); !errors.IsType(err, errors.TypeParsing) {
		t.Errorf("expected parsing error, got %v", err)
	}

	unknownField := writeFile(t, "extra.json", `{"project": {"start_date": "2026-11-02", "budget": 5}, "lines": []}`)
	if _, err := run(t, "", "quote", unknownField); !errors.IsType(err, errors.TypeParsing) {
		t.Errorf("expected parsing error for unknown field, got %v", err)
	}

	badDate := writeFile(t, "date.json", `{"project": {"start_date": "next monday", "project_duration_days": 3},
		"lines": [{"equipment_description": "boom lift 40ft"}]}`)
	if _, err := run(t, "", "quote", badDate); errors.FieldOf(err) != "startDate" {
		t.Errorf("expected startDate error, got %v", err)
	}

	badLine := writeFile(t, "line.json", `{"project": {"start_date": "2026-11-02", "project_duration_days": 3},
		"lines": [{"equipment_description": "boom lift 40ft"}, {"equipment_description": "boom lift 60ft", "rental_days": -2}]}`)
	if _, err := run(t, "", "quote", badLine); errors.FieldOf(err) != "lines[1].rentalDays" {
		t.Errorf("expected lines[1].rentalDays error, got %v", err)
	}

	if _, err := run(t, "", "quote", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing request file")
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "", "catalog")
	if err != nil {
		t.Fatalf("catalog error: %v", err)
	}
	if !strings.Contains(out, "RATE CATALOG") || !strings.Contains(out, "tower crane (heavy-duty)") {
		t.Errorf("unexpected listing:\n%s", out)
	}

	out, err = run(t, "", "catalog", "--match", "need a boom lift 60ft Friday")
	if err != nil {
		t.Fatalf("catalog --match error: %v", err)
	}
	if !strings.Contains(out, "Matched: boom lift (60ft)") {
		t.Errorf("unexpected match output:\n%s", out)
	}

	out, err = run(t, "", "catalog", "-m", "unobtainium levitator")
	if err != nil {
		t.Fatalf("catalog --match error: %v", err)
	}
	if !strings.Contains(out, "No catalog match") {
		t.Errorf("unexpected unmatched output:\n%s", out)
	}
}

func TestCatalogExportAndReload(t *testing.T) {
	out, err := run(t, "", "catalog", "export")
	if err != nil {
		t.Fatalf("catalog export error: %v", err)
	}
	if !strings.Contains(out, `category "mobile crane"`) {
		t.Fatalf("unexpected export:\n%s", out)
	}

	rates := writeFile(t, "rates.hcl", out)
	t.Setenv("QUOTE_CATALOG_PATH", rates)
	priced, err := run(t, "", "price", "50-ton mobile crane", "--days", "10", "--operator", "--format", "json")
	if err != nil {
		t.Fatalf("price with exported catalog error: %v", err)
	}
	var b types.PricingBreakdown
	if err := json.Unmarshal([]byte(priced), &b); err != nil {
		t.Fatal(err)
	}
	if !b.Total.Equal(decimal.NewFromInt(2360000)) {
		t.Errorf("total = %s with reloaded catalog, want 2360000", b.Total)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	out, err := run(t, "", "config", "init", path)
	if err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := run(t, "", "config", "init", path); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}
	if _, err := run(t, "", "config", "init", path, "--force"); err != nil {
		t.Errorf("config init --force error: %v", err)
	}

	t.Setenv("QUOTE_TAX_RATE", "0.12")
	out, err = run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, `"tax_rate": "0.12"`) {
		t.Errorf("env override not shown:\n%s", out)
	}
}

func TestFormatFlagRejectsUnknown(t *testing.T) {
	if _, err := run(t, "", "catalog", "--format", "pdf"); !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
