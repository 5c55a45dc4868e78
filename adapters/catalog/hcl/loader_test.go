package hcl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"equipment-quote/core/catalog"
	"equipment-quote/internal/errors"
)

const sampleCatalog = `
category "Scissor Lift" {
  variant "19ft" {
    daily_rate          = 6000
    operator_daily_rate = 2500
  }
  variant "32ft" {
    daily_rate  = "9500.50"
    hourly_rate = 1400
  }
}

category "telehandler" {
  variant "4-ton" {
    daily_rate = 18000
  }
}

default {
  daily_rate          = 20000
  operator_daily_rate = 3000
}
`

func TestParseCatalog(t *testing.T) {
	cat, err := NewLoader().Parse([]byte(sampleCatalog), "sample.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	stats := cat.Stats()
	if stats.Categories != 2 || stats.Tiers != 3 {
		t.Errorf("stats = %+v, want 2 categories and 3 tiers", stats)
	}
	if got := cat.Categories(); got[0] != "scissor lift" || got[1] != "telehandler" {
		t.Errorf("categories = %v, want file order", got)
	}

	r := cat.Resolve("32ft scissor lift for ceiling work")
	if r.Unmatched || r.Variant != "32ft" {
		t.Fatalf("unexpected resolution %+v", r)
	}
	if !r.DailyRate.Equal(decimal.RequireFromString("9500.5")) {
		t.Errorf("daily rate = %s, want 9500.5", r.DailyRate)
	}
	if !r.HourlyRate.Equal(decimal.NewFromInt(1400)) {
		t.Errorf("hourly rate = %s, want 1400", r.HourlyRate)
	}
	if !r.OperatorDailyRate.IsZero() {
		t.Errorf("operator rate = %s, want 0", r.OperatorDailyRate)
	}

	fb := cat.Resolve("hovercraft")
	if !fb.Unmatched || !fb.DailyRate.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("unexpected fallback %+v", fb)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	const defaultBlock = "default {\n  daily_rate = 1000\n}\n"
	variantWith := func(body string) string {
		return "category \"x\" {\n  variant \"y\" {\n" + body + "\n  }\n}\n"
	}

	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{"syntax", "category \"x\" {", errors.TypeParsing},
		{"unknown block", "crane \"x\" {\n}\n", errors.TypeParsing},
		{"missing daily rate", variantWith("hourly_rate = 1"), errors.TypeParsing},
		{"unknown attribute", variantWith("daily_rate = 1\nweekly_rate = 5"), errors.TypeParsing},
		{"not a number", variantWith(`daily_rate = "lots"`), errors.TypeParsing},
		{"variable reference", variantWith("daily_rate = var.rate"), errors.TypeParsing},
		{"duplicate default", variantWith("daily_rate = 1") +
			"default {\n  daily_rate = 1\n}\ndefault {\n  daily_rate = 2\n}\n", errors.TypeParsing},
		{"negative rate", variantWith("daily_rate = -5") + defaultBlock, errors.TypeConfig},
		{"duplicate variant", "category \"x\" {\n  variant \"y\" {\n    daily_rate = 1\n  }\n  variant \"Y\" {\n    daily_rate = 2\n  }\n}\n" + defaultBlock, errors.TypeConfig},
		{"empty", "", errors.TypeConfig},
		{"no default block", variantWith("daily_rate = 5000"), errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.errType) {
				t.Errorf("expected %s error, got %v", tt.errType, err)
			}
		})
	}
}

func TestParseCatalogWithoutDefaultBlock(t *testing.T) {
	src := "category \"scissor lift\" {\n  variant \"19ft\" {\n    daily_rate = 5000\n  }\n}\n"
	cat, err := NewLoader().Parse([]byte(src), "rates.hcl")
	if err == nil {
		t.Fatalf("expected error, got catalog with fallback %+v", cat.Fallback())
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	original := catalog.Default()
	src, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	loaded, err := NewLoader().Parse(src, "default.hcl")
	if err != nil {
		t.Fatalf("Parse(Encode()) error: %v\n%s", err, src)
	}

	want, got := original.Tiers(), loaded.Tiers()
	if len(got) != len(want) {
		t.Fatalf("got %d tiers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Label() != want[i].Label() ||
			!got[i].DailyRate.Equal(want[i].DailyRate) ||
			!got[i].HourlyRate.Equal(want[i].HourlyRate) ||
			!got[i].OperatorDailyRate.Equal(want[i].OperatorDailyRate) {
			t.Errorf("tier %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !loaded.Fallback().DailyRate.Equal(original.Fallback().DailyRate) {
		t.Errorf("fallback = %+v, want %+v", loaded.Fallback(), original.Fallback())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.hcl")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cat.Stats().Tiers != 3 {
		t.Errorf("tiers = %d, want 3", cat.Stats().Tiers)
	}

	if _, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "missing.hcl")); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error for missing file, got %v", err)
	}
}
