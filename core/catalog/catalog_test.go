package catalog

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
	"equipment-quote/internal/errors"
)

func TestResolveDefaultCatalog(t *testing.T) {
	c := Default()

	tests := []struct {
		description string
		category    string
		variant     string
	}{
		{"50-ton mobile crane", "mobile crane", "50-ton"},
		{"Mobile Crane 50-TON", "mobile crane", "50-ton"},
		{"need a 100-ton mobile crane", "mobile crane", "100-ton"},
		{"130-ton mobile crane", "mobile crane", "130-ton"},
		{"mobile crane, 25 ton", "mobile crane", "25-ton"},
		{"tower crane heavy duty", "tower crane", "heavy-duty"},
		{"standard tower crane", "tower crane", "standard"},
		{"boom lift 60ft", "boom lift", "60ft"},
		{"rough terrain crane 40-ton", "rough terrain crane", "40-ton"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := c.Resolve(tt.description)
			if got.Unmatched {
				t.Fatalf("expected a match for %q", tt.description)
			}
			if got.Category != tt.category || got.Variant != tt.variant {
				t.Errorf("Resolve(%q) = %s/%s, want %s/%s",
					tt.description, got.Category, got.Variant, tt.category, tt.variant)
			}
		})
	}
}

func TestResolveTokenMatchFollowsDeclarationOrder(t *testing.T) {
	c := Default()

	// No full variant name occurs, so the first variant with an occurring
	// token wins: "ton" belongs to 25-ton, the first declared variant.
	got := c.Resolve("mobile crane, about 60 ton")
	if got.Unmatched || got.Variant != "25-ton" {
		t.Errorf("expected 25-ton by token order, got %+v", got)
	}
}

func TestResolveFullNameSubstringLimitation(t *testing.T) {
	c := Default()

	// "50-ton" occurs inside "150-ton" and is declared first.
	got := c.Resolve("150-ton mobile crane")
	if got.Variant != "50-ton" {
		t.Errorf("expected declaration-order match 50-ton, got %s", got.Variant)
	}
}

func TestResolveFirstCategoryWins(t *testing.T) {
	c := Default()

	got := c.Resolve("boom lift 40ft or a 50-ton mobile crane")
	if got.Category != "mobile crane" {
		t.Errorf("expected first declared category to win, got %q", got.Category)
	}
}

func TestResolveUnmatched(t *testing.T) {
	c := Default()

	tests := []string{
		"unobtainium levitator",
		"",
		"tower crane", // category without any variant token
	}

	for _, desc := range tests {
		got := c.Resolve(desc)
		if !got.Unmatched {
			t.Errorf("Resolve(%q) should be unmatched, got %+v", desc, got)
			continue
		}
		if !got.DailyRate.Equal(decimal.NewFromInt(120000)) {
			t.Errorf("fallback daily rate = %s, want 120000", got.DailyRate)
		}
		if !got.OperatorDailyRate.Equal(decimal.NewFromInt(6500)) {
			t.Errorf("fallback operator rate = %s, want 6500", got.OperatorDailyRate)
		}
		if !got.HourlyRate.IsZero() {
			t.Errorf("fallback hourly rate = %s, want 0", got.HourlyRate)
		}
	}

	if got := c.Resolve("unobtainium levitator"); got.Match != "unobtainium levitator" {
		t.Errorf("unmatched label should echo description, got %q", got.Match)
	}
}

func TestCategoryMatchWithoutVariantDoesNotFallThrough(t *testing.T) {
	c, err := NewBuilder().
		Register(types.RateTier{Category: "crane", Variant: "small", DailyRate: decimal.NewFromInt(1)}).
		Register(types.RateTier{Category: "mobile crane", Variant: "large", DailyRate: decimal.NewFromInt(2)}).
		Fallback(decimal.NewFromInt(9), decimal.Zero).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	got := c.Resolve("large mobile crane")
	if !got.Unmatched {
		t.Errorf("expected first matching category without variant to fall back, got %+v", got)
	}
}

func TestBuilderRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Catalog, error)
	}{
		{
			name: "empty",
			build: func() (*Catalog, error) {
				return NewBuilder().Build()
			},
		},
		{
			name: "duplicate",
			build: func() (*Catalog, error) {
				return NewBuilder().
					Register(types.RateTier{Category: "boom lift", Variant: "40ft"}).
					Register(types.RateTier{Category: "Boom Lift", Variant: "40FT"}).
					Build()
			},
		},
		{
			name: "negative rate",
			build: func() (*Catalog, error) {
				return NewBuilder().
					Register(types.RateTier{Category: "boom lift", Variant: "40ft", DailyRate: decimal.NewFromInt(-1)}).
					Build()
			},
		},
		{
			name: "blank variant",
			build: func() (*Catalog, error) {
				return NewBuilder().
					Register(types.RateTier{Category: "boom lift", Variant: "  "}).
					Build()
			},
		},
		{
			name: "missing fallback",
			build: func() (*Catalog, error) {
				return NewBuilder().
					Register(types.RateTier{Category: "boom lift", Variant: "40ft", DailyRate: decimal.NewFromInt(80000)}).
					Build()
			},
		},
		{
			name: "negative fallback",
			build: func() (*Catalog, error) {
				return NewBuilder().
					Register(types.RateTier{Category: "boom lift", Variant: "40ft"}).
					Fallback(decimal.NewFromInt(-5), decimal.Zero).
					Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			if err == nil {
				t.Fatalf("expected error, got catalog %+v", c)
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestTiersPreserveDeclarationOrder(t *testing.T) {
	c := Default()
	tiers := c.Tiers()
	if len(tiers) != 12 {
		t.Fatalf("expected 12 tiers, got %d", len(tiers))
	}
	if tiers[0].Label() != "mobile crane (25-ton)" {
		t.Errorf("first tier = %s", tiers[0].Label())
	}
	if tiers[len(tiers)-1].Label() != "rough terrain crane (40-ton)" {
		t.Errorf("last tier = %s", tiers[len(tiers)-1].Label())
	}

	want := []string{"mobile crane", "tower crane", "boom lift", "rough terrain crane"}
	got := c.Categories()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, got[i], want[i])
		}
	}

	stats := c.Stats()
	if stats.Tiers != 12 || stats.Categories != 4 || stats.ByCategory["mobile crane"] != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestResolveConcurrentReads(t *testing.T) {
	c := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := c.Resolve("50-ton mobile crane"); got.Variant != "50-ton" {
					t.Errorf("concurrent resolve returned %s", got.Variant)
					return
				}
			}
		}()
	}
	wg.Wait()
}
