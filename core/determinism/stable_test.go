package determinism

import (
	"strings"
	"testing"
)

func TestIDGeneratorIsDeterministic(t *testing.T) {
	a := NewIDGenerator("quotes").Generate("x", "y")
	b := NewIDGenerator("quotes").Generate("x", "y")
	if a != b {
		t.Errorf("expected equal IDs, got %s and %s", a, b)
	}

	if c := NewIDGenerator("quotes").Generate("xy"); c == a {
		t.Error("separator must distinguish (x, y) from (xy)")
	}
	if c := NewIDGenerator("other").Generate("x", "y"); c == a {
		t.Error("namespaces must produce distinct IDs")
	}
	if a.Version() != 5 {
		t.Errorf("expected name-based SHA-1 UUID (v5), got v%d", a.Version())
	}
}

func TestShortID(t *testing.T) {
	id := NewIDGenerator("quotes").Short("QUOTE_", 8, "abc")
	s := string(id)
	if !strings.HasPrefix(s, "QUOTE_") || len(s) != len("QUOTE_")+8 {
		t.Fatalf("unexpected short id %q", s)
	}
	if strings.ToUpper(s) != s {
		t.Errorf("short id should be upper case: %q", s)
	}
}

func TestHashJSON(t *testing.T) {
	type payload struct {
		A string
		M map[string]int
	}
	h1, err := HashJSON(payload{A: "a", M: map[string]int{"x": 1, "y": 2}})
	if err != nil {
		t.Fatalf("HashJSON() error: %v", err)
	}
	h2, _ := HashJSON(payload{A: "a", M: map[string]int{"y": 2, "x": 1}})
	if h1 != h2 {
		t.Error("map insertion order must not change the hash")
	}
	if len(h1.Hex()) != 64 {
		t.Errorf("unexpected hex length %d", len(h1.Hex()))
	}
}
