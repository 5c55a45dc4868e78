package types

import (
	"strings"
)

// ShiftType is the working pattern the equipment is booked for
type ShiftType string

const (
	ShiftDay           ShiftType = "DAY"
	ShiftNight         ShiftType = "NIGHT"
	ShiftRoundTheClock ShiftType = "ROUND_THE_CLOCK"
)

// ShiftTypes lists every valid shift type
var ShiftTypes = []ShiftType{ShiftDay, ShiftNight, ShiftRoundTheClock}

// Valid reports whether s is a member of the enumeration
func (s ShiftType) Valid() bool {
	switch s {
	case ShiftDay, ShiftNight, ShiftRoundTheClock:
		return true
	}
	return false
}

// String returns the string representation
func (s ShiftType) String() string {
	return string(s)
}

// ParseShiftType accepts canonical names as well as the phrasing used in
// customer conversations ("Day Shift", "night shift", "24/7").
func ParseShiftType(s string) (ShiftType, bool) {
	switch normalizeEnum(s) {
	case "DAY", "DAY_SHIFT":
		return ShiftDay, true
	case "NIGHT", "NIGHT_SHIFT":
		return ShiftNight, true
	case "ROUND_THE_CLOCK", "24/7", "24X7", "24_HOURS", "FULL_DAY":
		return ShiftRoundTheClock, true
	}
	return "", false
}

// Complexity grades how demanding the lift or site is
type Complexity string

const (
	ComplexityStandard    Complexity = "STANDARD"
	ComplexityComplex     Complexity = "COMPLEX"
	ComplexitySpecialized Complexity = "SPECIALIZED"
)

// Complexities lists every valid complexity
var Complexities = []Complexity{ComplexityStandard, ComplexityComplex, ComplexitySpecialized}

// Valid reports whether c is a member of the enumeration
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityStandard, ComplexityComplex, ComplexitySpecialized:
		return true
	}
	return false
}

// String returns the string representation
func (c Complexity) String() string {
	return string(c)
}

// ParseComplexity is case-insensitive
func ParseComplexity(s string) (Complexity, bool) {
	c := Complexity(normalizeEnum(s))
	return c, c.Valid()
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(s), "_")
}

// UnmarshalText accepts any spelling ParseShiftType does. Unknown values are
// kept verbatim so validation can name the field.
func (s *ShiftType) UnmarshalText(text []byte) error {
	if parsed, ok := ParseShiftType(string(text)); ok {
		*s = parsed
		return nil
	}
	*s = ShiftType(text)
	return nil
}

// UnmarshalText accepts any spelling ParseComplexity does. Unknown values are
// kept verbatim so validation can name the field.
func (c *Complexity) UnmarshalText(text []byte) error {
	if parsed, ok := ParseComplexity(string(text)); ok {
		*c = parsed
		return nil
	}
	*c = Complexity(text)
	return nil
}
