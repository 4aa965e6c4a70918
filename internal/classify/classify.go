// Package classify decides whether raw test data is valid, invalid,
// boundary or erroneous under a validation rule.
package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rule classifies raw input text.
type Rule interface {
	Classify(raw string) Kind
	Describe() string
}

// RangeRule accepts whole numbers from Min to Max inclusive.
type RangeRule struct {
	Min int
	Max int
}

// JobsPerMonth is the rule the test-set builder checks against.
var JobsPerMonth = RangeRule{Min: 0, Max: 20}

// Classify checks, in order: erroneous, invalid, boundary, valid.
func (r RangeRule) Classify(raw string) Kind {
	n, ok := ParseWhole(raw)
	if !ok {
		return Erroneous
	}
	lo, hi := float64(r.Min), float64(r.Max)
	switch {
	case n < lo || n > hi:
		return Invalid
	case n == lo || n == hi:
		return Boundary
	default:
		return Valid
	}
}

func (r RangeRule) Describe() string {
	return fmt.Sprintf("whole number from %d to %d inclusive", r.Min, r.Max)
}

// DigitsRule accepts exactly Count decimal digits. Numeric input of the
// wrong length is invalid; anything containing a non-digit is erroneous.
type DigitsRule struct {
	Count int
}

func (r DigitsRule) Classify(raw string) Kind {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Erroneous
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Erroneous
		}
	}
	if len(s) != r.Count {
		return Invalid
	}
	return Valid
}

func (r DigitsRule) Describe() string {
	return fmt.Sprintf("%d digit number", r.Count)
}

// ParseWhole parses raw as a whole number. Blank input, text, fractional
// values and non-finite values are rejected. An integral decimal literal
// such as "10.0" or "1e1" is accepted as that whole number.
func ParseWhole(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}
