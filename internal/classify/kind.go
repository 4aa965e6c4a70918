package classify

import "fmt"

// Kind is the classification of a piece of test data under a validation rule.
type Kind string

const (
	Valid     Kind = "valid"
	Invalid   Kind = "invalid"
	Boundary  Kind = "boundary"
	Erroneous Kind = "erroneous"
)

// AllKinds lists every kind in the order the tutorial presents them.
var AllKinds = []Kind{Valid, Invalid, Boundary, Erroneous}

// ParseKind converts a user or catalog label into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown test data type %q", s)
}

func (k Kind) String() string {
	return string(k)
}

// Known reports whether k is one of the four classifications.
func (k Kind) Known() bool {
	switch k {
	case Valid, Invalid, Boundary, Erroneous:
		return true
	}
	return false
}

// DisplayName returns the capitalised label shown on buttons and lists.
func (k Kind) DisplayName() string {
	switch k {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	case Boundary:
		return "Boundary"
	case Erroneous:
		return "Erroneous"
	default:
		return "Unknown"
	}
}

// Accepted reports whether a system enforcing the rule should accept data
// of this kind. Boundary values sit inside the inclusive range.
func (k Kind) Accepted() bool {
	return k == Valid || k == Boundary
}
