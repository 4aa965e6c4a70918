package coach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/testlab/internal/classify"
)

// Explain returns the deterministic explanation for in. It never fails.
func Explain(in Input) Feedback {
	return Feedback{
		Explanation: explanation(in),
		Tip:         tip(in.Chosen, in.Correct),
		Source:      SourceRules,
	}
}

func explanation(in Input) string {
	value := strings.TrimSpace(in.Value)
	if value == "" {
		return "An empty entry is erroneous data: the field needs a value before any rule can accept it."
	}

	switch r := in.Rule.(type) {
	case classify.RangeRule:
		return rangeExplanation(value, r, in.Correct)
	case classify.DigitsRule:
		return digitsExplanation(value, r, in.Correct)
	}
	return fmt.Sprintf("%q is %s data for a %s.", value, in.Correct, describe(in.Rule))
}

func rangeExplanation(value string, r classify.RangeRule, kind classify.Kind) string {
	span := fmt.Sprintf("%d to %d", r.Min, r.Max)
	switch kind {
	case classify.Erroneous:
		return fmt.Sprintf("%q is not a whole number at all, so it is erroneous data.", value)
	case classify.Invalid:
		return fmt.Sprintf("%s is a whole number outside %s, so it is invalid data.", value, span)
	case classify.Boundary:
		return fmt.Sprintf("%s sits exactly on the edge of %s, so it is boundary data.", value, span)
	default:
		return fmt.Sprintf("%s is a whole number inside %s, so it is valid data.", value, span)
	}
}

func digitsExplanation(value string, r classify.DigitsRule, kind classify.Kind) string {
	switch kind {
	case classify.Erroneous:
		return fmt.Sprintf("%q contains characters that are not digits, so it is erroneous data.", value)
	case classify.Invalid:
		return fmt.Sprintf("%q has only digits but %d of them instead of %d, so it is invalid data.",
			value, utf8.RuneCountInString(value), r.Count)
	default:
		return fmt.Sprintf("%q is exactly %d digits, so it is valid data.", value, r.Count)
	}
}

func describe(r classify.Rule) string {
	if r == nil {
		return "field"
	}
	return r.Describe()
}

// tip targets the specific confusion between the chosen and correct type.
func tip(chosen, correct classify.Kind) string {
	switch {
	case correct == classify.Boundary && chosen == classify.Valid:
		return "Values exactly on a limit are accepted, but they get their own name: boundary data."
	case correct == classify.Boundary && chosen == classify.Invalid:
		return "The limits themselves are inside the range. Only values past them are invalid."
	case correct == classify.Invalid && chosen == classify.Erroneous:
		return "Invalid data is the right kind of value in the wrong range. Erroneous data is the wrong kind of value entirely."
	case correct == classify.Erroneous && chosen == classify.Invalid:
		return "If the value could never be parsed as the expected kind, it is erroneous, not just out of range."
	case correct == classify.Valid && chosen == classify.Boundary:
		return "Boundary data is only the exact limits. Anything strictly between them is valid."
	case correct == classify.Invalid && chosen == classify.Boundary:
		return "Values just past a limit are invalid. Boundary means exactly on the limit."
	}
	return "Ask two questions: can the value be read as the expected kind, and is it inside the allowed range?"
}
