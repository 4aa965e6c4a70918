// Package reference holds the worked example shown as a hint: a
// jobs-per-month validator and the reference test cases run against it.
package reference

import (
	"fmt"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
)

// Source is the validator as printed for the learner.
const Source = `// Shropshire Arbor Services job validation
func ValidateJobsPerMonth(raw string) (bool, string) {
	// Erroneous data: not a whole number at all
	jobs, ok := ParseWhole(raw)
	if !ok {
		return false, "Error: Must be a whole number"
	}

	// Invalid data: out of range
	if jobs < 0 {
		return false, "Error: Cannot be negative"
	}
	if jobs > 20 {
		return false, "Error: Maximum 20 jobs per month allowed"
	}

	// Valid data, including the boundary values 0 and 20
	return true, fmt.Sprintf("Success: %d jobs scheduled for month", jobs)
}`

// Validate accepts whole numbers of jobs from 0 to 20 and explains why
// anything else is rejected.
func Validate(raw string) (bool, string) {
	jobs, ok := classify.ParseWhole(raw)
	if !ok {
		return false, "Error: Must be a whole number"
	}
	switch {
	case jobs < float64(classify.JobsPerMonth.Min):
		return false, "Error: Cannot be negative"
	case jobs > float64(classify.JobsPerMonth.Max):
		return false, fmt.Sprintf("Error: Maximum %d jobs per month allowed", classify.JobsPerMonth.Max)
	}
	return true, fmt.Sprintf("Success: %d jobs scheduled for month", int(jobs))
}

// Result is one reference case run through Validate.
type Result struct {
	Case     catalog.ReferenceCase
	Accepted bool
	Message  string

	// Pass is true when the validator accepted exactly the valid and
	// boundary cases.
	Pass bool
}

// Line formats r the way the test run prints it.
func (r Result) Line() string {
	status := "❌ FAIL"
	if r.Pass {
		status = "✅ PASS"
	}
	return fmt.Sprintf("%s (%s): %s - %s", r.Case.ID, r.Case.Type, status, r.Message)
}

// Run validates every case.
func Run(cases []catalog.ReferenceCase) []Result {
	out := make([]Result, 0, len(cases))
	for _, c := range cases {
		accepted, msg := Validate(c.Input)
		out = append(out, Result{
			Case:     c,
			Accepted: accepted,
			Message:  msg,
			Pass:     accepted == c.Type.Accepted(),
		})
	}
	return out
}
