// Package validate checks plan documents against the plan schema.
//
// Validation never stops early: every check runs and every defect is
// returned as a Violation. An empty result means the document is valid.
// Text that cannot be parsed at all is rejected earlier by plan.Parse and
// never reaches this package.
//
// The checks are:
//
//   - version, name, description, goals and metadata are present;
//   - version matches x.y.z;
//   - goals.primary is a sequence, and every goal in goals.primary and
//     goals.secondary has title, description, status and priority, with
//     status and priority drawn from their enumerations;
//   - every task has id, title, description and status; ids are unique;
//     status and priority (optional) are in their enumerations; every
//     dependency names a known task (see DependencyMode);
//   - metadata has created_by, created_date and last_modified, and both
//     dates match YYYY-MM-DD.
package validate

import "fmt"

// Violation is one schema or content defect.
type Violation struct {
	// Path locates the offending value, e.g. "goals.primary[2].status".
	Path string
	// Message describes the defect. Its wording is not stable.
	Message string
	// Line is the 1-based source line, or 0 when unknown.
	Line int
}

func (v Violation) String() string {
	switch {
	case v.Path == "":
		return v.Message
	case v.Line > 0:
		return fmt.Sprintf("%s (line %d): %s", v.Path, v.Line, v.Message)
	default:
		return fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
}
