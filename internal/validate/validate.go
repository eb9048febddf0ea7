package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pablasso/plankit/internal/lattice"
	"github.com/pablasso/plankit/internal/plan"
	"gopkg.in/yaml.v3"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	requiredTopLevel = []string{"version", "name", "description", "goals", "metadata"}
	requiredGoal     = []string{"title", "description", "status", "priority"}
	requiredTask     = []string{"title", "description", "status"}
	requiredMetadata = []string{"created_by", "created_date", "last_modified"}
)

// Options tunes validation. The zero value applies the default rules.
type Options struct {
	// Dependencies selects how dependency references resolve.
	Dependencies DependencyMode
	// Strict also checks the document against the embedded JSON Schema.
	Strict bool
}

// File validates a parsed plan file.
func File(f *plan.File, opts Options) []Violation {
	return Validate(f.Root, opts)
}

// Validate checks the top-level mapping of a plan document and returns
// every violation found, in document order of the checks.
func Validate(root *yaml.Node, opts Options) []Violation {
	v := &validator{opts: opts}
	if opts.Dependencies == "" {
		v.opts.Dependencies = DependencyOrdered
	}

	v.requireFields(root, "", requiredTopLevel)

	if version := plan.Lookup(root, "version"); plan.Present(version) {
		v.checkVersion(version)
	}
	if goals := plan.Lookup(root, "goals"); plan.Present(goals) {
		v.checkGoals(goals)
	}
	if tasks := plan.Lookup(root, "tasks"); plan.IsSequence(tasks) {
		v.checkTasks(tasks)
	}
	if metadata := plan.Lookup(root, "metadata"); plan.Present(metadata) {
		v.checkMetadata(metadata)
	}

	if opts.Strict {
		v.violations = append(v.violations, validateSchema(root)...)
	}
	return v.violations
}

type validator struct {
	opts       Options
	violations []Violation
}

func (v *validator) add(n *yaml.Node, path, msg string) {
	v.violations = append(v.violations, at(n, path, msg))
}

func at(n *yaml.Node, path, msg string) Violation {
	line := 0
	if n != nil {
		line = n.Line
	}
	return Violation{Path: path, Message: msg, Line: line}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// requireFields reports each key of fields that is not present in mapping.
// Violations for missing keys point at the mapping itself.
func (v *validator) requireFields(mapping *yaml.Node, prefix string, fields []string) {
	for _, field := range fields {
		if !plan.Present(plan.Lookup(mapping, field)) {
			v.add(mapping, join(prefix, field), "missing required field")
		}
	}
}

func (v *validator) checkVersion(n *yaml.Node) {
	text, ok := plan.ScalarValue(n)
	if !ok {
		v.add(n, "version", "invalid version: expected x.y.z")
		return
	}
	if _, err := lattice.Parse(text); err != nil {
		v.add(n, "version", fmt.Sprintf("invalid version %q: expected x.y.z", text))
	}
}

func (v *validator) checkGoals(goals *yaml.Node) {
	primary := plan.Lookup(goals, "primary")
	if !plan.IsSequence(primary) {
		v.add(goals, "goals.primary", "missing goals.primary sequence")
	} else {
		v.checkGoalList(primary, "goals.primary")
	}

	if secondary := plan.Lookup(goals, "secondary"); plan.IsSequence(secondary) {
		v.checkGoalList(secondary, "goals.secondary")
	}
}

func (v *validator) checkGoalList(list *yaml.Node, path string) {
	for i, goal := range list.Content {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		v.requireFields(goal, itemPath, requiredGoal)
		v.checkEnum(goal, itemPath, plan.FieldStatus, statusValues)
		v.checkEnum(goal, itemPath, plan.FieldPriority, priorityValues)
	}
}

func (v *validator) checkTasks(tasks *yaml.Node) {
	deps := newDependencyChecker(v.opts.Dependencies, tasks)

	for i, task := range tasks.Content {
		path := fmt.Sprintf("tasks[%d]", i)

		idNode := plan.Lookup(task, "id")
		if !plan.Present(idNode) {
			v.add(task, join(path, "id"), "missing required field")
		} else if id, ok := plan.ScalarValue(idNode); !ok {
			v.add(idNode, join(path, "id"), "task id must be a scalar")
		} else if deps.declare(id) {
			v.add(idNode, join(path, "id"), fmt.Sprintf("duplicate task id %q", id))
		}

		v.requireFields(task, path, requiredTask)
		v.checkEnum(task, path, plan.FieldStatus, statusValues)
		v.checkEnum(task, path, plan.FieldPriority, priorityValues)

		v.violations = append(v.violations, deps.check(join(path, "dependencies"), plan.Lookup(task, "dependencies"))...)
	}
}

func (v *validator) checkMetadata(metadata *yaml.Node) {
	if !plan.IsMapping(metadata) {
		v.add(metadata, "metadata", "metadata must be a mapping")
		return
	}

	v.requireFields(metadata, "metadata", requiredMetadata)
	for _, field := range []string{"created_date", "last_modified"} {
		n := plan.Lookup(metadata, field)
		if !plan.Present(n) {
			continue
		}
		text, _ := plan.ScalarValue(n)
		if !datePattern.MatchString(text) {
			v.add(n, join("metadata", field), fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", describe(n)))
		}
	}
}

var (
	statusValues   = enumValues(plan.Statuses)
	priorityValues = enumValues(plan.Priorities)
)

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// checkEnum reports a present field whose value is outside allowed.
// Absent fields are left to requireFields.
func (v *validator) checkEnum(item *yaml.Node, path string, field plan.Field, allowed []string) {
	n := plan.Lookup(item, string(field))
	if !plan.Present(n) {
		return
	}
	text, ok := plan.ScalarValue(n)
	if ok {
		for _, a := range allowed {
			if text == a {
				return
			}
		}
	}
	v.add(n, join(path, string(field)),
		fmt.Sprintf("invalid %s %q (valid: %s)", field, describe(n), strings.Join(allowed, ", ")))
}

// describe renders a node for messages.
func describe(n *yaml.Node) string {
	if text, ok := plan.ScalarValue(n); ok {
		return text
	}
	switch plan.Resolve(n).Kind {
	case yaml.MappingNode:
		return "<mapping>"
	case yaml.SequenceNode:
		return "<sequence>"
	default:
		return "<value>"
	}
}
