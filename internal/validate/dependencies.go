package validate

import (
	"fmt"
	"strings"

	"github.com/pablasso/plankit/internal/plan"
	"gopkg.in/yaml.v3"
)

// DependencyMode selects how task dependency references are resolved.
type DependencyMode string

const (
	// DependencyOrdered accepts only references to tasks declared earlier
	// in the list (or to the task itself). Forward references are reported.
	DependencyOrdered DependencyMode = "ordered"
	// DependencyDeclared accepts references to any task in the list.
	DependencyDeclared DependencyMode = "declared"
)

// ParseDependencyMode validates and normalizes a dependency mode. The empty
// string selects DependencyOrdered.
func ParseDependencyMode(value string) (DependencyMode, error) {
	switch m := DependencyMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return DependencyOrdered, nil
	case DependencyOrdered, DependencyDeclared:
		return m, nil
	default:
		return "", fmt.Errorf("invalid dependency mode %q (valid: ordered, declared)", value)
	}
}

// dependencyChecker tracks declared task ids while tasks are scanned in
// document order.
type dependencyChecker struct {
	mode DependencyMode
	// seen holds the ids declared so far.
	seen map[string]bool
	// all holds every id in the list; only used in declared mode.
	all map[string]bool
}

func newDependencyChecker(mode DependencyMode, tasks *yaml.Node) *dependencyChecker {
	c := &dependencyChecker{mode: mode, seen: make(map[string]bool)}
	if mode == DependencyDeclared {
		c.all = make(map[string]bool)
		for _, task := range tasks.Content {
			if id, ok := taskID(task); ok {
				c.all[id] = true
			}
		}
	}
	return c
}

// declare records id and reports whether it was already declared.
func (c *dependencyChecker) declare(id string) (duplicate bool) {
	if c.seen[id] {
		return true
	}
	c.seen[id] = true
	return false
}

func (c *dependencyChecker) known(id string) bool {
	if c.mode == DependencyDeclared {
		return c.all[id]
	}
	return c.seen[id]
}

// check reports every entry of deps that does not resolve to a task.
// Dependency lists that are not sequences are ignored.
func (c *dependencyChecker) check(path string, deps *yaml.Node) []Violation {
	if !plan.IsSequence(deps) {
		return nil
	}

	var violations []Violation
	for j, dep := range deps.Content {
		depPath := fmt.Sprintf("%s[%d]", path, j)
		id, ok := plan.ScalarValue(dep)
		if !ok {
			violations = append(violations, at(dep, depPath, "dependency must be a task id"))
			continue
		}
		if c.known(id) {
			continue
		}
		msg := fmt.Sprintf("dependency %q does not match any task", id)
		if c.mode == DependencyOrdered {
			msg = fmt.Sprintf("dependency %q does not match any task declared before it", id)
		}
		violations = append(violations, at(dep, depPath, msg))
	}
	return violations
}

func taskID(task *yaml.Node) (string, bool) {
	idNode := plan.Lookup(task, "id")
	if !plan.Present(idNode) {
		return "", false
	}
	return plan.ScalarValue(idNode)
}
