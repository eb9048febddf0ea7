package plan

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField is returned for field names outside the recognized set.
var ErrUnknownField = errors.New("unknown field")

// Field names an item attribute that reports and updates may address.
// The set is closed: lookups by any other name fail with ErrUnknownField.
type Field string

const (
	FieldID       Field = "id"
	FieldTitle    Field = "title"
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldDueDate  Field = "due_date"
)

var fields = []Field{FieldID, FieldTitle, FieldStatus, FieldPriority, FieldDueDate}

// ParseField maps a field name onto the recognized set.
func ParseField(name string) (Field, error) {
	for _, f := range fields {
		if string(f) == strings.TrimSpace(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Item is implemented by goals, tasks and milestones.
type Item interface {
	// Value returns the item's value for f. ok is false when the item
	// type does not carry f.
	Value(f Field) (value string, ok bool)
}

// Value implements Item.
func (g Goal) Value(f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return g.Title, true
	case FieldStatus:
		return string(g.Status), true
	case FieldPriority:
		return string(g.Priority), true
	}
	return "", false
}

// Value implements Item.
func (t Task) Value(f Field) (string, bool) {
	switch f {
	case FieldID:
		return t.ID, true
	case FieldTitle:
		return t.Title, true
	case FieldStatus:
		return string(t.Status), true
	case FieldPriority:
		return string(t.Priority), true
	case FieldDueDate:
		return t.DueDate, true
	}
	return "", false
}

// Value implements Item.
func (m Milestone) Value(f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return m.Title, true
	case FieldStatus:
		return string(m.Status), true
	}
	return "", false
}

// SetField writes value into the mapping node of an item. Existing scalar
// nodes keep their tag and style; missing keys are appended.
func SetField(item *yaml.Node, f Field, value string) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}
	if item == nil || item.Kind != yaml.MappingNode {
		return fmt.Errorf("set %s: item is not a mapping", f)
	}
	setScalar(item, string(f), value)
	return nil
}
