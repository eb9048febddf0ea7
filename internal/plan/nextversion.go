package plan

import (
	"fmt"
	"time"

	"github.com/pablasso/plankit/internal/lattice"
	"gopkg.in/yaml.v3"
)

// NextVersion derives the plan for target from src. The copy gets the new
// version, last_modified set to today and, when changes is not empty, a
// changelog note appended to its description. Completed tasks are reset to
// pending; every other value is copied unchanged. src is not modified.
func NextVersion(src *File, target lattice.Version, changes string, today time.Time) (*File, error) {
	next := src.Clone()
	root := next.Root

	setScalar(root, "version", target.String())

	metadata := Lookup(root, "metadata")
	if metadata == nil {
		metadata = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		root.Content = append(root.Content, strNode("metadata"), metadata)
	} else if metadata.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("next version: metadata (line %d) is not a mapping", metadata.Line)
	}
	setScalar(metadata, "last_modified", FormatDate(today))

	if changes != "" {
		description, _ := ScalarValue(Lookup(root, "description"))
		note := fmt.Sprintf("Version %s changes:\n%s", target, changes)
		if description != "" {
			note = description + "\n\n" + note
		}
		setScalar(root, "description", note)
	}

	if tasks := Lookup(root, "tasks"); IsSequence(tasks) {
		for _, task := range tasks.Content {
			task = Resolve(task)
			if !IsMapping(task) {
				continue
			}
			if status, _ := ScalarValue(Lookup(task, string(FieldStatus))); Status(status) == StatusCompleted {
				if err := SetField(task, FieldStatus, string(StatusPending)); err != nil {
					return nil, fmt.Errorf("next version: %w", err)
				}
			}
		}
	}

	next.decode()
	return next, nil
}
