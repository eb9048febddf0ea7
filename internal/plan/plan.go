package plan

import "time"

// DateLayout is the calendar format used for metadata and due dates.
const DateLayout = "2006-01-02"

// Document is the typed view of one plan file.
type Document struct {
	Version     string      `yaml:"version"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Metadata    Metadata    `yaml:"metadata"`
	Goals       Goals       `yaml:"goals"`
	Tasks       []Task      `yaml:"tasks"`
	Milestones  []Milestone `yaml:"milestones"`
}

// Metadata records authorship and modification dates.
type Metadata struct {
	CreatedBy    string `yaml:"created_by"`
	CreatedDate  string `yaml:"created_date"`
	LastModified string `yaml:"last_modified"`
}

// Goals groups the primary and secondary goals of a plan.
type Goals struct {
	Primary   []Goal `yaml:"primary"`
	Secondary []Goal `yaml:"secondary"`
}

// All returns primary goals followed by secondary goals.
func (g Goals) All() []Goal {
	all := make([]Goal, 0, len(g.Primary)+len(g.Secondary))
	all = append(all, g.Primary...)
	return append(all, g.Secondary...)
}

// Goal is a planned outcome for the iteration.
type Goal struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      Status   `yaml:"status"`
	Priority    Priority `yaml:"priority"`
}

// Milestone is a checkpoint. Only its status is constrained.
type Milestone struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Status Status `yaml:"status"`
}

// Status is the lifecycle state shared by goals, tasks and milestones.
// Any state may be assigned directly; there is no transition graph.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the recognized statuses in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Done reports whether s counts toward completion. Only completed does.
func (s Status) Done() bool {
	return s == StatusCompleted
}

// Priority ranks goals and tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the recognized priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD date in UTC. Full RFC 3339 timestamps are
// accepted as well.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
