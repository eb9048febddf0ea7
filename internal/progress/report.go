package progress

import (
	"time"

	"github.com/pablasso/plankit/internal/plan"
)

// Report holds the statistics of one plan document.
type Report struct {
	File    string
	Version string
	Name    string

	Goals      Progress
	Tasks      Progress
	Milestones Progress

	// TaskStatus counts tasks per status category.
	TaskStatus map[string]int
	// Priority counts goals (primary and secondary) and tasks per priority.
	Priority map[string]int

	Upcoming []UpcomingTask
	Blocked  []BlockedTask
}

// Summarize computes the report for one document.
func Summarize(file string, doc plan.Document, now time.Time, horizonDays int) Report {
	goals := doc.Goals.All()

	priority := Distribution(goals, plan.FieldPriority, PriorityCategories())
	for k, n := range Distribution(doc.Tasks, plan.FieldPriority, PriorityCategories()) {
		priority[k] += n
	}

	return Report{
		File:       file,
		Version:    doc.Version,
		Name:       doc.Name,
		Goals:      Of(goals, StatusOf[plan.Goal]),
		Tasks:      Of(doc.Tasks, StatusOf[plan.Task]),
		Milestones: Of(doc.Milestones, StatusOf[plan.Milestone]),
		TaskStatus: Distribution(doc.Tasks, plan.FieldStatus, StatusCategories()),
		Priority:   priority,
		Upcoming:   Upcoming(doc.Tasks, now, horizonDays),
		Blocked:    Blocked(doc.Tasks),
	}
}

// Totals aggregates reports across documents.
type Totals struct {
	Documents  int
	Goals      Progress
	Tasks      Progress
	Milestones Progress
	Upcoming   int
	Blocked    int
}

// Rollup sums totals and completions across reports. Percentages are
// recomputed from the sums, not averaged.
func Rollup(reports []Report) Totals {
	var t Totals
	for _, r := range reports {
		t.Documents++
		t.Goals = t.Goals.Add(r.Goals)
		t.Tasks = t.Tasks.Add(r.Tasks)
		t.Milestones = t.Milestones.Add(r.Milestones)
		t.Upcoming += len(r.Upcoming)
		t.Blocked += len(r.Blocked)
	}
	return t
}
