// Package progress computes completion statistics for plan documents and
// rolls them up across documents. Every function is a pure fold over
// already-loaded data.
package progress

import (
	"math"
	"time"

	"github.com/pablasso/plankit/internal/plan"
)

// DefaultHorizonDays is how far ahead Upcoming looks by default.
const DefaultHorizonDays = 7

// Progress is a completed-out-of-total count.
type Progress struct {
	Total      int
	Completed  int
	Percentage float64
}

// NewProgress builds a Progress, with a zero percentage when total is zero.
func NewProgress(total, completed int) Progress {
	p := Progress{Total: total, Completed: completed}
	if total > 0 {
		p.Percentage = float64(completed) / float64(total) * 100
	}
	return p
}

// Add sums two progress values and recomputes the percentage.
func (p Progress) Add(o Progress) Progress {
	return NewProgress(p.Total+o.Total, p.Completed+o.Completed)
}

// Of counts items and the ones for which done holds.
func Of[T any](items []T, done func(T) bool) Progress {
	completed := 0
	for _, item := range items {
		if done(item) {
			completed++
		}
	}
	return NewProgress(len(items), completed)
}

// StatusOf returns the completion predicate for any item with a status:
// only completed counts as done.
func StatusOf[T plan.Item](item T) bool {
	status, _ := item.Value(plan.FieldStatus)
	return plan.Status(status).Done()
}

// Distribution counts items whose field value is exactly one of the
// categories. Values outside the categories are dropped silently; that is
// the contract, not an error. Every category is present in the result.
func Distribution[T plan.Item](items []T, field plan.Field, categories []string) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, item := range items {
		value, ok := item.Value(field)
		if !ok {
			continue
		}
		if _, known := counts[value]; known {
			counts[value]++
		}
	}
	return counts
}

// StatusCategories lists the status distribution categories in order.
func StatusCategories() []string {
	out := make([]string, len(plan.Statuses))
	for i, s := range plan.Statuses {
		out[i] = string(s)
	}
	return out
}

// PriorityCategories lists the priority distribution categories in order.
func PriorityCategories() []string {
	out := make([]string, len(plan.Priorities))
	for i, p := range plan.Priorities {
		out[i] = string(p)
	}
	return out
}

// UpcomingTask is a task due within the horizon.
type UpcomingTask struct {
	plan.Task
	// Due is the parsed due date.
	Due time.Time
	// Days is the number of days until due, rounded up.
	Days int
}

// Upcoming returns the unfinished tasks due between now and horizonDays
// days from now, in document order. Days until due are rounded up, so a
// task due today counts as 0 days away.
func Upcoming(tasks []plan.Task, now time.Time, horizonDays int) []UpcomingTask {
	var upcoming []UpcomingTask
	for _, t := range tasks {
		if t.Status.Done() {
			continue
		}
		due, ok := t.Due()
		if !ok {
			continue
		}
		days := daysUntil(now, due)
		if days < 0 || days > horizonDays {
			continue
		}
		upcoming = append(upcoming, UpcomingTask{Task: t, Due: due, Days: days})
	}
	return upcoming
}

func daysUntil(now, due time.Time) int {
	d := math.Ceil(due.Sub(now).Hours() / 24)
	if d == 0 {
		// Avoid -0.
		return 0
	}
	return int(d)
}

// BlockedTask is a task with unfinished dependencies.
type BlockedTask struct {
	plan.Task
	// Waiting lists the dependency ids whose tasks are not completed.
	Waiting []string
}

// Blocked returns the tasks with at least one dependency that resolves to
// an unfinished task. Dependencies on unknown ids do not block.
func Blocked(tasks []plan.Task) []BlockedTask {
	var blocked []BlockedTask
	for _, t := range tasks {
		var waiting []string
		for _, id := range t.Dependencies {
			dep, ok := plan.TaskByID(tasks, id)
			if ok && !dep.Status.Done() {
				waiting = append(waiting, id)
			}
		}
		if len(waiting) > 0 {
			blocked = append(blocked, BlockedTask{Task: t, Waiting: waiting})
		}
	}
	return blocked
}
