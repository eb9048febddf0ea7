package plan

import "time"

// Task is a unit of work inside a plan.
type Task struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Status       Status   `yaml:"status"`
	Priority     Priority `yaml:"priority"`
	Dependencies []string `yaml:"dependencies"`
	DueDate      string   `yaml:"due_date"`
	Assignee     string   `yaml:"assignee"`
}

// Due returns the parsed due date. ok is false when the task has no due
// date or it cannot be parsed.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	return ParseDate(t.DueDate)
}

// TaskByID returns the first task with the given id.
func TaskByID(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
