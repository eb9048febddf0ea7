// Package report renders progress reports as styled console text or
// Markdown.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize/english"
	"github.com/pablasso/plankit/internal/progress"
	"github.com/pablasso/plankit/internal/tui/components"
	"github.com/pablasso/plankit/internal/tui/styles"
)

// DefaultWidth is the line width used when none is configured.
const DefaultWidth = 80

// Console renders reports for a terminal.
type Console struct {
	// Width bounds rules and task titles.
	Width int
	// HorizonDays is shown in the upcoming-tasks heading.
	HorizonDays int
}

// Document writes the section for one plan document.
func (c Console) Document(w io.Writer, r progress.Report) {
	width := c.width()
	bar := components.NewBar(components.DefaultBarWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.TitleStyle.Render(fmt.Sprintf("Plan %s (v%s)", r.File, r.Version)))
	fmt.Fprintf(w, "Name: %s\n", ansi.Truncate(r.Name, width-6, "…"))
	fmt.Fprintln(w, styles.SubtleStyle.Render(strings.Repeat("─", width)))

	c.progressLine(w, bar, "Goals", r.Goals)
	c.progressLine(w, bar, "Tasks", r.Tasks)
	if r.Milestones.Total > 0 {
		c.progressLine(w, bar, "Milestones", r.Milestones)
	}

	if anyCount(r.TaskStatus) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.HeadingStyle.Render("Task status:"))
		for _, status := range progress.StatusCategories() {
			if n := r.TaskStatus[status]; n > 0 {
				fmt.Fprintf(w, "   %s\n", styles.Status(status).Render(fmt.Sprintf("%s: %d", status, n)))
			}
		}
	}

	if anyCount(r.Priority) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.HeadingStyle.Render("Priority:"))
		for _, priority := range progress.PriorityCategories() {
			if n := r.Priority[priority]; n > 0 {
				fmt.Fprintf(w, "   %s\n", styles.Priority(priority).Render(fmt.Sprintf("%s: %d", priority, n)))
			}
		}
	}

	titleWidth := width - 30
	if len(r.Upcoming) > 0 {
		fmt.Fprintln(w)
		heading := fmt.Sprintf("Due within %s:", english.Plural(c.HorizonDays, "day", ""))
		fmt.Fprintln(w, styles.ErrorStyle.Render(heading))
		for _, u := range r.Upcoming {
			line := fmt.Sprintf("   • %s (%s)", ansi.Truncate(u.Title, titleWidth, "…"), DueIn(u.Days))
			fmt.Fprintln(w, styles.ErrorStyle.Render(line))
		}
	}

	if len(r.Blocked) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.ErrorStyle.Render("Blocked:"))
		for _, b := range r.Blocked {
			line := fmt.Sprintf("   • %s (waiting on %s)", ansi.Truncate(b.Title, titleWidth, "…"), english.OxfordWordSeries(b.Waiting, "and"))
			fmt.Fprintln(w, styles.ErrorStyle.Render(line))
		}
	}
}

// Overall writes the rollup across documents.
func (c Console) Overall(w io.Writer, reports []progress.Report, totals progress.Totals) {
	bar := components.NewBar(components.DefaultBarWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.SuccessStyle.Render("Overall progress"))
	fmt.Fprintln(w, styles.SuccessStyle.Render(strings.Repeat("=", c.width())))
	c.progressLine(w, bar, "Goals", totals.Goals)
	c.progressLine(w, bar, "Tasks", totals.Tasks)

	if len(reports) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.InfoStyle.Render("Version comparison:"))
		for _, r := range reports {
			fmt.Fprintf(w, "   v%s: goals %.1f%%, tasks %.1f%%\n", r.Version, r.Goals.Percentage, r.Tasks.Percentage)
		}
	}

	if totals.Upcoming > 0 || totals.Blocked > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.WarningStyle.Render("Risks:"))
		if totals.Upcoming > 0 {
			fmt.Fprintln(w, styles.WarningStyle.Render(fmt.Sprintf("   Upcoming: %s", english.Plural(totals.Upcoming, "task", ""))))
		}
		if totals.Blocked > 0 {
			fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("   Blocked: %s", english.Plural(totals.Blocked, "task", ""))))
		}
	}
}

// Footer writes usage hints.
func (c Console) Footer(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.SubtleStyle.Render("Use --markdown for a Markdown report and --output=<file> to save it."))
}

func (c Console) progressLine(w io.Writer, bar components.Bar, label string, p progress.Progress) {
	fmt.Fprintf(w, "%s %d/%d (%.1f%%)\n", styles.InfoStyle.Render(label+":"), p.Completed, p.Total, p.Percentage)
	fmt.Fprintf(w, "   %s\n", styles.InfoStyle.Render(bar.Render(p.Percentage)))
}

func (c Console) width() int {
	if c.Width <= 0 {
		return DefaultWidth
	}
	return c.Width
}

// DueIn phrases a day count relative to today.
func DueIn(days int) string {
	switch days {
	case 0:
		return "due today"
	case 1:
		return "due tomorrow"
	}
	return "due in " + english.Plural(days, "day", "")
}

func anyCount(counts map[string]int) bool {
	for _, n := range counts {
		if n > 0 {
			return true
		}
	}
	return false
}

// dateOf formats the generation date of a report.
func dateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
