package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/plankit/internal/progress"
)

// Markdown renders the rollup and per-version summaries as a Markdown
// document generated at now.
func Markdown(reports []progress.Report, totals progress.Totals, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Project progress report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", dateOf(now))

	b.WriteString("## Overall progress\n\n")
	fmt.Fprintf(&b, "- **Goals**: %s\n", fraction(totals.Goals))
	fmt.Fprintf(&b, "- **Tasks**: %s\n\n", fraction(totals.Tasks))

	b.WriteString("## Versions\n\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "### Version %s\n\n", r.Version)
		if r.Name != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Name)
		}
		fmt.Fprintf(&b, "- Goals: %s\n", fraction(r.Goals))
		fmt.Fprintf(&b, "- Tasks: %s\n", fraction(r.Tasks))
		if r.Milestones.Total > 0 {
			fmt.Fprintf(&b, "- Milestones: %s\n", fraction(r.Milestones))
		}
		b.WriteString("\n")

		if len(r.Blocked) > 0 {
			b.WriteString("Blocked tasks:\n\n")
			for _, t := range r.Blocked {
				fmt.Fprintf(&b, "- %s (waiting on %s)\n", t.Title, strings.Join(t.Waiting, ", "))
			}
			b.WriteString("\n")
		}
	}

	if totals.Upcoming > 0 || totals.Blocked > 0 {
		b.WriteString("## Risks\n\n")
		if totals.Upcoming > 0 {
			fmt.Fprintf(&b, "- Upcoming tasks: %d\n", totals.Upcoming)
		}
		if totals.Blocked > 0 {
			fmt.Fprintf(&b, "- Blocked tasks: %d\n", totals.Blocked)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func fraction(p progress.Progress) string {
	return fmt.Sprintf("%d/%d (%.1f%%)", p.Completed, p.Total, p.Percentage)
}
