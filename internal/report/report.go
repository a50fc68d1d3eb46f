package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/filter"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/stats"
)

const timeLayout = "2006-01-02 15:04"

var statusMark = map[model.Status]string{
	model.StatusPending:    "[ ]",
	model.StatusInProgress: "[~]",
	model.StatusCompleted:  "[x]",
}

// Line renders one task as a single Markdown list item.
func Line(t model.Task, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- %s %s (%s, %s) due %s",
		statusMark[t.Status], t.Name, t.Category, t.Priority, t.DueDate.Format(model.DateLayout)))

	if t.ScheduledStart != nil {
		sb.WriteString(", starts " + t.ScheduledStart.Format(timeLayout))
	}
	switch t.Status {
	case model.StatusCompleted:
		if t.CompletedAt != nil {
			sb.WriteString(fmt.Sprintf(", completed %s, %.1f min", t.CompletedAt.Format(timeLayout), t.TimeSpent))
		}
	case model.StatusInProgress:
		if t.StartedAt != nil {
			sb.WriteString(fmt.Sprintf(", started %s, %.1f min elapsed", t.StartedAt.Format(timeLayout), t.Elapsed(now)))
		}
	}
	if t.IsOverdue(now) {
		sb.WriteString(" OVERDUE")
	}
	return sb.String()
}

func describeCriteria(c filter.Criteria) string {
	if c.IsEmpty() {
		return "all tasks"
	}
	var parts []string
	add := func(label string, set []string) {
		if len(set) > 0 && !slices.Contains(set, filter.All) {
			parts = append(parts, label+": "+strings.Join(set, ", "))
		}
	}
	add("category", c.Categories)
	add("priority", c.Priorities)
	add("status", c.Statuses)
	return strings.Join(parts, "; ")
}

func writeDistribution(sb *strings.Builder, title string, d stats.Distribution) {
	sb.WriteString(fmt.Sprintf("\n### %s\n", title))
	for _, b := range d {
		sb.WriteString(fmt.Sprintf("- %s: %d (%.0f%%)\n", b.Label, b.Count, b.Percent))
	}
}

// Render returns a Markdown report of every task matching the state's filter,
// followed by the aggregate numbers.
func Render(st app.State, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Daily report %s\n\n", now.Format(model.DateLayout)))
	sb.WriteString(fmt.Sprintf("Filter: %s\n\n", describeCriteria(st.Criteria)))

	rows := st.Filtered()
	if len(rows) == 0 {
		sb.WriteString("(no tasks)\n")
	}
	for _, r := range rows {
		sb.WriteString(Line(r.Task, now))
		sb.WriteString("\n")
	}

	sum := st.Summary(now)
	sb.WriteString("\n## Summary\n")
	sb.WriteString(fmt.Sprintf("- Total: %d\n", sum.Total))
	sb.WriteString(fmt.Sprintf("- Completed: %.0f%%\n", sum.Rates.Completed))
	sb.WriteString(fmt.Sprintf("- In Progress: %.0f%%\n", sum.Rates.InProgress))
	sb.WriteString(fmt.Sprintf("- Pending: %.0f%%\n", sum.Rates.Pending))
	sb.WriteString(fmt.Sprintf("- Overdue: %d\n", sum.Overdue))
	sb.WriteString(fmt.Sprintf("- Time spent: %.1f min\n", sum.MinutesSpent))

	writeDistribution(&sb, "By category", sum.Categories)
	writeDistribution(&sb, "By priority", sum.Priorities)

	return sb.String()
}
