package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/model"
)

var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityUrgent: lipgloss.Color("#ff4b4b"),
	model.PriorityHigh:   lipgloss.Color("#ffa07a"),
	model.PriorityNormal: lipgloss.Color("#90ee90"),
	model.PriorityLow:    lipgloss.Color("#add8e6"),
}

// priorityColor falls back to black for values outside the known set.
func priorityColor(p model.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return lipgloss.Color("#000000")
}

var statusMarks = map[model.Status]string{
	model.StatusPending:    "[ ]",
	model.StatusInProgress: "[~]",
	model.StatusCompleted:  "[x]",
}

// TaskItem wraps one visible row to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Row app.Row
	Now time.Time
}

func (i TaskItem) Title() string {
	t := i.Row.Task
	dueMark := ""
	if t.IsOverdue(i.Now) {
		dueMark = "⚠️ "
	} else if t.IsScheduledToday(i.Now) && t.Status == model.StatusPending {
		dueMark = "⏰ "
	} else if t.IsDueToday(i.Now) {
		dueMark = "📅 "
	}
	bar := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render("▌")
	return fmt.Sprintf("%s%s %s%s", bar, statusMarks[t.Status], dueMark, t.Name)
}

// Description shows the timing line: completion and time spent, or start
// and time elapsed, falling back to category and due date.
func (i TaskItem) Description() string {
	t := i.Row.Task
	base := fmt.Sprintf("  %s · due %s", t.Category, t.DueDate.Format(model.DateLayout))
	switch t.Status {
	case model.StatusCompleted:
		if t.CompletedAt != nil {
			return fmt.Sprintf("  ✅ %s · %.1f min", t.CompletedAt.Format("2006-01-02 15:04"), t.TimeSpent)
		}
	case model.StatusInProgress:
		if t.StartedAt != nil {
			return fmt.Sprintf("  🚀 %s · %.1f min elapsed", t.StartedAt.Format("2006-01-02 15:04"), t.Elapsed(i.Now))
		}
	}
	return base
}

func (i TaskItem) FilterValue() string {
	return i.Row.Task.Name
}
