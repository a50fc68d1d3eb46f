package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/model"
)

type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldPriority
	fieldDueDate
	fieldTime
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Task Name",
	"Category",
	"Priority",
	"Due Date",
	"Start Time",
	"Description",
}

var (
	labelStyle       = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("241"))
	activeLabelStyle = labelStyle.Foreground(lipgloss.Color("170")).Bold(true)
)

// addForm collects the fields of a new task.
type addForm struct {
	focus    formField
	name     textinput.Model
	category int
	priority int
	due      dateInput
	start    textinput.Model
	desc     textarea.Model
}

func newAddForm() addForm {
	name := textinput.New()
	name.Placeholder = "Task name..."
	name.CharLimit = 256

	start := textinput.New()
	start.Placeholder = "HH:MM (optional)"
	start.CharLimit = 5
	start.Width = 18
	start.Validate = func(s string) error {
		for _, r := range s {
			if r != ':' && (r < '0' || r > '9') {
				return fmt.Errorf("HH:MM")
			}
		}
		return nil
	}

	desc := textarea.New()
	desc.Placeholder = "Description..."
	desc.CharLimit = 4096
	desc.SetHeight(4)

	return addForm{
		name:     name,
		priority: model.PriorityNormal.Rank(),
		due:      newDateInput(),
		start:    start,
		desc:     desc,
	}
}

// Open resets the form, pre-filling the due date with today.
func (f *addForm) Open(now time.Time) tea.Cmd {
	*f = newAddForm().withWidth(f.desc.Width())
	f.due.SetDate(now)
	return f.focusField(fieldName)
}

func (f addForm) withWidth(w int) addForm {
	if w > 0 {
		f.desc.SetWidth(w)
		f.name.Width = w
	}
	return f
}

// SetWidth sizes the text fields.
func (f *addForm) SetWidth(w int) {
	*f = f.withWidth(w)
}

func (f *addForm) focusField(field formField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.start.Blur()
	f.due.Blur()
	f.desc.Blur()

	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldDueDate:
		return f.due.Focus()
	case fieldTime:
		return f.start.Focus()
	case fieldDescription:
		return f.desc.Focus()
	}
	return nil
}

// Submission converts the current field values into a NewTask.
func (f addForm) Submission(now time.Time) (app.NewTask, error) {
	due, err := f.due.Value(now)
	if err != nil {
		return app.NewTask{}, err
	}
	return app.NewTask{
		Name:           f.name.Value(),
		Category:       string(model.Categories[f.category]),
		Priority:       string(model.Priorities[f.priority]),
		DueDate:        due,
		ScheduledStart: f.start.Value(),
		Description:    f.desc.Value(),
	}, nil
}

func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// Update handles navigation between fields and edits the focused one.
// Submission and cancel are handled by the caller.
func (f addForm) Update(msg tea.Msg) (addForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			if f.focus == fieldDescription && keyMsg.String() == "down" {
				break
			}
			return f, f.focusField(formField(cycle(int(f.focus), 1, int(fieldCount))))
		case "shift+tab", "up":
			if f.focus == fieldDescription && keyMsg.String() == "up" {
				break
			}
			return f, f.focusField(formField(cycle(int(f.focus), -1, int(fieldCount))))
		case "left", "h", "right", "l", " ":
			delta := 1
			if s := keyMsg.String(); s == "left" || s == "h" {
				delta = -1
			}
			switch f.focus {
			case fieldCategory:
				f.category = cycle(f.category, delta, len(model.Categories))
				return f, nil
			case fieldPriority:
				f.priority = cycle(f.priority, delta, len(model.Priorities))
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDueDate:
		f.due, cmd = f.due.Update(msg)
	case fieldTime:
		f.start, cmd = f.start.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd
}

func renderChoices[T ~string](values []T, selected int, active bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch {
		case i == selected && active:
			parts[i] = confirmStyle.Render("‹" + string(v) + "›")
		case i == selected:
			parts[i] = titleStyle.Render(string(v))
		default:
			parts[i] = statusStyle.Render(string(v))
		}
	}
	return strings.Join(parts, " ")
}

func (f addForm) View() string {
	label := func(field formField) string {
		if f.focus == field {
			return activeLabelStyle.Render(fieldLabels[field])
		}
		return labelStyle.Render(fieldLabels[field])
	}

	var priorities []string
	for i, p := range model.Priorities {
		s := string(p)
		if i == f.priority {
			s = lipgloss.NewStyle().Foreground(priorityColor(p)).Bold(true).Render("‹" + s + "›")
		} else {
			s = statusStyle.Render(s)
		}
		priorities = append(priorities, s)
	}

	rows := []string{
		label(fieldName) + f.name.View(),
		label(fieldCategory) + renderChoices(model.Categories, f.category, f.focus == fieldCategory),
		label(fieldPriority) + strings.Join(priorities, " "),
		label(fieldDueDate) + f.due.View(),
		label(fieldTime) + f.start.View(),
		label(fieldDescription),
		f.desc.View(),
	}
	return strings.Join(rows, "\n")
}
