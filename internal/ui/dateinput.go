package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/daytrack/internal/model"
)

// dateInput edits a calendar date as three digit-only fields.
type dateInput struct {
	fields [3]textinput.Model // YYYY, MM, DD
	focus  int
	active bool
}

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

func newDateInput() dateInput {
	placeholders := [3]string{"YYYY", "MM", "DD"}
	charLimits := [3]int{4, 2, 2}

	var fields [3]textinput.Model
	for i := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = charLimits[i]
		ti.Width = charLimits[i] + 1
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return dateInput{fields: fields}
}

// Focus activates the input at the year field.
func (d *dateInput) Focus() tea.Cmd {
	d.active = true
	return d.focusField(0)
}

// Blur deactivates every field.
func (d *dateInput) Blur() {
	d.active = false
	for i := range d.fields {
		d.fields[i].Blur()
	}
}

// SetDate fills the fields from t.
func (d *dateInput) SetDate(t time.Time) {
	parts := strings.SplitN(t.Format(model.DateLayout), "-", 3)
	for i := range d.fields {
		d.fields[i].SetValue(parts[i])
	}
}

// IsEmpty reports whether nothing has been typed.
func (d dateInput) IsEmpty() bool {
	for _, f := range d.fields {
		if f.Value() != "" {
			return false
		}
	}
	return true
}

// Value returns the date as YYYY-MM-DD, or "" when nothing was typed.
// A blank year or month is taken from now.
func (d dateInput) Value(now time.Time) (string, error) {
	if d.IsEmpty() {
		return "", nil
	}

	parts := [3]int{now.Year(), int(now.Month()), 0}
	for i, f := range d.fields {
		v := strings.TrimSpace(f.Value())
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("invalid date field %q", v)
		}
		parts[i] = n
	}
	if parts[2] == 0 {
		return "", fmt.Errorf("day is required")
	}

	date := time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, now.Location())
	if date.Year() != parts[0] || int(date.Month()) != parts[1] || date.Day() != parts[2] {
		return "", fmt.Errorf("invalid date: %04d-%02d-%02d", parts[0], parts[1], parts[2])
	}
	return date.Format(model.DateLayout), nil
}

func (d *dateInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// Update moves between fields on "/" and "-", and otherwise edits the
// focused one. Tab is left to the enclosing form.
func (d dateInput) Update(msg tea.Msg) (dateInput, tea.Cmd) {
	if !d.active {
		return d, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "right", "-", "/":
			if d.focus < 2 {
				return d, d.focusField(d.focus + 1)
			}
			return d, nil
		case "left":
			if d.focus > 0 {
				return d, d.focusField(d.focus - 1)
			}
			return d, nil
		case "backspace":
			if d.fields[d.focus].Value() == "" && d.focus > 0 {
				return d, d.focusField(d.focus - 1)
			}
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d dateInput) View() string {
	return d.fields[0].View() + " - " + d.fields[1].View() + " - " + d.fields[2].View()
}
