package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
)

// Columns is the stored schema, in write order.
var Columns = []string{
	"name",
	"category",
	"priority",
	"due_date",
	"scheduled_start",
	"description",
	"status",
	"created_at",
	"started_at",
	"completed_at",
	"time_spent",
}

// readLayouts are tried in order when parsing stored timestamps. Files written
// by other tools may carry fractional seconds or an ISO "T" separator.
var readLayouts = []string{
	model.DateTimeLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	model.DateLayout,
}

// record is one stored row keyed by column name. Absent columns read as "".
type record map[string]string

func isNull(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "null", "none":
		return true
	}
	return false
}

func parseTime(s string) (*time.Time, error) {
	if isNull(s) {
		return nil, nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range readLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateTimeLayout)
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

func encodeTask(t model.Task) record {
	var due string
	if !t.DueDate.IsZero() {
		due = t.DueDate.Format(model.DateLayout)
	}
	var created string
	if !t.CreatedAt.IsZero() {
		created = t.CreatedAt.Format(model.DateTimeLayout)
	}
	return record{
		"name":            t.Name,
		"category":        string(t.Category),
		"priority":        string(t.Priority),
		"due_date":        due,
		"scheduled_start": formatTime(t.ScheduledStart),
		"description":     t.Description,
		"status":          string(t.Status),
		"created_at":      created,
		"started_at":      formatTime(t.StartedAt),
		"completed_at":    formatTime(t.CompletedAt),
		"time_spent":      formatMinutes(t.TimeSpent),
	}
}

func decodeTask(r record) (model.Task, error) {
	var t model.Task
	var err error

	t.Name = r["name"]
	t.Description = r["description"]
	if isNull(t.Description) {
		t.Description = ""
	}
	if t.Category, err = model.ParseCategory(r["category"]); err != nil {
		return model.Task{}, err
	}
	if t.Priority, err = model.ParsePriority(r["priority"]); err != nil {
		return model.Task{}, err
	}

	t.Status = model.StatusPending
	if s := r["status"]; !isNull(s) {
		if t.Status, err = model.ParseStatus(s); err != nil {
			return model.Task{}, err
		}
	}

	due, err := parseTime(r["due_date"])
	if err != nil {
		return model.Task{}, fmt.Errorf("due_date: %w", err)
	}
	if due != nil {
		y, m, d := due.Date()
		t.DueDate = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}

	created, err := parseTime(r["created_at"])
	if err != nil {
		return model.Task{}, fmt.Errorf("created_at: %w", err)
	}
	if created != nil {
		t.CreatedAt = *created
	}

	if t.ScheduledStart, err = parseTime(r["scheduled_start"]); err != nil {
		return model.Task{}, fmt.Errorf("scheduled_start: %w", err)
	}
	if t.StartedAt, err = parseTime(r["started_at"]); err != nil {
		return model.Task{}, fmt.Errorf("started_at: %w", err)
	}
	if t.CompletedAt, err = parseTime(r["completed_at"]); err != nil {
		return model.Task{}, fmt.Errorf("completed_at: %w", err)
	}

	if s := r["time_spent"]; !isNull(s) {
		spent, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return model.Task{}, fmt.Errorf("time_spent: %w", err)
		}
		if !math.IsNaN(spent) {
			t.TimeSpent = spent
		}
	}
	return t, nil
}
