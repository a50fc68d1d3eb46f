// Package app maps user actions onto the task store. Each handler performs a
// single store call and returns the next State for rendering.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/store"
)

var (
	ErrEmptyName   = errors.New("task name is required")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// NewTask is an unvalidated submission from a form or the command line.
type NewTask struct {
	Name     string
	Category string
	Priority string
	// DueDate is YYYY-MM-DD. Empty means today.
	DueDate string
	// ScheduledStart is "YYYY-MM-DD HH:MM", or "HH:MM" on the due date. Optional.
	ScheduledStart string
	Description    string
}

// Validate converts n into a task, or reports the first invalid field.
func (n NewTask) Validate(now time.Time) (model.Task, error) {
	name := strings.TrimSpace(n.Name)
	if name == "" {
		return model.Task{}, ErrEmptyName
	}
	cat, err := model.ParseCategory(n.Category)
	if err != nil {
		return model.Task{}, err
	}
	pri, err := model.ParsePriority(n.Priority)
	if err != nil {
		return model.Task{}, err
	}

	y, m, d := now.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if s := strings.TrimSpace(n.DueDate); s != "" {
		due, err = time.ParseInLocation(model.DateLayout, s, time.Local)
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
	}

	t := model.Task{
		Name:        name,
		Category:    cat,
		Priority:    pri,
		DueDate:     due,
		Description: strings.TrimSpace(n.Description),
	}

	if s := strings.TrimSpace(n.ScheduledStart); s != "" {
		if !strings.Contains(s, " ") {
			s = due.Format(model.DateLayout) + " " + s
		}
		start, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidTime, n.ScheduledStart)
		}
		t.ScheduledStart = &start
	}
	return t, nil
}

// Tracker handles user actions against a TaskStore.
type Tracker struct {
	store  *store.TaskStore
	logger *slog.Logger
}

// New returns a Tracker. A nil logger falls back to slog.Default.
func New(s *store.TaskStore, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: s, logger: logger}
}

// Store returns the underlying store.
func (t *Tracker) Store() *store.TaskStore {
	return t.store
}

// Now returns the store clock's current time.
func (t *Tracker) Now() time.Time {
	return t.store.Now()
}

// Start loads the collection into a fresh State.
func (t *Tracker) Start() (State, error) {
	tasks, err := t.store.Load()
	if err != nil {
		return State{}, err
	}
	t.logger.Debug("tasks loaded", "count", len(tasks))
	return NewState(tasks), nil
}

// Reload re-reads storage while keeping filters and page.
func (t *Tracker) Reload(st State) (State, error) {
	tasks, err := t.store.Load()
	if err != nil {
		return st, err
	}
	return st.withTasks(tasks), nil
}

// Submit validates n and adds it. On any error st is returned unchanged and
// nothing is written.
func (t *Tracker) Submit(st State, n NewTask) (State, error) {
	task, err := n.Validate(t.store.Now())
	if err != nil {
		t.logger.Warn("task rejected", "name", n.Name, "error", err)
		return st, err
	}
	tasks, err := t.store.Add(task)
	if err != nil {
		t.logger.Error("add task failed", "error", err)
		return st, err
	}
	return st.withTasks(tasks), nil
}

// SetStatus changes the status of the stored task at index.
func (t *Tracker) SetStatus(st State, index int, status model.Status) (State, error) {
	tasks, err := t.store.UpdateStatus(index, status)
	if err != nil {
		t.logger.Error("update status failed", "index", index, "status", status, "error", err)
		return st, err
	}
	return st.withTasks(tasks), nil
}
