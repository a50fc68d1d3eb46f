package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nissyi-gh/daytrack/internal/lifecycle"
	"github.com/nissyi-gh/daytrack/internal/model"
)

// ErrIndexOutOfRange is returned when a status update addresses a missing row.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Backend persists the whole collection at once.
type Backend interface {
	// Load returns every stored task. A missing file yields an empty collection.
	Load() (model.Collection, error)
	// Save replaces the stored contents with c.
	Save(c model.Collection) error
	Close() error
}

// Open returns the backend for kind ("csv" or "sqlite") rooted at path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case "", "csv":
		return NewCSVFile(path), nil
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}

// TaskStore runs every mutation as a full load-modify-save cycle.
type TaskStore struct {
	backend Backend
	policy  lifecycle.Policy
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithPolicy sets the status transition policy. The default is Permissive.
func WithPolicy(p lifecycle.Policy) Option {
	return func(s *TaskStore) { s.policy = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l *slog.Logger) Option {
	return func(s *TaskStore) { s.logger = l }
}

// NewTaskStore wraps b.
func NewTaskStore(b Backend, opts ...Option) *TaskStore {
	s := &TaskStore{
		backend: b,
		policy:  lifecycle.Permissive,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the transition policy in effect.
func (s *TaskStore) Policy() lifecycle.Policy {
	return s.policy
}

// Now returns the store's current time.
func (s *TaskStore) Now() time.Time {
	return s.now()
}

// Load returns the full collection.
func (s *TaskStore) Load() (model.Collection, error) {
	c, err := s.backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return c, nil
}

// Save overwrites the stored collection with c.
func (s *TaskStore) Save(c model.Collection) (model.Collection, error) {
	if err := s.backend.Save(c); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}
	return c, nil
}

// Add appends t as a fresh Pending task and returns the updated collection.
// The caller is responsible for validating the name.
func (s *TaskStore) Add(t model.Task) (model.Collection, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}

	t.Status = model.StatusPending
	t.CreatedAt = s.now().Truncate(time.Second)
	t.StartedAt = nil
	t.CompletedAt = nil
	t.TimeSpent = 0

	c = append(c, t)
	if _, err := s.Save(c); err != nil {
		return nil, err
	}
	s.logger.Info("task added", "index", len(c)-1, "name", t.Name, "category", t.Category, "priority", t.Priority)
	return c, nil
}

// UpdateStatus sets the status of the task at index and records its timing.
func (s *TaskStore) UpdateStatus(index int, status model.Status) (model.Collection, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(c) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(c))
	}

	from := c[index].Status
	if err := lifecycle.Apply(&c[index], status, s.now().Truncate(time.Second), s.policy); err != nil {
		return nil, fmt.Errorf("update task %d: %w", index, err)
	}
	if _, err := s.Save(c); err != nil {
		return nil, err
	}
	s.logger.Info("task status changed", "index", index, "from", from, "to", status, "time_spent", c[index].TimeSpent)
	return c, nil
}

// Close releases the backend.
func (s *TaskStore) Close() error {
	return s.backend.Close()
}
