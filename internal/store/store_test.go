package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nissyi-gh/daytrack/internal/lifecycle"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTask(name string, cat model.Category, pri model.Priority) model.Task {
	return model.Task{
		Name:     name,
		Category: cat,
		Priority: pri,
		DueDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
	}
}

// backends returns one fresh instance of every backend for table tests.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	db, err := NewSQLite(filepath.Join(dir, "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Backend{
		"csv":    NewCSVFile(filepath.Join(dir, "tasks.csv")),
		"sqlite": db,
	}
}

func TestLoadMissingStorage(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c, err := b.Load()
			require.NoError(t, err)
			assert.NotNil(t, c)
			assert.Empty(t, c)
		})
	}
}

func TestAddAppendsPendingTask(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)}
			s := NewTaskStore(b, WithClock(clock.Now))

			task := newTask("write report", model.CategoryWork, model.PriorityHigh)
			task.Status = model.StatusCompleted // ignored
			task.TimeSpent = 12
			task.Description = "quarterly, with charts"

			_, err := s.Add(newTask("first", model.CategoryHealth, model.PriorityLow))
			require.NoError(t, err)
			c, err := s.Add(task)
			require.NoError(t, err)
			require.Len(t, c, 2)

			last := c[len(c)-1]
			assert.Equal(t, "write report", last.Name)
			assert.Equal(t, model.StatusPending, last.Status)
			assert.Nil(t, last.StartedAt)
			assert.Nil(t, last.CompletedAt)
			assert.Zero(t, last.TimeSpent)
			assert.Equal(t, clock.t, last.CreatedAt)

			reloaded, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, c, reloaded)
			assert.Equal(t, "first", reloaded[0].Name, "insertion order is preserved")
		})
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)}
			s := NewTaskStore(b, WithClock(clock.Now))

			_, err := s.Add(newTask("gym", model.CategoryHealth, model.PriorityNormal))
			require.NoError(t, err)

			t0 := clock.t.Add(time.Minute)
			clock.Advance(time.Minute)
			c, err := s.UpdateStatus(0, model.StatusInProgress)
			require.NoError(t, err)
			require.NotNil(t, c[0].StartedAt)
			assert.Equal(t, t0, *c[0].StartedAt)

			clock.Advance(10 * time.Minute)
			c, err = s.UpdateStatus(0, model.StatusInProgress)
			require.NoError(t, err)
			assert.Equal(t, t0, *c[0].StartedAt)

			clock.Advance(20 * time.Minute)
			c, err = s.UpdateStatus(0, model.StatusCompleted)
			require.NoError(t, err)
			assert.InDelta(t, 30.0, c[0].TimeSpent, 1e-9)

			clock.Advance(time.Hour)
			c, err = s.UpdateStatus(0, model.StatusCompleted)
			require.NoError(t, err)
			assert.InDelta(t, 30.0, c[0].TimeSpent, 1e-9)

			reloaded, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, model.StatusCompleted, reloaded[0].Status)
			assert.InDelta(t, 30.0, reloaded[0].TimeSpent, 1e-9)
			assert.Equal(t, *c[0].CompletedAt, *reloaded[0].CompletedAt)
		})
	}
}

func TestUpdateStatusOutOfRange(t *testing.T) {
	s := NewTaskStore(NewCSVFile(filepath.Join(t.TempDir(), "tasks.csv")))
	_, err := s.Add(newTask("one", model.CategoryOther, model.PriorityLow))
	require.NoError(t, err)

	_, err = s.UpdateStatus(1, model.StatusCompleted)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.UpdateStatus(-1, model.StatusCompleted)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestUpdateStatusForwardOnlyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	s := NewTaskStore(NewCSVFile(path), WithPolicy(lifecycle.ForwardOnly))

	_, err := s.Add(newTask("one", model.CategoryOther, model.PriorityLow))
	require.NoError(t, err)
	_, err = s.UpdateStatus(0, model.StatusCompleted)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = s.UpdateStatus(0, model.StatusPending)
	assert.ErrorIs(t, err, lifecycle.ErrBackwardTransition)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open("csv", filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	assert.IsType(t, &CSVFile{}, b)

	b, err = Open("sqlite", filepath.Join(dir, "tasks.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	require.NoError(t, b.Close())

	_, err = Open("parquet", filepath.Join(dir, "tasks.parquet"))
	assert.Error(t, err)
}
