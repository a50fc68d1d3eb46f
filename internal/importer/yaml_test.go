package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*app.Tracker, app.State) {
	t.Helper()
	now := time.Date(2024, 9, 2, 8, 0, 0, 0, time.Local)
	s := store.NewTaskStore(
		store.NewCSVFile(filepath.Join(t.TempDir(), "tasks.csv")),
		store.WithClock(func() time.Time { return now }),
	)
	tr := app.New(s, nil)
	st, err := tr.Start()
	require.NoError(t, err)
	return tr, st
}

func TestImport(t *testing.T) {
	tr, st := setup(t)

	doc := `
tasks:
  - name: Pay rent
    category: Personal
    priority: Urgent
    due_date: "2024-09-05"
  - name: Buy bread
    category: Shopping
  - name: Review PR
    category: Work
    priority: High
    scheduled_start: "14:00"
    description: |
      check the migration
`
	st, n, err := Import(tr, st, []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, st.Tasks, 3)

	assert.Equal(t, "Pay rent", st.Tasks[0].Name)
	assert.Equal(t, time.Date(2024, 9, 5, 0, 0, 0, 0, time.Local), st.Tasks[0].DueDate)
	assert.Equal(t, model.PriorityNormal, st.Tasks[1].Priority, "priority defaults to Normal")
	assert.Equal(t, "check the migration", st.Tasks[2].Description)
	require.NotNil(t, st.Tasks[2].ScheduledStart)
	assert.Equal(t, 14, st.Tasks[2].ScheduledStart.Hour())
	for _, task := range st.Tasks {
		assert.Equal(t, model.StatusPending, task.Status)
	}
}

func TestImportRejectsWholeDocument(t *testing.T) {
	tr, st := setup(t)

	doc := `
tasks:
  - name: fine
    category: Work
  - name: ""
    category: Work
`
	_, n, err := Import(tr, st, []byte(doc))
	assert.ErrorIs(t, err, app.ErrEmptyName)
	assert.Zero(t, n)

	stored, err := tr.Store().Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestImportErrors(t *testing.T) {
	tr, st := setup(t)

	_, _, err := Import(tr, st, []byte("tasks: ["))
	assert.ErrorContains(t, err, "YAML parse error")

	_, _, err = Import(tr, st, []byte("tasks: []"))
	assert.ErrorContains(t, err, "no tasks found")
}
