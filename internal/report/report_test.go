package report

import (
	"testing"
	"time"

	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/filter"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 9, 2, 12, 0, 0, 0, time.Local)

func TestLine(t *testing.T) {
	started := now.Add(-30 * time.Minute)
	completed := now.Add(-5 * time.Minute)
	due := time.Date(2024, 9, 1, 0, 0, 0, 0, time.Local)

	pending := model.Task{Name: "Mail", Category: model.CategoryWork, Priority: model.PriorityLow, Status: model.StatusPending, DueDate: due}
	assert.Equal(t, "- [ ] Mail (Work, Low) due 2024-09-01 OVERDUE", Line(pending, now))

	inProgress := model.Task{Name: "Run", Category: model.CategoryHealth, Priority: model.PriorityHigh, Status: model.StatusInProgress, DueDate: now, StartedAt: &started}
	assert.Equal(t, "- [~] Run (Health, High) due 2024-09-02, started 2024-09-02 11:30, 30.0 min elapsed", Line(inProgress, now))

	done := model.Task{Name: "Shop", Category: model.CategoryShopping, Priority: model.PriorityNormal, Status: model.StatusCompleted, DueDate: due, CompletedAt: &completed, TimeSpent: 25}
	assert.Equal(t, "- [x] Shop (Shopping, Normal) due 2024-09-01, completed 2024-09-02 11:55, 25.0 min", Line(done, now))
}

func TestRender(t *testing.T) {
	st := app.NewState(model.Collection{
		{Name: "A", Category: model.CategoryWork, Priority: model.PriorityUrgent, Status: model.StatusCompleted, DueDate: now, TimeSpent: 10},
		{Name: "B", Category: model.CategoryWork, Priority: model.PriorityLow, Status: model.StatusPending, DueDate: now},
		{Name: "C", Category: model.CategoryOther, Priority: model.PriorityLow, Status: model.StatusPending, DueDate: now},
	})
	st = st.WithFilter(filter.Criteria{Categories: []string{"Work"}})

	out := Render(st, now)
	assert.Contains(t, out, "# Daily report 2024-09-02")
	assert.Contains(t, out, "Filter: category: Work")
	assert.Contains(t, out, "- [x] A (Work, Urgent)")
	assert.Contains(t, out, "- [ ] B (Work, Low)")
	assert.NotContains(t, out, "] C (")
	assert.Contains(t, out, "- Total: 2")
	assert.Contains(t, out, "- Completed: 50%")
	assert.Contains(t, out, "- Work: 2 (100%)")
	assert.Contains(t, out, "- Time spent: 10.0 min")
}

func TestRenderEmpty(t *testing.T) {
	out := Render(app.NewState(nil), now)
	assert.Contains(t, out, "Filter: all tasks")
	assert.Contains(t, out, "(no tasks)")
	assert.Contains(t, out, "- Completed: 0%")
}
