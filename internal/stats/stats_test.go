package stats

import (
	"testing"
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEmptyCollectionHasZeroPercentages(t *testing.T) {
	s := Summarize(nil, time.Now())

	assert.Zero(t, s.Total)
	assert.Equal(t, Rates{}, s.Rates)
	for _, d := range []Distribution{s.Categories, s.Priorities, s.Statuses} {
		for _, b := range d {
			assert.Zero(t, b.Count, b.Label)
			assert.Zero(t, b.Percent, b.Label)
		}
	}
	assert.Len(t, s.Categories, len(model.Categories))
	assert.Len(t, s.Priorities, len(model.Priorities))
}

func TestDistributions(t *testing.T) {
	tasks := model.Collection{
		{Category: model.CategoryWork, Priority: model.PriorityUrgent, Status: model.StatusCompleted},
		{Category: model.CategoryWork, Priority: model.PriorityLow, Status: model.StatusPending},
		{Category: model.CategoryHealth, Priority: model.PriorityLow, Status: model.StatusInProgress},
		{Category: model.CategoryOther, Priority: model.PriorityLow, Status: model.StatusPending},
	}

	cats := ByCategory(tasks)
	assert.Equal(t, "Work", cats[0].Label)
	assert.Equal(t, 2, cats.Count("Work"))
	assert.InDelta(t, 50.0, cats.Percent("Work"), 1e-9)
	assert.Equal(t, 0, cats.Count("Shopping"))
	assert.Equal(t, 2, cats.Max())

	pris := ByPriority(tasks)
	assert.Equal(t, []string{"Urgent", "High", "Normal", "Low"}, []string{pris[0].Label, pris[1].Label, pris[2].Label, pris[3].Label})
	assert.InDelta(t, 75.0, pris.Percent("Low"), 1e-9)

	rates := CompletionRate(tasks)
	assert.InDelta(t, 25.0, rates.Completed, 1e-9)
	assert.InDelta(t, 25.0, rates.InProgress, 1e-9)
	assert.InDelta(t, 50.0, rates.Pending, 1e-9)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)
	past := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	future := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	tasks := model.Collection{
		{Status: model.StatusPending, DueDate: past},
		{Status: model.StatusCompleted, DueDate: past, TimeSpent: 12.5},
		{Status: model.StatusInProgress, DueDate: future},
		{Status: model.StatusCompleted, DueDate: future, TimeSpent: 30},
	}

	s := Summarize(tasks, now)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Overdue)
	assert.InDelta(t, 42.5, s.MinutesSpent, 1e-9)
	assert.InDelta(t, 50.0, s.Rates.Completed, 1e-9)
}

func TestPercent(t *testing.T) {
	assert.Zero(t, Percent(3, 0))
	assert.InDelta(t, 100.0/3, Percent(1, 3), 1e-9)
}
