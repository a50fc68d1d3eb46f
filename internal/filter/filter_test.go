package filter

import (
	"testing"

	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/stretchr/testify/assert"
)

func sample() model.Collection {
	return model.Collection{
		{Name: "t0", Category: model.CategoryWork, Priority: model.PriorityUrgent, Status: model.StatusPending},
		{Name: "t1", Category: model.CategoryHealth, Priority: model.PriorityLow, Status: model.StatusCompleted},
		{Name: "t2", Category: model.CategoryWork, Priority: model.PriorityNormal, Status: model.StatusInProgress},
		{Name: "t3", Category: model.CategoryShopping, Priority: model.PriorityUrgent, Status: model.StatusPending},
		{Name: "t4", Category: model.CategoryWork, Priority: model.PriorityUrgent, Status: model.StatusCompleted},
	}
}

func names(c model.Collection) []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = t.Name
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"all", None(), []string{"t0", "t1", "t2", "t3", "t4"}},
		{"empty sets", Criteria{}, []string{"t0", "t1", "t2", "t3", "t4"}},
		{"work only", Criteria{Categories: []string{"Work"}, Priorities: []string{All}, Statuses: []string{All}}, []string{"t0", "t2", "t4"}},
		{"or within dimension", Criteria{Categories: []string{"Health", "Shopping"}}, []string{"t1", "t3"}},
		{"and across dimensions", Criteria{Categories: []string{"Work"}, Priorities: []string{"Urgent"}, Statuses: []string{"Completed"}}, []string{"t4"}},
		{"All wins over siblings", Criteria{Categories: []string{"Health", All}}, []string{"t0", "t1", "t2", "t3", "t4"}},
		{"no match", Criteria{Statuses: []string{"Pending"}, Categories: []string{"Health"}}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(Apply(sample(), tc.criteria)))
		})
	}
}

func TestIndices(t *testing.T) {
	c := Criteria{Priorities: []string{"Urgent"}}
	assert.Equal(t, []int{0, 3, 4}, Indices(sample(), c))
	assert.Equal(t, []int{}, Indices(nil, c))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, None().IsEmpty())
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Statuses: []string{"Pending"}}.IsEmpty())
}

func TestOptions(t *testing.T) {
	cats, pris, stats := Options(sample())
	assert.Equal(t, []string{All, "Work", "Health", "Shopping"}, cats)
	assert.Equal(t, []string{All, "Urgent", "Low", "Normal"}, pris)
	assert.Equal(t, []string{All, "Pending", "In Progress", "Completed"}, stats)

	cats, _, _ = Options(nil)
	assert.Equal(t, []string{All}, cats)
}
