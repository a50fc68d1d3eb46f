// Package stats computes counts and percentages over a task collection.
package stats

import (
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
)

// Bucket is the count for one enumerated value.
type Bucket struct {
	Label   string
	Count   int
	Percent float64
}

// Distribution lists one bucket per enum value, in enum order, zeros included.
type Distribution []Bucket

// Count returns the count recorded for label.
func (d Distribution) Count(label string) int {
	for _, b := range d {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// Percent returns the percentage recorded for label.
func (d Distribution) Percent(label string) float64 {
	for _, b := range d {
		if b.Label == label {
			return b.Percent
		}
	}
	return 0
}

// Max returns the largest count, used to scale bar charts.
func (d Distribution) Max() int {
	m := 0
	for _, b := range d {
		m = max(m, b.Count)
	}
	return m
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

func distribute[T ~string](values []T, tasks model.Collection, field func(model.Task) T) Distribution {
	counts := make(map[T]int, len(values))
	for _, t := range tasks {
		counts[field(t)]++
	}
	d := make(Distribution, len(values))
	for i, v := range values {
		d[i] = Bucket{
			Label:   string(v),
			Count:   counts[v],
			Percent: Percent(counts[v], len(tasks)),
		}
	}
	return d
}

// ByCategory counts tasks per category.
func ByCategory(tasks model.Collection) Distribution {
	return distribute(model.Categories, tasks, func(t model.Task) model.Category { return t.Category })
}

// ByPriority counts tasks per priority, most severe first.
func ByPriority(tasks model.Collection) Distribution {
	return distribute(model.Priorities, tasks, func(t model.Task) model.Priority { return t.Priority })
}

// ByStatus counts tasks per status in workflow order.
func ByStatus(tasks model.Collection) Distribution {
	return distribute(model.Statuses, tasks, func(t model.Task) model.Status { return t.Status })
}

// Rates holds the share of tasks in each status, as percentages.
type Rates struct {
	Completed  float64
	InProgress float64
	Pending    float64
}

// CompletionRate returns the status shares of tasks. An empty collection
// yields zero for every rate.
func CompletionRate(tasks model.Collection) Rates {
	d := ByStatus(tasks)
	return Rates{
		Completed:  d.Percent(string(model.StatusCompleted)),
		InProgress: d.Percent(string(model.StatusInProgress)),
		Pending:    d.Percent(string(model.StatusPending)),
	}
}

// Summary bundles every aggregate the presentation shows.
type Summary struct {
	Total        int
	Overdue      int
	MinutesSpent float64
	Categories   Distribution
	Priorities   Distribution
	Statuses     Distribution
	Rates        Rates
}

// Summarize computes the summary of tasks as of now.
func Summarize(tasks model.Collection, now time.Time) Summary {
	s := Summary{
		Total:      len(tasks),
		Categories: ByCategory(tasks),
		Priorities: ByPriority(tasks),
		Statuses:   ByStatus(tasks),
		Rates:      CompletionRate(tasks),
	}
	for _, t := range tasks {
		if t.IsOverdue(now) {
			s.Overdue++
		}
		s.MinutesSpent += t.TimeSpent
	}
	return s
}
