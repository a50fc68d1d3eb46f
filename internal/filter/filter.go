// Package filter narrows a task collection by category, priority and status.
package filter

import (
	"slices"

	"github.com/nissyi-gh/daytrack/internal/model"
)

// All disables filtering on the dimension it appears in.
const All = "All"

// Criteria holds one set of acceptable values per dimension. A task must
// match every dimension; within a dimension any listed value matches.
type Criteria struct {
	Categories []string
	Priorities []string
	Statuses   []string
}

// None returns criteria that let every task through.
func None() Criteria {
	return Criteria{
		Categories: []string{All},
		Priorities: []string{All},
		Statuses:   []string{All},
	}
}

// IsEmpty reports whether c restricts nothing.
func (c Criteria) IsEmpty() bool {
	return unrestricted(c.Categories) && unrestricted(c.Priorities) && unrestricted(c.Statuses)
}

// unrestricted is true when the set contains All or is empty. Presence of All
// wins over any other values listed alongside it.
func unrestricted(set []string) bool {
	return len(set) == 0 || slices.Contains(set, All)
}

func accepts(set []string, v string) bool {
	return unrestricted(set) || slices.Contains(set, v)
}

// Match reports whether t satisfies c.
func (c Criteria) Match(t model.Task) bool {
	return accepts(c.Categories, string(t.Category)) &&
		accepts(c.Priorities, string(t.Priority)) &&
		accepts(c.Statuses, string(t.Status))
}

// Apply returns the tasks matching c in their original order.
func Apply(tasks model.Collection, c Criteria) model.Collection {
	out := model.Collection{}
	for _, t := range tasks {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Indices returns the positions in tasks of every match, ascending.
func Indices(tasks model.Collection, c Criteria) []int {
	out := []int{}
	for i, t := range tasks {
		if c.Match(t) {
			out = append(out, i)
		}
	}
	return out
}

// Options lists the choices offered for each dimension: All, then the
// category and priority values present in tasks in first-seen order.
// Statuses are always offered in full.
func Options(tasks model.Collection) (categories, priorities, statuses []string) {
	categories = []string{All}
	priorities = []string{All}
	for _, t := range tasks {
		if !slices.Contains(categories, string(t.Category)) {
			categories = append(categories, string(t.Category))
		}
		if !slices.Contains(priorities, string(t.Priority)) {
			priorities = append(priorities, string(t.Priority))
		}
	}
	statuses = []string{All}
	for _, s := range model.Statuses {
		statuses = append(statuses, string(s))
	}
	return categories, priorities, statuses
}
