package app

import (
	"time"

	"github.com/nissyi-gh/daytrack/internal/filter"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/paging"
	"github.com/nissyi-gh/daytrack/internal/stats"
)

// Row is a task together with its position in the stored collection.
type Row struct {
	Index int
	Task  model.Task
}

// State is everything a view needs between two user actions. Handlers take a
// State and return the next one; nothing is kept in package-level variables.
type State struct {
	Tasks    model.Collection
	Criteria filter.Criteria
	Pager    paging.Pager
}

// NewState returns an unfiltered state on page 1 over tasks.
func NewState(tasks model.Collection) State {
	st := State{Criteria: filter.None(), Pager: paging.New(0)}
	return st.withTasks(tasks)
}

func (st State) withTasks(tasks model.Collection) State {
	st.Tasks = tasks
	st.Pager = st.Pager.Resize(len(st.Filtered()))
	return st
}

// Filtered returns every row matching the current criteria.
func (st State) Filtered() []Row {
	idx := filter.Indices(st.Tasks, st.Criteria)
	rows := make([]Row, len(idx))
	for i, j := range idx {
		rows[i] = Row{Index: j, Task: st.Tasks[j]}
	}
	return rows
}

// FilteredTasks returns the matching tasks without their positions.
func (st State) FilteredTasks() model.Collection {
	return filter.Apply(st.Tasks, st.Criteria)
}

// Visible returns the rows on the current page.
func (st State) Visible() []Row {
	rows := st.Filtered()
	start, end := paging.Window(len(rows), st.Pager.Page, st.Pager.PerPage)
	return rows[start:end]
}

// Summary aggregates the filtered tasks.
func (st State) Summary(now time.Time) stats.Summary {
	return stats.Summarize(st.FilteredTasks(), now)
}

// WithFilter applies new criteria and returns to the first page.
func (st State) WithFilter(c filter.Criteria) State {
	st.Criteria = c
	st.Pager = paging.New(len(st.Filtered()))
	return st
}

// NextPage moves forward one page if possible.
func (st State) NextPage() State {
	st.Pager = st.Pager.Next()
	return st
}

// PrevPage moves back one page if possible.
func (st State) PrevPage() State {
	st.Pager = st.Pager.Prev()
	return st
}

// GoToPage jumps to page, clamped to the available range.
func (st State) GoToPage(page int) State {
	st.Pager.Page = paging.Clamp(page, st.Pager.Total())
	return st
}
