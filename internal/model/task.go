package model

import "time"

const (
	// DateLayout is the on-disk format for calendar dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the on-disk format for timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Task represents a single tracked unit of work.
type Task struct {
	Name           string
	Category       Category
	Priority       Priority
	DueDate        time.Time
	ScheduledStart *time.Time
	Description    string
	Status         Status
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	// TimeSpent is in minutes. It is set once, when the task is first completed.
	TimeSpent float64
}

// Collection is the ordered task list. Tasks are addressed by position.
type Collection []Task

// Clone returns a copy that shares no slice storage with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Elapsed returns minutes since the task was started, or 0 if it never was.
func (t Task) Elapsed(now time.Time) float64 {
	if t.StartedAt == nil {
		return 0
	}
	return now.Sub(*t.StartedAt).Minutes()
}

// IsDueToday returns true if the task's due date is today.
func (t Task) IsDueToday(now time.Time) bool {
	return t.DueDate.Format(DateLayout) == now.Format(DateLayout)
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Format(DateLayout) < now.Format(DateLayout)
}

// IsScheduledToday returns true if the task has a scheduled start today.
func (t Task) IsScheduledToday(now time.Time) bool {
	if t.ScheduledStart == nil {
		return false
	}
	return t.ScheduledStart.Format(DateLayout) == now.Format(DateLayout)
}
