package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownPriority = errors.New("unknown priority")
	ErrUnknownStatus   = errors.New("unknown status")
)

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// ParseCategory validates s against the known categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Priority is ordered by severity: Urgent first.
type Priority string

const (
	PriorityUrgent Priority = "Urgent"
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority from most to least severe.
var Priorities = []Priority{
	PriorityUrgent,
	PriorityHigh,
	PriorityNormal,
	PriorityLow,
}

// Rank returns the severity position (0 = Urgent), or -1 for unknown values.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// ParsePriority validates s against the known priorities.
func ParsePriority(s string) (Priority, error) {
	if p := Priority(s); p.Rank() >= 0 {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// Status is the lifecycle stage of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
}

// Step returns the workflow position (0 = Pending), or -1 for unknown values.
func (s Status) Step() int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return -1
}

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	if st := Status(s); st.Step() >= 0 {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}
