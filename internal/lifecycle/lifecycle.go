// Package lifecycle applies status changes and their timestamp side effects.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
)

// ErrBackwardTransition is returned under ForwardOnly for moves toward Pending.
var ErrBackwardTransition = errors.New("backward status transition")

// Policy decides which status values a task may move to.
type Policy int

const (
	// Permissive allows any transition. Only the timestamp side effects are gated.
	Permissive Policy = iota
	// ForwardOnly allows Pending -> In Progress -> Completed, skipping ahead, and re-entry.
	ForwardOnly
)

// ParsePolicy maps a config value ("any" or "forward") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "any":
		return Permissive, nil
	case "forward":
		return ForwardOnly, nil
	}
	return Permissive, fmt.Errorf("unknown transition policy %q", s)
}

func (p Policy) String() string {
	if p == ForwardOnly {
		return "forward"
	}
	return "any"
}

// Allowed reports whether a task in status from may be set to to.
func (p Policy) Allowed(from, to model.Status) bool {
	if p == Permissive {
		return true
	}
	return to.Step() >= from.Step()
}

// Options returns the statuses a task in current may be set to, in workflow order.
func Options(current model.Status, p Policy) []model.Status {
	var out []model.Status
	for _, s := range model.Statuses {
		if p.Allowed(current, s) {
			out = append(out, s)
		}
	}
	return out
}

// Apply sets the status on t and records timing.
//
// StartedAt and CompletedAt are written only the first time their status is
// entered. TimeSpent is computed together with CompletedAt, and only when
// StartedAt is known; later entries into Completed never recompute it.
func Apply(t *model.Task, to model.Status, now time.Time, p Policy) error {
	if to.Step() < 0 {
		return fmt.Errorf("%w: %q", model.ErrUnknownStatus, to)
	}
	if !p.Allowed(t.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, t.Status, to)
	}

	t.Status = to
	switch to {
	case model.StatusInProgress:
		if t.StartedAt == nil {
			started := now
			t.StartedAt = &started
		}
	case model.StatusCompleted:
		if t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
			if t.StartedAt != nil {
				t.TimeSpent = completed.Sub(*t.StartedAt).Minutes()
			}
		}
	}
	return nil
}
