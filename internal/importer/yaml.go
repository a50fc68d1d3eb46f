package importer

import (
	"errors"
	"fmt"

	"github.com/nissyi-gh/daytrack/internal/app"
	"gopkg.in/yaml.v3"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Name           string `yaml:"name"`
	Category       string `yaml:"category"`
	Priority       string `yaml:"priority"`
	DueDate        string `yaml:"due_date,omitempty"`
	ScheduledStart string `yaml:"scheduled_start,omitempty"`
	Description    string `yaml:"description,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Parse decodes and validates every task without writing anything.
func Parse(t *app.Tracker, data []byte) ([]app.NewTask, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return nil, errors.New("no tasks found in YAML")
	}

	now := t.Now()
	out := make([]app.NewTask, 0, len(input.Tasks))
	for i, yt := range input.Tasks {
		if yt.Category == "" {
			yt.Category = "Other"
		}
		if yt.Priority == "" {
			yt.Priority = "Normal"
		}
		n := app.NewTask{
			Name:           yt.Name,
			Category:       yt.Category,
			Priority:       yt.Priority,
			DueDate:        yt.DueDate,
			ScheduledStart: yt.ScheduledStart,
			Description:    yt.Description,
		}
		if _, err := n.Validate(now); err != nil {
			return nil, fmt.Errorf("task %d (%q): %w", i+1, yt.Name, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Import parses a YAML document and adds its tasks in order.
// Validation happens up front, so a bad entry means nothing is added.
// Returns the updated state and the number of tasks created.
func Import(t *app.Tracker, st app.State, data []byte) (app.State, int, error) {
	tasks, err := Parse(t, data)
	if err != nil {
		return st, 0, err
	}

	count := 0
	for _, n := range tasks {
		next, err := t.Submit(st, n)
		if err != nil {
			return st, count, fmt.Errorf("add task %q: %w", n.Name, err)
		}
		st = next
		count++
	}
	return st, count, nil
}
