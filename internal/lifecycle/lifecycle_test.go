package lifecycle

import (
	"testing"
	"time"

	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

func TestApplyInProgressIsIdempotent(t *testing.T) {
	task := model.Task{Status: model.StatusPending}

	require.NoError(t, Apply(&task, model.StatusInProgress, t0, Permissive))
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, t0, *task.StartedAt)

	require.NoError(t, Apply(&task, model.StatusInProgress, t0.Add(time.Hour), Permissive))
	assert.Equal(t, t0, *task.StartedAt, "second entry must not move started_at")
}

func TestApplyCompletedWithoutStart(t *testing.T) {
	task := model.Task{Status: model.StatusPending}

	require.NoError(t, Apply(&task, model.StatusCompleted, t0, Permissive))
	require.NotNil(t, task.CompletedAt)
	assert.Nil(t, task.StartedAt)
	assert.Zero(t, task.TimeSpent)
}

func TestApplyCompletedComputesTimeSpentOnce(t *testing.T) {
	task := model.Task{Status: model.StatusPending}
	t1 := t0.Add(45*time.Minute + 30*time.Second)

	require.NoError(t, Apply(&task, model.StatusInProgress, t0, Permissive))
	require.NoError(t, Apply(&task, model.StatusCompleted, t1, Permissive))
	assert.InDelta(t, 45.5, task.TimeSpent, 1e-9)
	assert.Equal(t, t1, *task.CompletedAt)

	require.NoError(t, Apply(&task, model.StatusCompleted, t1.Add(time.Hour), Permissive))
	assert.InDelta(t, 45.5, task.TimeSpent, 1e-9)
	assert.Equal(t, t1, *task.CompletedAt)
}

func TestApplyReopenKeepsCompletion(t *testing.T) {
	task := model.Task{Status: model.StatusPending}
	t1 := t0.Add(10 * time.Minute)

	require.NoError(t, Apply(&task, model.StatusInProgress, t0, Permissive))
	require.NoError(t, Apply(&task, model.StatusCompleted, t1, Permissive))
	require.NoError(t, Apply(&task, model.StatusInProgress, t1.Add(time.Hour), Permissive))

	assert.Equal(t, model.StatusInProgress, task.Status)
	assert.Equal(t, t0, *task.StartedAt)
	require.NotNil(t, task.CompletedAt)
	assert.InDelta(t, 10.0, task.TimeSpent, 1e-9)

	require.NoError(t, Apply(&task, model.StatusCompleted, t1.Add(2*time.Hour), Permissive))
	assert.InDelta(t, 10.0, task.TimeSpent, 1e-9)
}

func TestApplyPendingOnlyChangesStatus(t *testing.T) {
	started := t0
	task := model.Task{Status: model.StatusInProgress, StartedAt: &started}

	require.NoError(t, Apply(&task, model.StatusPending, t0.Add(time.Hour), Permissive))
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, t0, *task.StartedAt)
	assert.Nil(t, task.CompletedAt)
}

func TestForwardOnlyPolicy(t *testing.T) {
	tests := []struct {
		from, to model.Status
		allowed  bool
	}{
		{model.StatusPending, model.StatusInProgress, true},
		{model.StatusPending, model.StatusCompleted, true},
		{model.StatusInProgress, model.StatusCompleted, true},
		{model.StatusInProgress, model.StatusInProgress, true},
		{model.StatusCompleted, model.StatusInProgress, false},
		{model.StatusInProgress, model.StatusPending, false},
	}

	for _, tc := range tests {
		task := model.Task{Status: tc.from}
		err := Apply(&task, tc.to, t0, ForwardOnly)
		if tc.allowed {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, task.Status)
		} else {
			assert.ErrorIs(t, err, ErrBackwardTransition, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, task.Status, "rejected move must not change status")
		}
	}
}

func TestApplyUnknownStatus(t *testing.T) {
	task := model.Task{Status: model.StatusPending}
	err := Apply(&task, model.Status("Blocked"), t0, Permissive)
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
	assert.Equal(t, model.StatusPending, task.Status)
}

func TestOptions(t *testing.T) {
	assert.Equal(t, model.Statuses, Options(model.StatusCompleted, Permissive))
	assert.Equal(t,
		[]model.Status{model.StatusInProgress, model.StatusCompleted},
		Options(model.StatusInProgress, ForwardOnly))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("forward")
	require.NoError(t, err)
	assert.Equal(t, ForwardOnly, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Permissive, p)

	_, err = ParsePolicy("backward")
	assert.Error(t, err)
}
