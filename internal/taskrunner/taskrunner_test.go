package taskrunner

import (
	"context"
	"testing"
	"time"

	"clip-automator/internal/appcore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequiresTaskId(t *testing.T) {
	runner := New(nil, DefaultConfig())
	defer runner.Close()

	_, err := runner.Submit(context.Background(), appcore.JobRequest{})
	assert.Error(t, err)
}

func TestSubmitAfterCloseRejected(t *testing.T) {
	runner := New(nil, DefaultConfig())
	runner.Close()

	_, err := runner.Submit(context.Background(), appcore.JobRequest{TaskId: "t1"})
	assert.ErrorIs(t, err, ErrRunnerStopped)

	assert.ErrorIs(t, runner.Dispatch(appcore.JobRequest{TaskId: "t2"}), ErrRunnerStopped)
}

func TestNormalizeConfigDefaults(t *testing.T) {
	cfg := normalizeConfig(Config{})
	assert.Equal(t, defaultQueueSize, cfg.QueueSize)
	assert.Equal(t, defaultConcurrency, cfg.Concurrency)

	cfg = normalizeConfig(Config{QueueSize: 2, Concurrency: 1})
	assert.Equal(t, 2, cfg.QueueSize)
	assert.Equal(t, 1, cfg.Concurrency)
}

// Without a database any job fails at the task lookup; the handle must
// still deliver a terminal result and close its channels.
func TestFailedJobReportsResult(t *testing.T) {
	runner := New(nil, Config{QueueSize: 4, Concurrency: 1})
	defer runner.Close()

	handle, err := runner.Submit(context.Background(), appcore.JobRequest{TaskId: "missing_task"})
	require.NoError(t, err)
	assert.Equal(t, "missing_task", handle.ID())

	select {
	case result := <-handle.Result():
		assert.Equal(t, appcore.JobStageFailed, result.Stage)
		assert.Error(t, result.Err)
		assert.Equal(t, "missing_task", result.TaskId)
	case <-time.After(5 * time.Second):
		t.Fatal("job result not delivered")
	}

	sawTerminal := false
	for event := range handle.Events() {
		if event.Stage.IsTerminal() {
			sawTerminal = true
		}
	}
	assert.True(t, sawTerminal, "terminal stage event expected before channel close")
}

func TestPendingCountsQueuedJobs(t *testing.T) {
	runner := New(nil, DefaultConfig())
	defer runner.Close()

	assert.Equal(t, 0, runner.Pending())
}
