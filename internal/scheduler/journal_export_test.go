package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	mu       sync.Mutex
	triggers []string
	err      error
}

func (r *recordingEnqueuer) EnqueueJournalExport(trigger string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.triggers = append(r.triggers, trigger)
	return "task-1", nil
}

func (r *recordingEnqueuer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.triggers...)
}

func TestJournalExportScheduler_StartStop(t *testing.T) {
	s := NewJournalExportScheduler("0 * * * *", &recordingEnqueuer{}, nil)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Zero(t, next.Minute())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestJournalExportScheduler_InvalidSchedule(t *testing.T) {
	s := NewJournalExportScheduler("every tuesday", &recordingEnqueuer{}, nil)

	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestJournalExportScheduler_StopsWithContext(t *testing.T) {
	s := NewJournalExportScheduler("*/5 * * * *", &recordingEnqueuer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestJournalExportScheduler_RunExport(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewJournalExportScheduler("0 * * * *", enqueuer, nil)

	s.runExport()

	assert.Equal(t, []string{TriggerSchedule}, enqueuer.calls())
}

func TestJournalExportScheduler_RunExportEnqueueFailure(t *testing.T) {
	enqueuer := &recordingEnqueuer{err: errors.New("queue closed")}
	s := NewJournalExportScheduler("0 * * * *", enqueuer, nil)

	assert.NotPanics(t, s.runExport)
	assert.Empty(t, enqueuer.calls())
}
