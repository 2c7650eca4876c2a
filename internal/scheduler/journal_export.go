package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/config"
)

// TriggerSchedule marks export tasks enqueued by the scheduler.
const TriggerSchedule = "schedule"

// ExportEnqueuer queues a journal export.
type ExportEnqueuer interface {
	EnqueueJournalExport(trigger string) (string, error)
}

// JournalExportScheduler enqueues journal exports on a cron schedule.
type JournalExportScheduler struct {
	schedule string
	enqueuer ExportEnqueuer
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewJournalExportScheduler creates a new scheduler instance
func NewJournalExportScheduler(schedule string, enqueuer ExportEnqueuer, logger *zap.Logger) *JournalExportScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalExportScheduler{
		schedule: schedule,
		enqueuer: enqueuer,
		logger:   logger.Named("scheduler"),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the export job and starts the cron runner. It stops when
// ctx is cancelled.
func (s *JournalExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := config.ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runExport)
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("journal export scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *JournalExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.logger.Info("journal export scheduler stopped")
}

func (s *JournalExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next export will be enqueued, or nil when stopped.
func (s *JournalExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *JournalExportScheduler) runExport() {
	taskID, err := s.enqueuer.EnqueueJournalExport(TriggerSchedule)
	if err != nil {
		s.logger.Error("failed to enqueue scheduled journal export", zap.Error(err))
		return
	}
	s.logger.Info("scheduled journal export enqueued", zap.String("task_id", taskID))
}
