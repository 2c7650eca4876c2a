package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/exporters"
)

// JournalExporter writes the reading journal for the whole library.
type JournalExporter interface {
	ExportAll() (exporters.ExportResult, error)
}

// ExportJournalTask exports the reading journal. Trigger records who asked
// for it ("schedule", "api", "cli").
type ExportJournalTask struct {
	Trigger string `json:"trigger"`
}

// Config returns the queue configuration for journal export tasks.
func (t ExportJournalTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_journal",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportJournalProcessor creates a processor function for ExportJournalTask.
func ExportJournalProcessor(exporter JournalExporter, logger *zap.Logger) backlite.QueueProcessor[ExportJournalTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task ExportJournalTask) error {
		if exporter == nil {
			return fmt.Errorf("journal exporter not configured")
		}

		result, err := exporter.ExportAll()
		if err != nil {
			return fmt.Errorf("export journal: %w", err)
		}

		logger.Info("journal exported",
			zap.String("trigger", task.Trigger),
			zap.Int("books_processed", result.BooksProcessed),
			zap.Int("books_failed", result.BooksFailed))
		return nil
	}
}

// NewExportJournalQueue creates a backlite queue for journal export tasks.
func NewExportJournalQueue(exporter JournalExporter, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(ExportJournalProcessor(exporter, logger))
}

// EnqueueJournalExport adds one export task and returns its id.
func (c *Client) EnqueueJournalExport(trigger string) (string, error) {
	ids, err := c.Add(ExportJournalTask{Trigger: trigger}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue journal export: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue journal export: no task id returned")
	}
	return ids[0], nil
}
