package http

import (
	"context"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/database"
	"github.com/grantgco/reading-library/internal/library"
)

// TaskClient enqueues journal exports and reports task status.
type TaskClient interface {
	EnqueueJournalExport(trigger string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Service  *library.Service
	Database *database.Database

	// Task queue client (optional; export endpoints return 503 without it)
	TaskClient TaskClient

	// ExportSchedule is reported on /health when set
	ExportSchedule ExportSchedule

	Logger *zap.Logger

	// ReadOnly rejects every API request that would change the library
	ReadOnly bool

	// Application info
	Version string
}
