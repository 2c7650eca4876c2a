package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// TriggerAPI marks export tasks enqueued through the HTTP API.
const TriggerAPI = "api"

// ExportController queues journal exports on the task queue.
type ExportController struct {
	client TaskClient
	logger *zap.Logger
}

func NewExportController(client TaskClient, logger *zap.Logger) *ExportController {
	return &ExportController{client: client, logger: logger}
}

// Export handles POST /api/export.
func (ec *ExportController) Export(c *gin.Context) {
	if ec.client == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled", Code: "tasks_disabled"})
		return
	}

	taskID, err := ec.client.EnqueueJournalExport(TriggerAPI)
	if err != nil {
		respondInternalError(c, ec.logger, err, "enqueue export")
		return
	}

	respondAccepted(c, "journal export enqueued", gin.H{"task_id": taskID})
}

// GetTaskStatus handles GET /api/tasks/:id
func (ec *ExportController) GetTaskStatus(c *gin.Context) {
	if ec.client == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled", Code: "tasks_disabled"})
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, ec.logger, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
