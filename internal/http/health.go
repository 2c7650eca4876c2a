package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grantgco/reading-library/internal/database"
)

type HealthResponse struct {
	Status   string            `json:"status"`
	Time     string            `json:"time"`
	Version  string            `json:"version,omitempty"`
	Checks   map[string]string `json:"checks"`
	Books    int64             `json:"books"`
	ByStatus map[string]int64  `json:"by_status,omitempty"`
	Export   *ExportHealth     `json:"export_schedule,omitempty"`
}

// ExportHealth reports the scheduled journal export.
type ExportHealth struct {
	Running bool       `json:"running"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// ExportSchedule is the view of the export scheduler shown on /health.
type ExportSchedule interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db       *database.Database
	schedule ExportSchedule
	version  string
}

// NewHealthController creates the health endpoint. schedule may be nil when
// scheduled exports are off.
func NewHealthController(db *database.Database, schedule ExportSchedule, version string) *HealthController {
	return &HealthController{
		db:       db,
		schedule: schedule,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	var books int64
	var byStatus map[string]int64

	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if books, _, _, err = h.db.Stats(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if counts, err := h.db.Books.CountByStatus(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
			byStatus = make(map[string]int64, len(counts))
			for s, n := range counts {
				byStatus[string(s)] = n
			}
		}
	} else {
		checks["database"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Checks:   checks,
		Books:    books,
		ByStatus: byStatus,
	}
	if h.schedule != nil {
		health.Export = &ExportHealth{
			Running: h.schedule.IsRunning(),
			NextRun: h.schedule.GetNextRunTime(),
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
