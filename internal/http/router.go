package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	health := NewHealthController(cfg.Database, cfg.ExportSchedule, cfg.Version)
	books := NewBooksController(cfg.Service, logger)
	sessions := NewSessionsController(cfg.Service, logger)
	notes := NewNotesController(cfg.Service, logger)
	datesController := NewDatesController(cfg.Service)
	export := NewExportController(cfg.TaskClient, logger)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	if cfg.ReadOnly {
		api.Use(ReadOnlyMiddleware())
	}
	{
		api.GET("/books", books.ListBooks)
		api.POST("/books", books.CreateBook)
		api.GET("/books/:id", books.GetBook)
		api.PATCH("/books/:id/status", books.UpdateStatus)
		api.DELETE("/books/:id", books.DeleteBook)

		api.GET("/authors", books.ListAuthors)

		api.GET("/books/:id/sessions", sessions.ListSessions)
		api.POST("/books/:id/sessions", sessions.StartSession)
		api.POST("/books/:id/sessions/end", sessions.EndSession)

		api.GET("/books/:id/notes", notes.ListNotes)
		api.POST("/books/:id/notes", notes.CreateNote)
		api.DELETE("/notes/:id", notes.DeleteNote)

		api.GET("/dates/parse", datesController.Parse)

		api.POST("/export", export.Export)
		api.GET("/tasks/:id", export.GetTaskStatus)
	}

	return router
}
