package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/library"
)

// SessionsController exposes the reading session lifecycle.
type SessionsController struct {
	service *library.Service
	logger  *zap.Logger
}

func NewSessionsController(service *library.Service, logger *zap.Logger) *SessionsController {
	return &SessionsController{service: service, logger: logger}
}

// StartSessionRequest is the optional body of POST /api/books/:id/sessions.
// A blank date means today.
type StartSessionRequest struct {
	Date string `json:"date"`
}

// EndSessionRequest is the optional body of POST /api/books/:id/sessions/end.
type EndSessionRequest struct {
	Date      string `json:"date"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
}

// EndSessionResponse reports whether a session was closed.
type EndSessionResponse struct {
	Ended   bool                     `json:"ended"`
	Session *entities.ReadingSession `json:"session,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// ListSessions handles GET /api/books/:id/sessions.
func (sc *SessionsController) ListSessions(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sessions, err := sc.service.ListSessions(bookID)
	if err != nil {
		respondLibraryError(c, sc.logger, err, "book", "list sessions")
		return
	}

	respondList(c, sessions)
}

// StartSession handles POST /api/books/:id/sessions.
func (sc *SessionsController) StartSession(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StartSessionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	session, err := sc.service.StartSession(bookID, req.Date)
	if err != nil {
		respondLibraryError(c, sc.logger, err, "book", "start session")
		return
	}

	respondCreated(c, session)
}

// EndSession handles POST /api/books/:id/sessions/end. Ending with nothing
// open is not an error: it answers 200 with ended=false.
func (sc *SessionsController) EndSession(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EndSessionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	session, ended, err := sc.service.EndSession(bookID, library.EndSessionRequest{
		DateText:  req.Date,
		Notes:     req.Notes,
		Completed: req.Completed,
	})
	if err != nil {
		respondLibraryError(c, sc.logger, err, "book", "end session")
		return
	}

	response := EndSessionResponse{Ended: ended, Session: session}
	if !ended {
		response.Message = "no open reading session"
	}
	c.JSON(http.StatusOK, response)
}
