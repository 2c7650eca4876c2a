package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/library"
)

type NotesController struct {
	service *library.Service
	logger  *zap.Logger
}

func NewNotesController(service *library.Service, logger *zap.Logger) *NotesController {
	return &NotesController{service: service, logger: logger}
}

// NoteRequest is the body of POST /api/books/:id/notes.
type NoteRequest struct {
	Type       string  `json:"type"`
	Title      *string `json:"title"`
	Content    string  `json:"content"`
	PageNumber *int    `json:"page_number"`
}

// ListNotes handles GET /api/books/:id/notes.
func (nc *NotesController) ListNotes(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notes, err := nc.service.ListNotes(bookID)
	if err != nil {
		respondLibraryError(c, nc.logger, err, "book", "list notes")
		return
	}

	respondList(c, notes)
}

// CreateNote handles POST /api/books/:id/notes.
func (nc *NotesController) CreateNote(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := nc.service.AddNote(library.NewNote{
		BookID:     bookID,
		Type:       parseNoteType(req.Type),
		Title:      req.Title,
		Content:    req.Content,
		PageNumber: req.PageNumber,
	})
	if err != nil {
		respondLibraryError(c, nc.logger, err, "book", "create note")
		return
	}

	respondCreated(c, note)
}

// DeleteNote handles DELETE /api/notes/:id.
func (nc *NotesController) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := nc.service.DeleteNote(id)
	if err != nil {
		respondInternalError(c, nc.logger, err, "delete note")
		return
	}
	if !deleted {
		respondNotFound(c, "note")
		return
	}

	respondSuccess(c, "note deleted")
}
