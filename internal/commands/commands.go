// Package commands turns user intents into explicit values. Each adapter
// (CLI, interactive prompts) builds a Command and hands it to the Dispatcher,
// which is the only place that maps intents onto library operations.
package commands

import (
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/library"
)

// Kind identifies a command variant.
type Kind string

const (
	KindAddBook      Kind = "add_book"
	KindListBooks    Kind = "list_books"
	KindShowBook     Kind = "show_book"
	KindUpdateStatus Kind = "update_status"
	KindDeleteBook   Kind = "delete_book"
	KindListAuthors  Kind = "list_authors"
	KindStartSession Kind = "start_session"
	KindEndSession   Kind = "end_session"
	KindListSessions Kind = "list_sessions"
	KindAddNote      Kind = "add_note"
	KindListNotes    Kind = "list_notes"
	KindDeleteNote   Kind = "delete_note"
	KindParseDate    Kind = "parse_date"
	KindExport       Kind = "export"
)

// Command is a user intent with its payload.
type Command interface {
	Kind() Kind
}

type AddBook struct {
	Form library.BookForm
}

// ListBooks lists the library. Query searches titles and authors; Author
// filters by exact author. Both empty lists everything.
type ListBooks struct {
	Query  string
	Author string
}

type ShowBook struct {
	BookID uint
}

type UpdateStatus struct {
	BookID uint
	Status string
}

// DeleteBook asks for confirmation unless Confirmed is already set.
type DeleteBook struct {
	BookID    uint
	Confirmed bool
}

// ListAuthors lists every author, or suggestions when Query is set.
type ListAuthors struct {
	Query string
}

type StartSession struct {
	BookID   uint
	DateText string
}

type EndSession struct {
	BookID  uint
	Request library.EndSessionRequest
}

type ListSessions struct {
	BookID uint
}

type AddNote struct {
	BookID uint
	Form   library.NoteForm
}

type ListNotes struct {
	BookID uint
}

type DeleteNote struct {
	NoteID uint
}

type ParseDate struct {
	Text string
}

type Export struct{}

func (AddBook) Kind() Kind      { return KindAddBook }
func (ListBooks) Kind() Kind    { return KindListBooks }
func (ShowBook) Kind() Kind     { return KindShowBook }
func (UpdateStatus) Kind() Kind { return KindUpdateStatus }
func (DeleteBook) Kind() Kind   { return KindDeleteBook }
func (ListAuthors) Kind() Kind  { return KindListAuthors }
func (StartSession) Kind() Kind { return KindStartSession }
func (EndSession) Kind() Kind   { return KindEndSession }
func (ListSessions) Kind() Kind { return KindListSessions }
func (AddNote) Kind() Kind      { return KindAddNote }
func (ListNotes) Kind() Kind    { return KindListNotes }
func (DeleteNote) Kind() Kind   { return KindDeleteNote }
func (ParseDate) Kind() Kind    { return KindParseDate }
func (Export) Kind() Kind       { return KindExport }

// DateInfo is the result of a ParseDate command.
type DateInfo struct {
	Input   string `json:"input"`
	Valid   bool   `json:"valid"`
	Date    string `json:"date,omitempty"`
	Display string `json:"display,omitempty"`
}

// SessionEnd is the result of an EndSession command. Ended is false when the
// book had no open session.
type SessionEnd struct {
	Session *entities.ReadingSession
	Ended   bool
}
