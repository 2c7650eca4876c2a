package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/exporters"
	"github.com/grantgco/reading-library/internal/library"
)

// ErrExportNotConfigured is returned for Export when no exporter is set.
var ErrExportNotConfigured = errors.New("journal export is not configured: set EXPORT_DIR")

// JournalExporter writes the reading journal for the whole library.
type JournalExporter interface {
	ExportAll() (exporters.ExportResult, error)
}

// Result is the outcome of a dispatched command. Value holds the payload for
// the command's kind:
//
//	AddBook              *entities.Book
//	ListBooks            []entities.Book
//	ShowBook             *entities.Book (with sessions and notes)
//	UpdateStatus         *entities.Book
//	DeleteBook           bool (false when the book was already gone)
//	ListAuthors          []string
//	StartSession         *entities.ReadingSession
//	EndSession           SessionEnd
//	ListSessions         []entities.ReadingSession
//	AddNote              *entities.Note
//	ListNotes            []entities.Note
//	DeleteNote           bool
//	ParseDate            DateInfo
//	Export               exporters.ExportResult
type Result struct {
	Kind Kind
	Outcome[any]
}

// Dispatcher runs commands against the library service.
type Dispatcher struct {
	service   *library.Service
	confirmer Confirmer
	exporter  JournalExporter
	logger    *zap.Logger
}

type DispatcherOption func(*Dispatcher)

// WithConfirmer sets how destructive commands are confirmed. Without one,
// unconfirmed deletes are cancelled.
func WithConfirmer(c Confirmer) DispatcherOption {
	return func(d *Dispatcher) {
		d.confirmer = c
	}
}

func WithExporter(e JournalExporter) DispatcherOption {
	return func(d *Dispatcher) {
		d.exporter = e
	}
}

func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func NewDispatcher(service *library.Service, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		service: service,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs cmd and returns its result.
func (d *Dispatcher) Dispatch(cmd Command) (Result, error) {
	d.logger.Debug("dispatching command", zap.String("kind", string(cmd.Kind())))

	var (
		value any
		err   error
	)

	switch c := cmd.(type) {
	case AddBook:
		value, err = d.addBook(c)
	case ListBooks:
		value, err = d.listBooks(c)
	case ShowBook:
		value, err = d.service.GetBookDetail(c.BookID)
	case UpdateStatus:
		value, err = d.updateStatus(c)
	case DeleteBook:
		return d.deleteBook(c)
	case ListAuthors:
		if c.Query != "" {
			value, err = d.service.SuggestAuthors(c.Query)
		} else {
			value, err = d.service.ListUniqueAuthors()
		}
	case StartSession:
		value, err = d.service.StartSession(c.BookID, c.DateText)
	case EndSession:
		var end SessionEnd
		end.Session, end.Ended, err = d.service.EndSession(c.BookID, c.Request)
		value = end
	case ListSessions:
		value, err = d.service.ListSessions(c.BookID)
	case AddNote:
		value, err = d.addNote(c)
	case ListNotes:
		value, err = d.service.ListNotes(c.BookID)
	case DeleteNote:
		value, err = d.service.DeleteNote(c.NoteID)
	case ParseDate:
		value = d.parseDate(c)
	case Export:
		value, err = d.export()
	default:
		return Result{}, fmt.Errorf("unknown command %T", cmd)
	}

	if err != nil {
		return Result{Kind: cmd.Kind()}, err
	}
	return Result{Kind: cmd.Kind(), Outcome: Done(value)}, nil
}

func (d *Dispatcher) addBook(c AddBook) (*entities.Book, error) {
	input, err := c.Form.Parse()
	if err != nil {
		return nil, err
	}
	return d.service.AddBook(input)
}

func (d *Dispatcher) listBooks(c ListBooks) ([]entities.Book, error) {
	switch {
	case c.Author != "":
		return d.service.BooksByAuthor(c.Author)
	case c.Query != "":
		return d.service.SearchBooks(c.Query)
	default:
		return d.service.ListBooks()
	}
}

func (d *Dispatcher) updateStatus(c UpdateStatus) (*entities.Book, error) {
	status, ok := entities.ParseReadingStatus(c.Status)
	if !ok {
		return nil, apperr.NewValidationError("status", "must be one of to_read, reading, completed, abandoned")
	}
	if err := d.service.UpdateBookStatus(c.BookID, status); err != nil {
		return nil, err
	}
	return d.service.GetBook(c.BookID)
}

func (d *Dispatcher) deleteBook(c DeleteBook) (Result, error) {
	result := Result{Kind: c.Kind()}

	book, err := d.service.GetBook(c.BookID)
	if err != nil {
		return result, err
	}

	if !c.Confirmed {
		if d.confirmer == nil {
			result.Outcome = Cancelled[any]()
			return result, nil
		}
		prompt := fmt.Sprintf("Delete %q by %s with all its sessions and notes?", book.Title, book.Author)
		answer, err := d.confirmer.Confirm(prompt)
		if err != nil {
			return result, err
		}
		if answer.Cancelled || !answer.Value {
			d.logger.Debug("book deletion cancelled", zap.Uint("book_id", c.BookID))
			result.Outcome = Cancelled[any]()
			return result, nil
		}
	}

	deleted, err := d.service.DeleteBook(c.BookID)
	if err != nil {
		return result, err
	}
	result.Outcome = Done[any](deleted)
	return result, nil
}

func (d *Dispatcher) addNote(c AddNote) (*entities.Note, error) {
	input, err := c.Form.Parse(c.BookID)
	if err != nil {
		return nil, err
	}
	return d.service.AddNote(input)
}

func (d *Dispatcher) parseDate(c ParseDate) DateInfo {
	info := DateInfo{Input: c.Text}
	parsed, ok := d.service.ParseDate(c.Text)
	if !ok {
		return info
	}
	info.Valid = true
	info.Date = dates.FormatISO(parsed)
	info.Display = d.service.FormatDate(parsed)
	return info
}

func (d *Dispatcher) export() (exporters.ExportResult, error) {
	if d.exporter == nil {
		return exporters.ExportResult{}, ErrExportNotConfigured
	}
	return d.exporter.ExportAll()
}
