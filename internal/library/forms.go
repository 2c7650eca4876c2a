package library

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// NewBook holds the fields accepted when adding a book. Empty Type and Status
// default to physical and to-read.
type NewBook struct {
	Title           string                 `json:"title"`
	Author          string                 `json:"author"`
	Type            entities.BookType      `json:"type"`
	Status          entities.ReadingStatus `json:"status"`
	ISBN            *string                `json:"isbn"`
	Publisher       *string                `json:"publisher"`
	PublicationYear *int                   `json:"publication_year"`
	Pages           *int                   `json:"pages"`
}

func (b *NewBook) normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.ISBN = trimOptional(b.ISBN)
	b.Publisher = trimOptional(b.Publisher)
	if b.Type == "" {
		b.Type = entities.BookTypePhysical
	}
	if b.Status == "" {
		b.Status = entities.StatusToRead
	}
}

func (b NewBook) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(0, 255)),
		validation.Field(&b.Author, validation.Required, validation.Length(0, 255)),
		validation.Field(&b.Type, validation.By(validBookType)),
		validation.Field(&b.Status, validation.By(validStatus)),
		validation.Field(&b.ISBN, validation.Length(0, 20)),
		validation.Field(&b.PublicationYear, validation.By(nonNegative)),
		validation.Field(&b.Pages, validation.By(positive)),
	)
}

// NewNote holds the fields accepted when adding a note.
type NewNote struct {
	BookID     uint              `json:"book_id"`
	Type       entities.NoteType `json:"type"`
	Title      *string           `json:"title"`
	Content    string            `json:"content"`
	PageNumber *int              `json:"page_number"`
}

func (n *NewNote) normalize() {
	n.Content = strings.TrimSpace(n.Content)
	n.Title = trimOptional(n.Title)
	if n.Type == "" {
		n.Type = entities.NoteTypeThought
	}
}

func (n NewNote) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Content, validation.Required),
		validation.Field(&n.Type, validation.By(validNoteType)),
		validation.Field(&n.PageNumber, validation.By(positive)),
	)
}

// BookForm carries the raw text of an add-book form.
type BookForm struct {
	Title           string
	Author          string
	Type            string
	Status          string
	ISBN            string
	Publisher       string
	PublicationYear string
	Pages           string
}

// Parse converts the form into a NewBook. Blank optional fields become nil;
// non-numeric year or pages and unknown type or status are reported together
// as a *apperr.ValidationError.
func (f BookForm) Parse() (NewBook, error) {
	fields := map[string]string{}

	book := NewBook{
		Title:     f.Title,
		Author:    f.Author,
		ISBN:      optionalText(f.ISBN),
		Publisher: optionalText(f.Publisher),
	}

	if text := strings.TrimSpace(f.Type); text != "" {
		t, ok := entities.ParseBookType(text)
		if !ok {
			fields["type"] = "must be one of physical, ebook, audiobook"
		}
		book.Type = t
	}
	if text := strings.TrimSpace(f.Status); text != "" {
		s, ok := entities.ParseReadingStatus(text)
		if !ok {
			fields["status"] = "must be one of to_read, reading, completed, abandoned"
		}
		book.Status = s
	}

	var err error
	if book.PublicationYear, err = optionalNumber(f.PublicationYear); err != nil {
		fields["publication_year"] = err.Error()
	}
	if book.Pages, err = optionalNumber(f.Pages); err != nil {
		fields["pages"] = err.Error()
	}

	if len(fields) > 0 {
		return NewBook{}, &apperr.ValidationError{Fields: fields}
	}
	return book, nil
}

// NoteForm carries the raw text of an add-note form.
type NoteForm struct {
	Type       string
	Title      string
	Content    string
	PageNumber string
}

// Parse converts the form into a NewNote for the given book.
func (f NoteForm) Parse(bookID uint) (NewNote, error) {
	fields := map[string]string{}

	note := NewNote{
		BookID:  bookID,
		Title:   optionalText(f.Title),
		Content: f.Content,
	}
	if text := strings.TrimSpace(f.Type); text != "" {
		t, ok := entities.ParseNoteType(text)
		if !ok {
			fields["type"] = "must be one of review, highlight, thought, quote"
		}
		note.Type = t
	}

	var err error
	if note.PageNumber, err = optionalNumber(f.PageNumber); err != nil {
		fields["page_number"] = err.Error()
	}

	if len(fields) > 0 {
		return NewNote{}, &apperr.ValidationError{Fields: fields}
	}
	return note, nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return optionalText(*s)
}

var errNotNumber = errors.New("must be a number")

func optionalNumber(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, errNotNumber
	}
	return &n, nil
}

func validBookType(value interface{}) error {
	if t, _ := value.(entities.BookType); !t.IsValid() {
		return errors.New("must be one of physical, ebook, audiobook")
	}
	return nil
}

func validStatus(value interface{}) error {
	if s, _ := value.(entities.ReadingStatus); !s.IsValid() {
		return errors.New("must be one of to_read, reading, completed, abandoned")
	}
	return nil
}

func validNoteType(value interface{}) error {
	if t, _ := value.(entities.NoteType); !t.IsValid() {
		return errors.New("must be one of review, highlight, thought, quote")
	}
	return nil
}

func nonNegative(value interface{}) error {
	if n, _ := value.(*int); n != nil && *n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func positive(value interface{}) error {
	if n, _ := value.(*int); n != nil && *n <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}
