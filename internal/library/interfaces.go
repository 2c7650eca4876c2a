package library

import (
	"time"

	"github.com/grantgco/reading-library/internal/entities"
)

// BookStore persists books. Use this interface when you need the catalogue
// without sessions or notes.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	GetBookWithActivity(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	GetAllBooksWithActivity() ([]entities.Book, error)
	GetBooksByAuthor(author string) ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	UpdateBookStatus(id uint, status entities.ReadingStatus) error
	DeleteBook(id uint) error
	GetUniqueAuthors() ([]string, error)
}

// SessionStore persists reading sessions. Start and End are atomic: they
// update the owning book's status in the same transaction.
type SessionStore interface {
	StartSession(bookID uint, start time.Time) (*entities.ReadingSession, error)
	EndSession(bookID uint, end time.Time, notes string, completed bool) (*entities.ReadingSession, bool, error)
	GetSessionsForBook(bookID uint) ([]entities.ReadingSession, error)
	GetOpenSession(bookID uint) (*entities.ReadingSession, error)
}

// NoteStore persists notes.
type NoteStore interface {
	CreateNote(note *entities.Note) error
	GetNotesForBook(bookID uint) ([]entities.Note, error)
	DeleteNote(id uint) error
}
