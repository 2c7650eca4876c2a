package exporters

import "github.com/grantgco/reading-library/internal/entities"

// JournalExporter writes a reading journal for the given books.
type JournalExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

// BookSource supplies the books to export, with sessions and notes loaded.
type BookSource interface {
	ListBooksWithActivity() ([]entities.Book, error)
}

type ExportResult struct {
	BooksProcessed    int    `json:"books_processed"`
	SessionsProcessed int    `json:"sessions_processed"`
	NotesProcessed    int    `json:"notes_processed"`
	BooksFailed       int    `json:"books_failed"`
	Directory         string `json:"directory"`
}
