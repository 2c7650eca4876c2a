package exporters

import (
	"fmt"

	"go.uber.org/zap"
)

// LibraryMarkdownExporter exports the whole library as a markdown journal.
type LibraryMarkdownExporter struct {
	books            BookSource
	markdownExporter JournalExporter
	logger           *zap.Logger
}

func NewLibraryMarkdownExporter(books BookSource, markdownExporter JournalExporter, logger *zap.Logger) *LibraryMarkdownExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryMarkdownExporter{
		books:            books,
		markdownExporter: markdownExporter,
		logger:           logger,
	}
}

// ExportAll loads every book with its sessions and notes and writes the journal.
func (exporter *LibraryMarkdownExporter) ExportAll() (ExportResult, error) {
	books, err := exporter.books.ListBooksWithActivity()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load books: %w", err)
	}

	result, err := exporter.markdownExporter.Export(books)
	if err != nil {
		return result, fmt.Errorf("failed to export to markdown: %w", err)
	}

	exporter.logger.Info("journal export completed",
		zap.Int("books_processed", result.BooksProcessed),
		zap.Int("sessions_processed", result.SessionsProcessed),
		zap.Int("notes_processed", result.NotesProcessed),
		zap.Int("books_failed", result.BooksFailed),
		zap.String("directory", result.Directory))

	return result, nil
}

var _ JournalExporter = (*MarkdownExporter)(nil)
