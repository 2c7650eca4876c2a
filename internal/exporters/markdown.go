package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/utils"
)

// MarkdownExporter writes one markdown journal file per book into ExportDir.
type MarkdownExporter struct {
	ExportDir string
	now       func() time.Time
	logger    *zap.Logger
}

func NewMarkdownExporter(exportDir string, now func() time.Time, logger *zap.Logger) *MarkdownExporter {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkdownExporter{
		ExportDir: exportDir,
		now:       now,
		logger:    logger,
	}
}

func (exporter *MarkdownExporter) ensureDir() error {
	if exporter.ExportDir == "" {
		return fmt.Errorf("export directory is not configured")
	}
	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

// Export writes every book's journal. A book that cannot be written is
// counted as failed and the rest are still exported.
func (exporter *MarkdownExporter) Export(books []entities.Book) (ExportResult, error) {
	result := ExportResult{Directory: exporter.ExportDir}

	if err := exporter.ensureDir(); err != nil {
		return result, err
	}

	exportedAt := exporter.now()
	taken := make(map[string]bool, len(books))

	for i := range books {
		book := &books[i]
		filename := utils.JournalFilename(book.Title, book.Author, book.ID, taken)
		outputPath := filepath.Join(exporter.ExportDir, filename)

		content, err := GenerateJournal(book, exportedAt)
		if err == nil {
			err = os.WriteFile(outputPath, []byte(content), 0644)
		}
		if err != nil {
			exporter.logger.Warn("failed to export book journal",
				zap.Uint("book_id", book.ID),
				zap.String("path", outputPath),
				zap.Error(err))
			result.BooksFailed++
			continue
		}

		result.BooksProcessed++
		result.SessionsProcessed += len(book.Sessions)
		result.NotesProcessed += len(book.Notes)
	}

	return result, nil
}

type journalFrontmatter struct {
	Title     string   `yaml:"title"`
	Author    string   `yaml:"author"`
	Type      string   `yaml:"type"`
	Status    string   `yaml:"status"`
	ISBN      string   `yaml:"isbn,omitempty"`
	Publisher string   `yaml:"publisher,omitempty"`
	Year      int      `yaml:"year,omitempty"`
	Pages     int      `yaml:"pages,omitempty"`
	Added     string   `yaml:"added"`
	Exported  string   `yaml:"exported"`
	Tags      []string `yaml:"tags,flow"`
}

func frontmatterFor(book *entities.Book, exportedAt time.Time) journalFrontmatter {
	fm := journalFrontmatter{
		Title:    book.Title,
		Author:   book.Author,
		Type:     string(book.Type),
		Status:   string(book.Status),
		Added:    dates.FormatISO(book.AddedAt),
		Exported: dates.FormatISO(exportedAt),
		Tags:     []string{"books", "reading-journal"},
	}
	if book.ISBN != nil {
		fm.ISBN = *book.ISBN
	}
	if book.Publisher != nil {
		fm.Publisher = *book.Publisher
	}
	if book.PublicationYear != nil {
		fm.Year = *book.PublicationYear
	}
	if book.Pages != nil {
		fm.Pages = *book.Pages
	}
	return fm
}

// GenerateJournal renders a book's journal: YAML frontmatter, then its
// reading sessions and notes in the order they are loaded.
func GenerateJournal(book *entities.Book, exportedAt time.Time) (string, error) {
	frontmatter, err := yaml.Marshal(frontmatterFor(book, exportedAt))
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var builder strings.Builder

	builder.WriteString("---\n")
	builder.Write(frontmatter)
	builder.WriteString("---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", book.Title)
	fmt.Fprintf(&builder, "*%s* | %s | %s\n\n", book.Author, book.Type.Label(), book.Status.Label())

	builder.WriteString("## Reading Sessions\n\n")
	if len(book.Sessions) == 0 {
		builder.WriteString("_No reading sessions yet._\n\n")
	}
	for _, session := range book.Sessions {
		end := "ongoing"
		if ended, ok := session.Ended(); ok {
			end = dates.Format(ended)
		}
		fmt.Fprintf(&builder, "- %s → %s", dates.Format(session.Started()), end)
		if session.Notes != nil && *session.Notes != "" {
			fmt.Fprintf(&builder, ": %s", strings.ReplaceAll(*session.Notes, "\n", " "))
		}
		builder.WriteString("\n")
	}
	if len(book.Sessions) > 0 {
		builder.WriteString("\n")
	}

	builder.WriteString("## Notes\n\n")
	if len(book.Notes) == 0 {
		builder.WriteString("_No notes yet._\n")
	}
	for _, note := range book.Notes {
		heading := note.Type.Label()
		if note.Title != nil {
			heading = fmt.Sprintf("%s: %s", heading, *note.Title)
		}
		if note.PageNumber != nil {
			heading = fmt.Sprintf("%s (p. %d)", heading, *note.PageNumber)
		}
		fmt.Fprintf(&builder, "> [!%s] %s\n", utils.NoteCalloutType(string(note.Type)), heading)
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(note.Content, "\n", "\n> "))
	}

	return builder.String(), nil
}
