package interfaces

// Compile-time interface implementation checks. A concrete type that drifts
// from the interface it is wired through fails the build here.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/database/books"
	"github.com/grantgco/reading-library/internal/database/notes"
	"github.com/grantgco/reading-library/internal/database/sessions"
	"github.com/grantgco/reading-library/internal/exporters"
	"github.com/grantgco/reading-library/internal/http"
	"github.com/grantgco/reading-library/internal/library"
	"github.com/grantgco/reading-library/internal/scheduler"
	"github.com/grantgco/reading-library/internal/tasks"
)

// =============================================================================
// Library Store
// =============================================================================

var _ library.BookStore = (*books.Repository)(nil)
var _ library.SessionStore = (*sessions.Repository)(nil)
var _ library.NoteStore = (*notes.Repository)(nil)

var _ clock.Clock = (*clock.System)(nil)

// =============================================================================
// Journal Export
// =============================================================================

var _ exporters.BookSource = (*library.Service)(nil)
var _ exporters.JournalExporter = (*exporters.MarkdownExporter)(nil)

var _ tasks.JournalExporter = (*exporters.LibraryMarkdownExporter)(nil)
var _ commands.JournalExporter = (*exporters.LibraryMarkdownExporter)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ scheduler.ExportEnqueuer = (*tasks.Client)(nil)
var _ http.TaskClient = (*tasks.Client)(nil)
var _ http.ExportSchedule = (*scheduler.JournalExportScheduler)(nil)
