// Package interfaces documents the seams between the application's layers.
//
// # Interface Categories
//
// ## Library Store
//
//   - BookStore, SessionStore, NoteStore: persistence behind the library
//     service (internal/library/interfaces.go). The gorm repositories under
//     internal/database implement them.
//   - Clock: the source of "today" for the date interpreter (internal/clock).
//
// ## Journal Export
//
//   - BookSource: books with sessions and notes loaded (internal/exporters/generic.go)
//   - JournalExporter: writes journal files for a set of books (internal/exporters/generic.go)
//   - tasks.JournalExporter / commands.JournalExporter: export the whole library,
//     from a queued task or a CLI command
//
// ## Task Queue
//
//   - ExportEnqueuer: queues a journal export (internal/scheduler/journal_export.go)
//   - TaskClient: enqueues exports and reports status for the HTTP API (internal/http/config.go)
//
// ## Presentation
//
//   - Command: a user intent dispatched by commands.Dispatcher (internal/commands)
//   - Confirmer: yes/no prompt answered with an Outcome (internal/commands/outcome.go)
//
// # Adding a New Journal Format
//
//  1. Implement exporters.JournalExporter:
//
//     type HTMLExporter struct { ExportDir string }
//
//     func (e *HTMLExporter) Export(books []entities.Book) (exporters.ExportResult, error)
//
//     var _ exporters.JournalExporter = (*HTMLExporter)(nil)
//
//  2. Pass it to exporters.NewLibraryMarkdownExporter in entrypoint.go
//
// # Adding a New Store Backend
//
//  1. Implement library.BookStore, SessionStore and NoteStore. Session start must
//     close any open session and mark the book reading atomically.
//
//  2. Add compile-time checks to checks.go:
//
//     var _ library.SessionStore = (*postgres.SessionRepository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
