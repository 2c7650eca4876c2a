// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, repository wiring
//	├── books/           # Book CRUD, author lookups, ISBN uniqueness
//	├── sessions/        # Reading session lifecycle (start/end as single transactions)
//	└── notes/           # Note CRUD
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db")
//	book, err := db.Books.GetBookByID(123)
//	sessions, err := db.Sessions.GetSessionsForBook(book.ID)
//
// Each repository holds a *gorm.DB and reports missing rows as apperr.ErrNotFound
// rather than gorm.ErrRecordNotFound, so callers never import gorm to check.
//
// # Integrity
//
// Books own their sessions and notes. Foreign keys are enabled on the SQLite
// connection and declared with ON DELETE CASCADE; books.Repository.DeleteBook
// also removes children explicitly inside its transaction.
package database
