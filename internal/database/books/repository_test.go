package books

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := filepath.Join(t.TempDir(), "test_books.db")

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.ReadingSession{}, &entities.Note{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return db, NewRepository(db), cleanup
}

func createTestBook(t *testing.T, repo *Repository, title, author string) *entities.Book {
	book := &entities.Book{Title: title, Author: author, Type: entities.BookTypePhysical, Status: entities.StatusToRead}
	require.NoError(t, repo.CreateBook(book))
	return book
}

func strPtr(s string) *string { return &s }

func TestRepository_CreateBook(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		Type:   entities.BookTypeEbook,
		Status: entities.StatusToRead,
		ISBN:   strPtr("9780441013593"),
	}
	require.NoError(t, repo.CreateBook(book))
	assert.NotZero(t, book.ID)
	assert.False(t, book.AddedAt.IsZero())

	found, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, entities.BookTypeEbook, found.Type)
	require.NotNil(t, found.ISBN)
	assert.Equal(t, "9780441013593", *found.ISBN)
}

func TestRepository_CreateBook_DuplicateISBN(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := &entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: strPtr("123")}
	require.NoError(t, repo.CreateBook(first))

	second := &entities.Book{Title: "Dune (reprint)", Author: "Frank Herbert", ISBN: strPtr("123")}
	err := repo.CreateBook(second)

	var uniqueErr *apperr.UniqueConstraintError
	require.ErrorAs(t, err, &uniqueErr)
	assert.Equal(t, "isbn", uniqueErr.Field)

	var count int64
	require.NoError(t, db.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_CreateBook_MultipleWithoutISBN(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Book A", "Author")
	createTestBook(t, repo, "Book B", "Author")

	books, err := repo.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookByID(999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRepository_GetAllBooks_OrderedByTitle(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "zen and the Art", "Pirsig")
	createTestBook(t, repo, "Anathem", "Stephenson")
	createTestBook(t, repo, "Middlemarch", "Eliot")

	books, err := repo.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Anathem", books[0].Title)
	assert.Equal(t, "Middlemarch", books[1].Title)
	assert.Equal(t, "zen and the Art", books[2].Title)
}

func TestRepository_GetUniqueAuthors(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Emma", "Jane Austen")
	createTestBook(t, repo, "Persuasion", "Jane Austen")
	createTestBook(t, repo, "Dracula", "Bram Stoker")

	authors, err := repo.GetUniqueAuthors()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bram Stoker", "Jane Austen"}, authors)
}

func TestRepository_GetBooksByAuthor(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Persuasion", "Jane Austen")
	createTestBook(t, repo, "Emma", "Jane Austen")
	createTestBook(t, repo, "Dracula", "Bram Stoker")

	books, err := repo.GetBooksByAuthor("Jane Austen")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Emma", books[0].Title)

	books, err = repo.GetBooksByAuthor("Nobody")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_SearchBooks(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "The Left Hand of Darkness", "Ursula K. Le Guin")
	createTestBook(t, repo, "Dune", "Frank Herbert")

	books, err := repo.SearchBooks("darkness")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Left Hand of Darkness", books[0].Title)

	books, err = repo.SearchBooks("HERBERT")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestRepository_SearchBooks_WildcardsMatchLiterally(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Dune", "Frank Herbert")
	createTestBook(t, repo, "100% Pure", "Some_One")

	tests := []struct {
		query string
		want  []string
	}{
		{query: "%", want: []string{"100% Pure"}},
		{query: "_", want: []string{"100% Pure"}},
		{query: "d_ne", want: nil},
		{query: `\`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			books, err := repo.SearchBooks(tt.query)
			require.NoError(t, err)
			var titles []string
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestRepository_UpdateBookStatus(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Dune", "Frank Herbert")

	require.NoError(t, repo.UpdateBookStatus(book.ID, entities.StatusAbandoned))

	found, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAbandoned, found.Status)

	err = repo.UpdateBookStatus(999, entities.StatusCompleted)
	assert.True(t, apperr.IsNotFound(err))

	err = repo.UpdateBookStatus(0, entities.StatusCompleted)
	assert.True(t, apperr.IsNotFound(err), "got %v", err)
}

func TestRepository_DeleteBook_Cascades(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Dune", "Frank Herbert")
	other := createTestBook(t, repo, "Emma", "Jane Austen")

	start := entities.CalendarDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&entities.ReadingSession{BookID: book.ID, StartDate: start}).Error)
	require.NoError(t, db.Create(&entities.ReadingSession{BookID: other.ID, StartDate: start}).Error)
	require.NoError(t, db.Create(&entities.Note{BookID: book.ID, Type: entities.NoteTypeThought, Content: "spice"}).Error)

	require.NoError(t, repo.DeleteBook(book.ID))

	var sessions, notes int64
	require.NoError(t, db.Model(&entities.ReadingSession{}).Where("book_id = ?", book.ID).Count(&sessions).Error)
	require.NoError(t, db.Model(&entities.Note{}).Where("book_id = ?", book.ID).Count(&notes).Error)
	assert.Zero(t, sessions)
	assert.Zero(t, notes)

	require.NoError(t, db.Model(&entities.ReadingSession{}).Where("book_id = ?", other.ID).Count(&sessions).Error)
	assert.Equal(t, int64(1), sessions)

	err := repo.DeleteBook(book.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRepository_GetBookWithActivity_Ordering(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Dune", "Frank Herbert")

	first := entities.CalendarDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := entities.CalendarDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&entities.ReadingSession{BookID: book.ID, StartDate: first, EndDate: &second}).Error)
	require.NoError(t, db.Create(&entities.ReadingSession{BookID: book.ID, StartDate: second}).Error)

	found, err := repo.GetBookWithActivity(book.ID)
	require.NoError(t, err)
	require.Len(t, found.Sessions, 2)
	assert.True(t, found.Sessions[0].IsOpen())
	assert.False(t, found.Sessions[1].IsOpen())
}

func TestRepository_CountByStatus(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "A", "X")
	b := createTestBook(t, repo, "B", "X")
	require.NoError(t, repo.UpdateBookStatus(b.ID, entities.StatusReading))

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entities.StatusToRead])
	assert.Equal(t, int64(1), counts[entities.StatusReading])
}
