// Package books provides database operations for book management.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	err := repo.CreateBook(&entities.Book{Title: "Dune", Author: "Frank Herbert"})
//	book, err := repo.GetBookByID(book.ID)
package books

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book. A non-nil ISBN already used by another book is
// rejected with *apperr.UniqueConstraintError and nothing is written.
func (r *Repository) CreateBook(book *entities.Book) error {
	if book.ISBN != nil {
		existing, err := r.FindBookByISBN(*book.ISBN)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("check isbn: %w", err)
		}
		if existing != nil {
			return &apperr.UniqueConstraintError{Field: "isbn", Value: *book.ISBN}
		}
	}

	if err := r.db.Omit("Sessions", "Notes").Create(book).Error; err != nil {
		if isUniqueViolation(err) && book.ISBN != nil {
			return &apperr.UniqueConstraintError{Field: "isbn", Value: *book.ISBN}
		}
		return err
	}
	return nil
}

// GetBookByID retrieves a book without its sessions and notes.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, notFound(err, id)
	}
	return &book, nil
}

// GetBookWithActivity retrieves a book with sessions (most recent start first)
// and notes (newest first).
func (r *Repository) GetBookWithActivity(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.withActivity(r.db).First(&book, id).Error
	if err != nil {
		return nil, notFound(err, id)
	}
	return &book, nil
}

// GetAllBooks retrieves all books ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title COLLATE NOCASE ASC, id ASC").Find(&books).Error
	return books, err
}

// GetAllBooksWithActivity retrieves all books, ordered by title, with sessions and notes.
func (r *Repository) GetAllBooksWithActivity() ([]entities.Book, error) {
	var books []entities.Book
	err := r.withActivity(r.db).Order("title COLLATE NOCASE ASC, id ASC").Find(&books).Error
	return books, err
}

// GetBooksByAuthor retrieves all books by an exact author name.
func (r *Repository) GetBooksByAuthor(author string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author = ?", author).Order("title COLLATE NOCASE ASC, id ASC").Find(&books).Error
	return books, err
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchBooks searches books by title or author (case-insensitive partial match).
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + likeEscaper.Replace(query) + "%"
	err := r.db.
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(author) LIKE LOWER(?) ESCAPE '\'`, searchPattern, searchPattern).
		Order("title COLLATE NOCASE ASC, id ASC").
		Find(&books).Error
	return books, err
}

// FindBookByISBN finds the book carrying an ISBN.
func (r *Repository) FindBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with isbn %q: %w", isbn, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &book, nil
}

// UpdateBookStatus overwrites the status regardless of open sessions and bumps
// the last-modified timestamp.
func (r *Repository) UpdateBookStatus(id uint, status entities.ReadingStatus) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("book", id)
	}
	return nil
}

// DeleteBook removes a book together with its sessions and notes.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.ReadingSession{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("book", id)
		}
		return nil
	})
}

// GetUniqueAuthors returns each author once, sorted ascending.
func (r *Repository) GetUniqueAuthors() ([]string, error) {
	var authors []string
	err := r.db.Model(&entities.Book{}).Distinct().Order("author ASC").Pluck("author", &authors).Error
	return authors, err
}

// CountByStatus returns how many books are in each status.
func (r *Repository) CountByStatus() (map[entities.ReadingStatus]int64, error) {
	var rows []struct {
		Status entities.ReadingStatus
		Count  int64
	}
	err := r.db.Model(&entities.Book{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[entities.ReadingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *Repository) withActivity(db *gorm.DB) *gorm.DB {
	return db.Preload("Sessions", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_date DESC, id DESC")
	}).Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id DESC")
	})
}

func notFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("book", id)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
