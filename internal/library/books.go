package library

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// AddBook validates and stores a new book.
func (s *Service) AddBook(input NewBook) (*entities.Book, error) {
	input.normalize()
	if err := toValidationError(input.Validate()); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:           input.Title,
		Author:          input.Author,
		Type:            input.Type,
		Status:          input.Status,
		ISBN:            input.ISBN,
		Publisher:       input.Publisher,
		PublicationYear: input.PublicationYear,
		Pages:           input.Pages,
	}
	if err := s.books.CreateBook(book); err != nil {
		return nil, err
	}

	s.logger.Info("book added",
		zap.Uint("book_id", book.ID),
		zap.String("title", book.Title),
		zap.String("author", book.Author))
	return book, nil
}

// ListBooks returns every book ordered by title.
func (s *Service) ListBooks() ([]entities.Book, error) {
	return s.books.GetAllBooks()
}

// ListBooksWithActivity returns every book ordered by title, with sessions and notes.
func (s *Service) ListBooksWithActivity() ([]entities.Book, error) {
	return s.books.GetAllBooksWithActivity()
}

func (s *Service) GetBook(id uint) (*entities.Book, error) {
	return s.books.GetBookByID(id)
}

// GetBookDetail returns a book with its sessions (latest start first) and
// notes (newest first).
func (s *Service) GetBookDetail(id uint) (*entities.Book, error) {
	return s.books.GetBookWithActivity(id)
}

// UpdateBookStatus overwrites a book's status. Sessions are not consulted,
// so the status can disagree with an open session afterwards.
func (s *Service) UpdateBookStatus(id uint, status entities.ReadingStatus) error {
	if err := validStatus(status); err != nil {
		return apperr.NewValidationError("status", err.Error())
	}
	if err := s.books.UpdateBookStatus(id, status); err != nil {
		return err
	}
	s.logger.Info("book status updated", zap.Uint("book_id", id), zap.String("status", string(status)))
	return nil
}

// DeleteBook removes a book with its sessions and notes. It returns false
// when the book does not exist.
func (s *Service) DeleteBook(id uint) (bool, error) {
	deleted, err := notFoundAsFalse(s.books.DeleteBook(id))
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	if deleted {
		s.logger.Info("book deleted", zap.Uint("book_id", id))
	}
	return deleted, nil
}

// ListUniqueAuthors returns each stored author once, sorted ascending.
func (s *Service) ListUniqueAuthors() ([]string, error) {
	return s.books.GetUniqueAuthors()
}

// SuggestAuthors returns the stored authors containing query, ignoring case.
// A blank query suggests nothing.
func (s *Service) SuggestAuthors(query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}, nil
	}

	authors, err := s.books.GetUniqueAuthors()
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(authors))
	for _, author := range authors {
		if strings.Contains(strings.ToLower(author), query) {
			matches = append(matches, author)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return strings.HasPrefix(strings.ToLower(matches[i]), query) &&
			!strings.HasPrefix(strings.ToLower(matches[j]), query)
	})
	return matches, nil
}

func (s *Service) BooksByAuthor(author string) ([]entities.Book, error) {
	return s.books.GetBooksByAuthor(strings.TrimSpace(author))
}

// SearchBooks matches query against titles and authors. A blank query lists
// every book.
func (s *Service) SearchBooks(query string) ([]entities.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.books.GetAllBooks()
	}
	return s.books.SearchBooks(query)
}
