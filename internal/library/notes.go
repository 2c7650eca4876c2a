package library

import (
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/entities"
)

// AddNote validates and attaches a note to an existing book.
func (s *Service) AddNote(input NewNote) (*entities.Note, error) {
	input.normalize()
	if err := toValidationError(input.Validate()); err != nil {
		return nil, err
	}

	note := &entities.Note{
		BookID:     input.BookID,
		Type:       input.Type,
		Title:      input.Title,
		Content:    input.Content,
		PageNumber: input.PageNumber,
	}
	if err := s.notes.CreateNote(note); err != nil {
		return nil, err
	}

	s.logger.Info("note added", zap.Uint("book_id", note.BookID), zap.Uint("note_id", note.ID))
	return note, nil
}

// ListNotes returns a book's notes, newest first.
func (s *Service) ListNotes(bookID uint) ([]entities.Note, error) {
	if _, err := s.books.GetBookByID(bookID); err != nil {
		return nil, err
	}
	return s.notes.GetNotesForBook(bookID)
}

// DeleteNote removes a note. It returns false when the note does not exist.
func (s *Service) DeleteNote(id uint) (bool, error) {
	deleted, err := notFoundAsFalse(s.notes.DeleteNote(id))
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("note deleted", zap.Uint("note_id", id))
	}
	return deleted, nil
}
