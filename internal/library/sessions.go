package library

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// EndSessionRequest carries the user input for closing a session.
type EndSessionRequest struct {
	DateText  string
	Notes     string
	Completed bool
}

// StartSession opens a reading session for a book. Blank date text means
// today. Any session still open is closed on the new start date and the book
// moves to reading.
func (s *Service) StartSession(bookID uint, dateText string) (*entities.ReadingSession, error) {
	start, err := s.dates.Resolve(dateText)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.StartSession(bookID, start)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reading session started",
		zap.Uint("book_id", bookID),
		zap.Uint("session_id", session.ID),
		zap.String("start_date", s.dates.Format(start)))
	return session, nil
}

// EndSession closes the book's open session. When nothing is open it returns
// false and changes nothing.
func (s *Service) EndSession(bookID uint, req EndSessionRequest) (*entities.ReadingSession, bool, error) {
	end, err := s.dates.Resolve(req.DateText)
	if err != nil {
		return nil, false, err
	}

	session, closed, err := s.sessions.EndSession(bookID, end, req.Notes, req.Completed)
	if err != nil {
		return nil, false, err
	}
	if !closed {
		s.logger.Debug("no open reading session to end", zap.Uint("book_id", bookID))
		return nil, false, nil
	}

	s.logger.Info("reading session ended",
		zap.Uint("book_id", bookID),
		zap.Uint("session_id", session.ID),
		zap.String("end_date", s.dates.Format(end)),
		zap.Bool("completed", req.Completed))
	return session, true, nil
}

// ListSessions returns a book's sessions, most recent start first.
func (s *Service) ListSessions(bookID uint) ([]entities.ReadingSession, error) {
	if _, err := s.books.GetBookByID(bookID); err != nil {
		return nil, err
	}
	return s.sessions.GetSessionsForBook(bookID)
}

// OpenSession returns the book's open session.
func (s *Service) OpenSession(bookID uint) (*entities.ReadingSession, error) {
	if _, err := s.books.GetBookByID(bookID); err != nil {
		return nil, err
	}
	session, err := s.sessions.GetOpenSession(bookID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("open session for book %d: %w", bookID, apperr.ErrNotFound)
	}
	return session, nil
}
