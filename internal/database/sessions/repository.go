// Package sessions persists reading sessions and keeps the owning book's
// status in step with them.
//
// Every compound operation runs in one transaction, so a failure leaves no
// partial state: a book never ends up with two open sessions or with a status
// that disagrees with the session that was just written.
package sessions

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// Repository handles reading session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StartSession closes any open session of the book on the start date, opens a
// new one and marks the book as being read.
func (r *Repository) StartSession(bookID uint, start time.Time) (*entities.ReadingSession, error) {
	startDate := entities.CalendarDate(start)
	session := &entities.ReadingSession{BookID: bookID, StartDate: startDate}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bookID); err != nil {
			return err
		}

		err := tx.Model(&entities.ReadingSession{}).
			Where("book_id = ? AND end_date IS NULL", bookID).
			Update("end_date", startDate).Error
		if err != nil {
			return err
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Book{ID: bookID}).Update("status", entities.StatusReading).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession closes the open session of a book. The boolean is false, with no
// error and nothing written, when the book has no open session. Blank notes
// leave the session's notes untouched. When completed is set the book moves
// to completed in the same transaction.
func (r *Repository) EndSession(bookID uint, end time.Time, notes string, completed bool) (*entities.ReadingSession, bool, error) {
	var session entities.ReadingSession
	closed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bookID); err != nil {
			return err
		}

		err := tx.Where("book_id = ? AND end_date IS NULL", bookID).
			Order("start_date DESC, id DESC").
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		endDate := entities.CalendarDate(end)
		session.EndDate = &endDate
		if trimmed := strings.TrimSpace(notes); trimmed != "" {
			session.Notes = &trimmed
		}
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if completed {
			if err := tx.Model(&entities.Book{ID: bookID}).Update("status", entities.StatusCompleted).Error; err != nil {
				return err
			}
		}
		closed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !closed {
		return nil, false, nil
	}
	return &session, true, nil
}

// GetSessionsForBook returns a book's sessions, most recent start first.
func (r *Repository) GetSessionsForBook(bookID uint) ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Where("book_id = ?", bookID).Order("start_date DESC, id DESC").Find(&sessions).Error
	return sessions, err
}

// GetOpenSession returns the book's open session, or nil when there is none.
func (r *Repository) GetOpenSession(bookID uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.Where("book_id = ? AND end_date IS NULL", bookID).
		Order("start_date DESC, id DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CountOpenSessions counts the open sessions of a book.
func (r *Repository) CountOpenSessions(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReadingSession{}).
		Where("book_id = ? AND end_date IS NULL", bookID).
		Count(&count).Error
	return count, err
}

func requireBook(tx *gorm.DB, bookID uint) error {
	var count int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("book", bookID)
	}
	return nil
}
