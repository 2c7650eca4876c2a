// Package library is the boundary between the presentation adapters (CLI,
// HTTP, exporters) and the store. It validates input, resolves free-text
// dates and drives the reading session lifecycle.
package library

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/dates"
)

// Service exposes every library operation used by the adapters.
type Service struct {
	books    BookStore
	sessions SessionStore
	notes    NoteStore
	dates    *dates.Interpreter
	logger   *zap.Logger
}

// NewService creates a new Service. A nil logger disables logging.
func NewService(books BookStore, sessions SessionStore, notes NoteStore, interpreter *dates.Interpreter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		books:    books,
		sessions: sessions,
		notes:    notes,
		dates:    interpreter,
		logger:   logger,
	}
}

// ParseDate interprets free-form date text as a calendar date.
func (s *Service) ParseDate(text string) (time.Time, bool) {
	return s.dates.Parse(text)
}

// FormatDate renders a date for display, e.g. "2023-12-25 (Mon)".
func (s *Service) FormatDate(t time.Time) string {
	return s.dates.Format(t)
}

// ValidateDate reports whether text would parse.
func (s *Service) ValidateDate(text string) bool {
	return s.dates.Validate(text)
}

// toValidationError converts ozzo-validation field errors into the library's
// failure type. Internal validator errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &apperr.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for field, ferr := range fieldErrs {
		verr.Fields[field] = ferr.Error()
	}
	return verr
}

// notFoundAsFalse turns a not-found failure into a false result for the
// delete operations.
func notFoundAsFalse(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if apperr.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
