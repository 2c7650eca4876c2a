// Package apperr defines the failure kinds surfaced by the library core.
//
// Callers distinguish them with errors.Is (ErrNotFound) and errors.As (the typed
// errors). Presentation adapters translate them into user-facing messages.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports that a referenced book or note id does not exist.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity and id that were missing.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ValidationError reports required-field and format violations, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UniqueConstraintError reports a value that must be unique but is already stored.
type UniqueConstraintError struct {
	Field string
	Value string
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// DateParseError reports date text that was supplied but could not be interpreted.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("could not parse date: %q", e.Input)
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
