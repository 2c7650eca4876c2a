// Package dates turns free-form user text into calendar dates and back.
//
// Absolute formats ("2023-12-25", "12/25/2023", "Dec 25, 2023") are handled by
// dateparse; relative expressions ("today", "yesterday", "last monday",
// "next friday") by when. This package only validates and normalises what those
// parsers return: results carry no time of day and are expressed as midnight UTC
// of the calendar date seen in the interpreter's clock location.
package dates

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/clock"
)

// DisplayLayout renders a date as "2023-12-25 (Mon)".
const DisplayLayout = "2006-01-02 (Mon)"

// ISOLayout is the plain calendar date layout.
const ISOLayout = "2006-01-02"

type Option func(*Interpreter)

// WithPreferMonthFirst controls how ambiguous numeric dates like 01/02/2024 are read.
func WithPreferMonthFirst(preferMonthFirst bool) Option {
	return func(i *Interpreter) {
		i.preferMonthFirst = preferMonthFirst
	}
}

type Interpreter struct {
	clock            clock.Clock
	relative         *when.Parser
	preferMonthFirst bool
}

func NewInterpreter(clk clock.Clock, opts ...Option) *Interpreter {
	relative := when.New(nil)
	relative.Add(en.All...)
	relative.Add(common.All...)

	interpreter := &Interpreter{
		clock:            clk,
		relative:         relative,
		preferMonthFirst: true,
	}
	for _, opt := range opts {
		opt(interpreter)
	}
	return interpreter
}

// Parse interprets text as a calendar date. Empty, whitespace-only and
// unrecognised input all report false; Parse never panics on user input.
func (i *Interpreter) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	now := i.clock.Now()

	if t, err := dateparse.ParseIn(text, now.Location(),
		dateparse.PreferMonthFirst(i.preferMonthFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	); err == nil {
		return truncate(t), true
	}

	if t, ok := i.parseRelative(text, now); ok {
		return truncate(t), true
	}

	return time.Time{}, false
}

// parseRelative accepts a when match only if it spans the whole input, so a
// weekday buried in a sentence does not turn arbitrary text into a date.
func (i *Interpreter) parseRelative(text string, now time.Time) (t time.Time, ok bool) {
	// when panics on a few malformed inputs; treat those as unparseable.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	result, err := i.relative.Parse(text, now)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(result.Text), text) {
		return time.Time{}, false
	}
	return result.Time.In(now.Location()), true
}

// Validate reports whether text would parse.
func (i *Interpreter) Validate(text string) bool {
	_, ok := i.Parse(text)
	return ok
}

// Format renders t for display; see Format.
func (i *Interpreter) Format(t time.Time) string {
	return Format(t)
}

// Today returns the clock's current calendar date.
func (i *Interpreter) Today() time.Time {
	return truncate(i.clock.Now())
}

// Resolve turns optional user text into a date: blank means today, anything
// else must parse or a *apperr.DateParseError is returned.
func (i *Interpreter) Resolve(text string) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return i.Today(), nil
	}
	t, ok := i.Parse(text)
	if !ok {
		return time.Time{}, &apperr.DateParseError{Input: text}
	}
	return t, nil
}

// Format renders t as "YYYY-MM-DD (Mon)". The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// FormatISO renders t as "YYYY-MM-DD". The zero time renders as "".
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISOLayout)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
