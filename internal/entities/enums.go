package entities

import "strings"

type BookType string

const (
	BookTypePhysical  BookType = "physical"
	BookTypeEbook     BookType = "ebook"
	BookTypeAudiobook BookType = "audiobook"
)

// BookTypes lists every book type in display order.
var BookTypes = []BookType{BookTypePhysical, BookTypeEbook, BookTypeAudiobook}

var bookTypeLabels = map[BookType]string{
	BookTypePhysical:  "Physical",
	BookTypeEbook:     "E-book",
	BookTypeAudiobook: "Audiobook",
}

func (t BookType) Label() string {
	if label, ok := bookTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t BookType) IsValid() bool {
	_, ok := bookTypeLabels[t]
	return ok
}

// ParseBookType accepts a code ("ebook") or a label ("E-book"), case-insensitively.
func ParseBookType(s string) (BookType, bool) {
	for _, t := range BookTypes {
		if matchesEnum(s, string(t), t.Label()) {
			return t, true
		}
	}
	return "", false
}

type ReadingStatus string

const (
	StatusToRead    ReadingStatus = "to_read"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
	StatusAbandoned ReadingStatus = "abandoned"
)

var ReadingStatuses = []ReadingStatus{StatusToRead, StatusReading, StatusCompleted, StatusAbandoned}

var readingStatusLabels = map[ReadingStatus]string{
	StatusToRead:    "To Read",
	StatusReading:   "Currently Reading",
	StatusCompleted: "Completed",
	StatusAbandoned: "Abandoned",
}

func (s ReadingStatus) Label() string {
	if label, ok := readingStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s ReadingStatus) IsValid() bool {
	_, ok := readingStatusLabels[s]
	return ok
}

// ParseReadingStatus accepts a code ("to_read") or a label ("To Read"), case-insensitively.
func ParseReadingStatus(s string) (ReadingStatus, bool) {
	for _, status := range ReadingStatuses {
		if matchesEnum(s, string(status), status.Label()) {
			return status, true
		}
	}
	return "", false
}

type NoteType string

const (
	NoteTypeReview    NoteType = "review"
	NoteTypeHighlight NoteType = "highlight"
	NoteTypeThought   NoteType = "thought"
	NoteTypeQuote     NoteType = "quote"
)

var NoteTypes = []NoteType{NoteTypeReview, NoteTypeHighlight, NoteTypeThought, NoteTypeQuote}

func (t NoteType) Label() string {
	if !t.IsValid() {
		return string(t)
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeReview, NoteTypeHighlight, NoteTypeThought, NoteTypeQuote:
		return true
	}
	return false
}

func ParseNoteType(s string) (NoteType, bool) {
	for _, t := range NoteTypes {
		if matchesEnum(s, string(t), t.Label()) {
			return t, true
		}
	}
	return "", false
}

// matchesEnum compares input against a code and a label, ignoring case,
// surrounding space, and the "-", "_" and " " separators.
func matchesEnum(input, code, label string) bool {
	in := normalizeEnum(input)
	if in == "" {
		return false
	}
	return in == normalizeEnum(code) || in == normalizeEnum(label)
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
