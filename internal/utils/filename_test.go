package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "replaces newlines and tabs with spaces",
			input:    "file\nname\twith\rspaces",
			expected: "file name with spaces",
		},
		{
			name:     "collapses multiple spaces",
			input:    "file   name  with    spaces",
			expected: "file name with spaces",
		},
		{
			name:     "removes hashtags",
			input:    "#hashtag #title",
			expected: "hashtag title",
		},
		{
			name:     "replaces square brackets",
			input:    "title [subtitle]",
			expected: "title (subtitle)",
		},
		{
			name:     "trims whitespace",
			input:    "  filename  ",
			expected: "filename",
		},
		{
			name:     "returns Untitled for empty",
			input:    "",
			expected: "Untitled",
		},
		{
			name:     "returns Untitled for only special chars",
			input:    "<>:?*",
			expected: "Untitled",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 200),
		},
		{
			name:     "handles unicode",
			input:    "Pamiętnik znaleziony w wannie",
			expected: "Pamiętnik znaleziony w wannie",
		},
		{
			name:     "complex case",
			input:    `Book: "The Title" [Vol. 1] #Series`,
			expected: "Book The Title (Vol. 1) Series",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	input := strings.Repeat("a", 199) + "ęęę"

	result := SanitizeFilename(input)

	assert.Equal(t, strings.Repeat("a", 199), result)
}

func TestJournalFilename(t *testing.T) {
	taken := map[string]bool{}

	assert.Equal(t, "Dune.md", JournalFilename("Dune", "Frank Herbert", 1, taken))
	assert.Equal(t, "Dune (Frank Herbert).md", JournalFilename("Dune", "Frank Herbert", 2, taken))
	assert.Equal(t, "dune (3).md", JournalFilename("dune", "Frank Herbert", 3, taken))
	assert.Equal(t, "Emma.md", JournalFilename("Emma", "Jane Austen", 4, taken))
	assert.Len(t, taken, 4)
}

func TestNoteCalloutType(t *testing.T) {
	tests := map[string]string{
		"review":    "abstract",
		"highlight": "quote",
		"thought":   "note",
		"quote":     "quote",
		"unknown":   "note",
	}

	for noteType, expected := range tests {
		t.Run(noteType, func(t *testing.T) {
			assert.Equal(t, expected, NoteCalloutType(noteType))
		})
	}
}
