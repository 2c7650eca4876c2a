package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

const maxFilenameLength = 200

// SanitizeFilename makes a book title safe to use as a journal file name.
// It removes characters that are invalid in filenames or that markdown note
// tools treat specially (slashes, colons, quotes, hashtags, brackets).
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Leave room for the extension and a disambiguating suffix
	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateRunes(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// JournalFilename returns "<title>.md" for a book. When that name is already
// in taken, the author and then the book id are appended. The chosen name is
// added to taken.
func JournalFilename(title, author string, id uint, taken map[string]bool) string {
	base := SanitizeFilename(title)
	candidates := []string{
		base,
		fmt.Sprintf("%s (%s)", base, SanitizeFilename(author)),
		fmt.Sprintf("%s (%d)", base, id),
	}

	name := candidates[len(candidates)-1] + ".md"
	for _, candidate := range candidates {
		if !taken[strings.ToLower(candidate+".md")] {
			name = candidate + ".md"
			break
		}
	}
	taken[strings.ToLower(name)] = true
	return name
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
