package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/config"
	"github.com/grantgco/reading-library/internal/entrypoint"
)

var testNow = time.Date(2023, 12, 27, 10, 30, 0, 0, time.UTC)

type testCLI struct {
	cfg *config.Config
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	dir := t.TempDir()
	return &testCLI{cfg: &config.Config{
		HTTP:     config.HTTP{Port: 8190, Host: "127.0.0.1"},
		Global:   config.Global{ShutdownTimeoutInSeconds: 1},
		Log:      config.Log{Level: "info", Format: config.LogFormatConsole},
		Database: config.Database{Path: filepath.Join(dir, "library.db")},
		Dates:    config.Dates{PreferMonthFirst: true},
	}}
}

// run executes one invocation with stdin and returns what was printed.
func (c *testCLI) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(c.cfg, "test",
		WithIO(strings.NewReader(stdin), &out),
		WithAppOptions(entrypoint.WithLogger(zap.NewNop()), entrypoint.WithClock(clock.NewFixed(testNow))),
	)
	err := root.Run(context.Background(), append([]string{"library"}, args...))
	return out.String(), err
}

func (c *testCLI) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, "", args...)
	require.NoError(t, err)
	return out
}

func TestBooksCommands(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert", "--type", "ebook", "--year", "1965")
	assert.Equal(t, "Added book 1: Dune by Frank Herbert\n", out)
	c.mustRun(t, "books", "add", "--title", "Emma", "--author", "Jane Austen")

	out = c.mustRun(t, "books", "list")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "E-book")
	assert.Less(t, strings.Index(out, "Dune"), strings.Index(out, "Emma"))

	out = c.mustRun(t, "books", "search", "austen")
	assert.Contains(t, out, "Emma")
	assert.NotContains(t, out, "Dune")

	out = c.mustRun(t, "books", "status", "2", "completed")
	assert.Equal(t, "Emma is now Completed\n", out)

	out = c.mustRun(t, "books", "authors", "--prefix", "jane")
	assert.Equal(t, "Jane Austen\n", out)

	out = c.mustRun(t, "books", "show", "1")
	assert.Contains(t, out, "by Frank Herbert")
	assert.Contains(t, out, "Year:")
	assert.Contains(t, out, "No reading sessions yet.")
}

func TestBooksAdd_Validation(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run(t, "", "books", "add", "--title", "Dune", "--pages", "many")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input:")
	assert.Contains(t, err.Error(), "pages: must be a number")
}

func TestBooksDelete_Confirmation(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert")

	out, err := c.run(t, "n\n", "books", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "Dune" by Frank Herbert`)
	assert.Contains(t, out, "Cancelled.")

	out, err = c.run(t, "", "books", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = c.run(t, "yes\n", "books", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted book 1.")

	_, err = c.run(t, "", "books", "show", "1")
	assert.Error(t, err)
}

func TestBooksDelete_SkipConfirmation(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert")

	out := c.mustRun(t, "books", "delete", "--yes", "1")

	assert.Equal(t, "Deleted book 1.\n", out)
}

func TestSessionsCommands(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert")

	out := c.mustRun(t, "sessions", "end", "1")
	assert.Equal(t, "No open reading session for this book.\n", out)

	out = c.mustRun(t, "sessions", "start", "--date", "yesterday", "1")
	assert.Equal(t, "Started reading on 2023-12-26 (Tue).\n", out)

	out = c.mustRun(t, "sessions", "end", "--notes", "loved it", "--completed", "1")
	assert.Contains(t, out, "2023-12-26 (Tue) → 2023-12-27 (Wed)")
	assert.Contains(t, out, "Marked as completed.")

	out = c.mustRun(t, "sessions", "list", "1")
	assert.Contains(t, out, "loved it")

	_, err := c.run(t, "", "sessions", "start", "--date", "someday soon", "1")
	assert.Error(t, err)

	_, err = c.run(t, "", "sessions", "start", "abc")
	assert.Error(t, err)
}

func TestNotesCommands(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert")

	out := c.mustRun(t, "notes", "add", "--type", "quote", "--content", "Fear is the mind-killer.", "--page", "8", "1")
	assert.Equal(t, "Added quote 1.\n", out)

	out = c.mustRun(t, "notes", "list", "1")
	assert.Contains(t, out, "[1] Quote (p. 8)")
	assert.Contains(t, out, "Fear is the mind-killer.")

	out = c.mustRun(t, "notes", "delete", "1")
	assert.Equal(t, "Deleted note 1.\n", out)

	out = c.mustRun(t, "notes", "delete", "1")
	assert.Equal(t, "Note 1 was already deleted.\n", out)
}

func TestDatesParse(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "dates", "parse", "yesterday")
	assert.Equal(t, "2023-12-26 (Tue)\n", out)

	_, err := c.run(t, "", "dates", "parse", "someday", "soon")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "books", "add", "--title", "Dune", "--author", "Frank Herbert")

	_, err := c.run(t, "", "export")
	require.Error(t, err)

	c.cfg.Export.Dir = filepath.Join(t.TempDir(), "journal")
	out := c.mustRun(t, "export")
	assert.Contains(t, out, "Exported 1 books")

	content, err := os.ReadFile(filepath.Join(c.cfg.Export.Dir, "Dune.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Dune")
}
