package entrypoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/config"
	"github.com/grantgco/reading-library/internal/exporters"
	"github.com/grantgco/reading-library/internal/library"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		HTTP:     config.HTTP{Port: 8190, Host: "127.0.0.1"},
		Global:   config.Global{ShutdownTimeoutInSeconds: 1},
		Log:      config.Log{Level: "info", Format: config.LogFormatConsole},
		Database: config.Database{Path: filepath.Join(dir, "library.db")},
		Dates:    config.Dates{PreferMonthFirst: true},
		Tasks:    config.Tasks{Enabled: false},
	}
}

func TestOpen_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "loud"

	_, err := Open(cfg, WithLogger(zap.NewNop()))

	assert.Error(t, err)
}

func TestOpen_WithoutExportDir(t *testing.T) {
	app, err := Open(testConfig(t), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Exporter)

	_, err = app.Dispatcher(nil).Dispatch(commands.Export{})
	assert.ErrorIs(t, err, commands.ErrExportNotConfigured)
}

func TestOpen_DispatcherRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Dir = filepath.Join(t.TempDir(), "journal")
	now := time.Date(2023, 12, 27, 10, 30, 0, 0, time.UTC)

	app, err := Open(cfg, WithLogger(zap.NewNop()), WithClock(clock.NewFixed(now)))
	require.NoError(t, err)
	defer app.Close()

	dispatcher := app.Dispatcher(commands.AlwaysConfirm)

	_, err = dispatcher.Dispatch(commands.AddBook{Form: library.BookForm{Title: "Dune", Author: "Frank Herbert"}})
	require.NoError(t, err)

	result, err := dispatcher.Dispatch(commands.StartSession{BookID: 1, DateText: "yesterday"})
	require.NoError(t, err)
	assert.Equal(t, commands.KindStartSession, result.Kind)

	result, err = dispatcher.Dispatch(commands.Export{})
	require.NoError(t, err)
	exported := result.Value.(exporters.ExportResult)
	assert.Equal(t, 1, exported.BooksProcessed)

	_, err = os.Stat(filepath.Join(cfg.Export.Dir, "Dune.md"))
	assert.NoError(t, err)
}
