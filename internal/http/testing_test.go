package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/database"
	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/library"
)

var testNow = time.Date(2023, 12, 27, 10, 30, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	db     *database.Database
	svc    *library.Service
}

func setupTestServer(t *testing.T, taskClient TaskClient) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := library.NewService(db.Books, db.Sessions, db.Notes, dates.NewInterpreter(clock.NewFixed(testNow)), nil)
	router := NewRouter(RouterConfig{
		Service:    svc,
		Database:   db,
		TaskClient: taskClient,
		Version:    "test",
	})

	return &testServer{router: router, db: db, svc: svc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doChunked sends a raw JSON body with no declared length, the way a
// streaming client or proxy does.
func (s *testServer) doChunked(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, io.NopCloser(strings.NewReader(body)))
	require.NoError(t, err)
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type stubTaskClient struct {
	triggers []string
	err      error
	status   backlite.TaskStatus
}

func (s *stubTaskClient) EnqueueJournalExport(trigger string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.triggers = append(s.triggers, trigger)
	return "task-123", nil
}

func (s *stubTaskClient) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	if taskID == "broken" {
		return backlite.TaskStatusNotFound, errors.New("status unavailable")
	}
	return s.status, nil
}

type stubSchedule struct {
	next *time.Time
}

func (s stubSchedule) IsRunning() bool { return s.next != nil }

func (s stubSchedule) GetNextRunTime() *time.Time { return s.next }
