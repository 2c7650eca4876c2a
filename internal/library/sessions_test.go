package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

func TestService_StartSession_DefaultsToToday(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	session, err := svc.StartSession(book.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, day(2023, 12, 27), session.Started())
	assert.True(t, session.IsOpen())

	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReading, stored.Status)
	assert.Equal(t, int64(1), openSessionCount(t, db, book.ID))
}

func TestService_StartSession_RelativeDate(t *testing.T) {
	svc, _ := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	session, err := svc.StartSession(book.ID, "yesterday")
	require.NoError(t, err)
	assert.Equal(t, day(2023, 12, 26), session.Started())
}

func TestService_StartSession_ReplacesOpenSession(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	first, err := svc.StartSession(book.ID, "2023-11-01")
	require.NoError(t, err)
	before := sessionCount(t, db)

	second, err := svc.StartSession(book.ID, "2023-12-01")
	require.NoError(t, err)

	assert.Equal(t, before+1, sessionCount(t, db))
	assert.Equal(t, int64(1), openSessionCount(t, db, book.ID))

	sessions, err := svc.ListSessions(book.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)

	end, ok := sessions[1].Ended()
	require.True(t, ok)
	assert.Equal(t, second.Started(), end)
}

func TestService_StartSession_Errors(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	_, err := svc.StartSession(book.ID, "someday maybe")
	var dateErr *apperr.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "someday maybe", dateErr.Input)

	_, err = svc.StartSession(999, "")
	assert.True(t, apperr.IsNotFound(err))

	assert.Zero(t, sessionCount(t, db))
	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusToRead, stored.Status)
}

func TestService_EndSession(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	_, err := svc.StartSession(book.ID, "2023-12-01")
	require.NoError(t, err)

	session, ended, err := svc.EndSession(book.ID, EndSessionRequest{
		DateText:  "2023-12-20",
		Notes:     "Loved the ending",
		Completed: true,
	})
	require.NoError(t, err)
	require.True(t, ended)

	end, ok := session.Ended()
	require.True(t, ok)
	assert.Equal(t, day(2023, 12, 20), end)
	require.NotNil(t, session.Notes)
	assert.Equal(t, "Loved the ending", *session.Notes)
	assert.Zero(t, openSessionCount(t, db, book.ID))

	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, stored.Status)
}

func TestService_EndSession_NotCompletedKeepsStatus(t *testing.T) {
	svc, _ := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	_, err := svc.StartSession(book.ID, "")
	require.NoError(t, err)
	session, ended, err := svc.EndSession(book.ID, EndSessionRequest{})
	require.NoError(t, err)
	require.True(t, ended)
	assert.Nil(t, session.Notes)

	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReading, stored.Status)
}

func TestService_EndSession_NoOpenSession(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	_, err := svc.StartSession(book.ID, "2023-12-01")
	require.NoError(t, err)
	_, _, err = svc.EndSession(book.ID, EndSessionRequest{DateText: "2023-12-02"})
	require.NoError(t, err)

	before, err := svc.ListSessions(book.ID)
	require.NoError(t, err)

	session, ended, err := svc.EndSession(book.ID, EndSessionRequest{DateText: "2023-12-05", Notes: "again", Completed: true})
	require.NoError(t, err)
	assert.False(t, ended)
	assert.Nil(t, session)

	after, err := svc.ListSessions(book.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(1), sessionCount(t, db))

	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReading, stored.Status)
}

func TestService_EndSession_Errors(t *testing.T) {
	svc, _ := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")
	_, err := svc.StartSession(book.ID, "")
	require.NoError(t, err)

	_, _, err = svc.EndSession(book.ID, EndSessionRequest{DateText: "whenever"})
	var dateErr *apperr.DateParseError
	assert.ErrorAs(t, err, &dateErr)

	_, _, err = svc.EndSession(999, EndSessionRequest{})
	assert.True(t, apperr.IsNotFound(err))

	open, err := svc.OpenSession(book.ID)
	require.NoError(t, err)
	assert.True(t, open.IsOpen())
}

func TestService_AtMostOneOpenSession(t *testing.T) {
	svc, db := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	steps := []func() error{
		func() error { _, err := svc.StartSession(book.ID, "2023-01-01"); return err },
		func() error { _, err := svc.StartSession(book.ID, "2023-02-01"); return err },
		func() error { _, _, err := svc.EndSession(book.ID, EndSessionRequest{DateText: "2023-03-01"}); return err },
		func() error { _, _, err := svc.EndSession(book.ID, EndSessionRequest{DateText: "2023-03-02"}); return err },
		func() error { _, err := svc.StartSession(book.ID, "2023-04-01"); return err },
		func() error { _, err := svc.StartSession(book.ID, "2023-05-01"); return err },
	}
	for _, step := range steps {
		require.NoError(t, step())
		assert.LessOrEqual(t, openSessionCount(t, db, book.ID), int64(1))
	}
}

func TestService_OpenSession_None(t *testing.T) {
	svc, _ := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")

	_, err := svc.OpenSession(book.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.OpenSession(999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_GetBookDetail(t *testing.T) {
	svc, _ := setupTestService(t)
	book := addBook(t, svc, "Dune", "Frank Herbert")
	_, err := svc.StartSession(book.ID, "2023-12-01")
	require.NoError(t, err)
	_, err = svc.AddNote(NewNote{BookID: book.ID, Content: "Spice must flow"})
	require.NoError(t, err)

	detail, err := svc.GetBookDetail(book.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Sessions, 1)
	assert.Len(t, detail.Notes, 1)

	_, err = svc.GetBookDetail(999)
	assert.True(t, apperr.IsNotFound(err))
}
