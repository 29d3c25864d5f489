package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/good-enough-software/team-builder/internal/repository/state"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockRepo(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLite{log: zap.NewNop().Sugar(), db: db}, mock
}

func TestSaveSessionRollsBackOnWriteFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(touchSessionQuery).
		WithArgs(sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertStateQuery).
		WithArgs("s1", state.PlayersKey, "[]", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err := repo.SaveSession(context.Background(), entities.Session{ID: "s1"})
	require.ErrorContains(t, err, "upsert "+state.PlayersKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSessionUnknownRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(touchSessionQuery).
		WithArgs(sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.SaveSession(context.Background(), entities.Session{ID: "missing"})
	require.ErrorIs(t, err, entities.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionWrapsQueryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectSessionQuery).
		WithArgs("s1").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.GetSession(context.Background(), "s1")
	require.ErrorContains(t, err, "get session")
	require.NotErrorIs(t, err, entities.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
