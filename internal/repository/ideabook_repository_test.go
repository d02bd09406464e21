package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdeabookRepo(t *testing.T) (*IdeabookRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewIdeabookRepo(db), mock
}

func TestIdeabookDeleteRemovesItemsInOneTransaction(t *testing.T) {
	repo, mock := newIdeabookRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM ideabooks WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(5), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE FROM ideabook_items WHERE ideabook_id = \\?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM ideabooks WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(5), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeabookDeleteForeignOwnerLooksMissing(t *testing.T) {
	repo, mock := newIdeabookRepo(t)

	// The owner-scoped lookup matches nothing for someone else's ideabook,
	// so the caller cannot tell it apart from an id that never existed.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM ideabooks WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(5), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrIdeabookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
