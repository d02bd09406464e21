package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhouz/myhouz-server/internal/model"
)

func newReviewRepo(t *testing.T) (*ReviewRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReviewRepo(db), mock
}

func reviewRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "reviewer_id", "entity_id", "entity_type", "title", "comment",
		"rating_overall", "rating_quality", "rating_communication",
		"rating_value", "rating_timeliness", "status", "created_at", "updated_at",
	}).AddRow(12, 4, 77, model.EntityProfessional, "Great tiler", "On time and tidy",
		5, 5, nil, nil, 4, model.ReviewPending, now, now)
}

func TestReviewCreateStartsPending(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(uint64(4), uint64(77), model.EntityProfessional, "Great tiler",
			"On time and tidy", uint8(5), uint8(5), nil, nil, uint8(4),
			model.ReviewPending).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id = \\? AND reviewer_id = \\?").
		WithArgs(uint64(12), uint64(4)).
		WillReturnRows(reviewRows())

	quality := uint8(5)
	timeliness := uint8(4)
	rv := &model.Review{
		ReviewerID: 4,
		EntityID:   77,
		EntityType: model.EntityProfessional,
		Title:      "Great tiler",
		Comment:    "On time and tidy",
		Rating:     model.Rating{Overall: 5, Quality: &quality, Timeliness: &timeliness},
	}
	require.NoError(t, repo.Create(context.Background(), rv))
	assert.Equal(t, uint64(12), rv.ID)
	assert.Equal(t, model.ReviewPending, rv.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreateDuplicatePerEntity(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectExec("INSERT INTO reviews").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '4-77-professional' for key 'uq_reviewer_entity'"))

	rv := &model.Review{
		ReviewerID: 4,
		EntityID:   77,
		EntityType: model.EntityProfessional,
		Rating:     model.Rating{Overall: 5},
	}
	err := repo.Create(context.Background(), rv)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestReviewSaveNeverWritesStatus(t *testing.T) {
	repo, mock := newReviewRepo(t)

	// The UPDATE column list excludes status entirely.
	mock.ExpectExec("UPDATE reviews SET\\s+title = \\?, comment = \\?, rating_overall = \\?, rating_quality = \\?,\\s+rating_communication = \\?, rating_value = \\?, rating_timeliness = \\?,\\s+updated_at = \\?\\s+WHERE id = \\? AND reviewer_id = \\?").
		WithArgs("Edited", "Still great", uint8(4), nil, nil, nil, nil,
			sqlmock.AnyArg(), uint64(12), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rv := &model.Review{
		ID:         12,
		ReviewerID: 4,
		Title:      "Edited",
		Comment:    "Still great",
		Rating:     model.Rating{Overall: 4},
		Status:     model.ReviewApproved, // must not leak into the write
	}
	rv.Touch(time.Now())
	require.NoError(t, repo.Save(context.Background(), rv))
	assert.NoError(t, mock.ExpectationsWereMet())
}
