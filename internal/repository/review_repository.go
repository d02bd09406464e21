// This file defines repository methods for reviews.  A review targets one
// marketplace entity (professional, product, project or article) and is
// unique per (reviewer, entity, entity type), enforced by a composite
// unique index.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ErrReviewNotFound is returned when a review cannot be found or is not
// owned by the acting reviewer.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

const reviewColumns = `id, reviewer_id, entity_id, entity_type, title,
	comment, rating_overall, rating_quality, rating_communication,
	rating_value, rating_timeliness, status, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.ReviewerID, &rv.EntityID, &rv.EntityType,
		&rv.Title, &rv.Comment, &rv.Rating.Overall, &rv.Rating.Quality,
		&rv.Rating.Communication, &rv.Rating.Value, &rv.Rating.Timeliness,
		&rv.Status, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a new review in the pending state.  ErrDuplicate is
// returned when the reviewer already reviewed this entity.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const qInsert = `INSERT INTO reviews
		(reviewer_id, entity_id, entity_type, title, comment,
		 rating_overall, rating_quality, rating_communication,
		 rating_value, rating_timeliness, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		rv.ReviewerID, rv.EntityID, rv.EntityType, rv.Title, rv.Comment,
		rv.Rating.Overall, rv.Rating.Quality, rv.Rating.Communication,
		rv.Rating.Value, rv.Rating.Timeliness, model.ReviewPending)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)

	got, err := r.GetByIDAndReviewer(ctx, rv.ID, rv.ReviewerID)
	if err != nil {
		return err
	}
	*rv = *got
	return nil
}

// GetByIDAndReviewer fetches a review by id scoped to its author.
func (r *ReviewRepo) GetByIDAndReviewer(ctx context.Context, id, reviewerID uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ? AND reviewer_id = ?`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id, reviewerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

// ListByReviewer returns one page of the user's reviews newest first, plus
// the total count.
func (r *ReviewRepo) ListByReviewer(ctx context.Context, reviewerID uint64, page, pageSize int) ([]*model.Review, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reviewer_id = ?`, reviewerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + reviewColumns + `
		FROM reviews WHERE reviewer_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, reviewerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Review, 0, pageSize)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Save persists the caller-editable columns of an existing review.  Status
// is deliberately not written here: moderation owns that transition.
func (r *ReviewRepo) Save(ctx context.Context, rv *model.Review) error {
	const q = `UPDATE reviews SET
			title = ?, comment = ?, rating_overall = ?, rating_quality = ?,
			rating_communication = ?, rating_value = ?, rating_timeliness = ?,
			updated_at = ?
		WHERE id = ? AND reviewer_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		rv.Title, rv.Comment, rv.Rating.Overall, rv.Rating.Quality,
		rv.Rating.Communication, rv.Rating.Value, rv.Rating.Timeliness,
		rv.UpdatedAt, rv.ID, rv.ReviewerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a review owned by the reviewer.
func (r *ReviewRepo) Delete(ctx context.Context, id, reviewerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ? AND reviewer_id = ?`, id, reviewerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
