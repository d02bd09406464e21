// This file defines repository methods for ideabooks and their saved
// items.  Deleting an ideabook removes its items in the same transaction
// so no orphan rows survive.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ErrIdeabookNotFound is returned when an ideabook cannot be found or is
// not owned by the acting user.
var ErrIdeabookNotFound = errors.New("ideabook not found")

// ErrItemNotFound is returned when a saved item is absent from the
// ideabook.
var ErrItemNotFound = errors.New("ideabook item not found")

// IdeabookRepo encapsulates all database queries related to ideabooks.
type IdeabookRepo struct {
	db *sql.DB
}

// NewIdeabookRepo constructs an IdeabookRepo with the provided DB handle.
func NewIdeabookRepo(db *sql.DB) *IdeabookRepo {
	return &IdeabookRepo{db: db}
}

const ideabookColumns = `id, owner_id, title, description, visibility, created_at, updated_at`

func scanIdeabook(row interface{ Scan(...any) error }) (*model.Ideabook, error) {
	var b model.Ideabook
	err := row.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Description,
		&b.Visibility, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new ideabook and re-reads the row for timestamps.
func (r *IdeabookRepo) Create(ctx context.Context, b *model.Ideabook) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ideabooks (owner_id, title, description, visibility) VALUES (?, ?, ?, ?)`,
		b.OwnerID, b.Title, b.Description, b.Visibility)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	got, err := r.GetByIDAndOwner(ctx, b.ID, b.OwnerID)
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetByIDAndOwner fetches an ideabook by id scoped to its owner.
func (r *IdeabookRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Ideabook, error) {
	const q = `SELECT ` + ideabookColumns + ` FROM ideabooks WHERE id = ? AND owner_id = ?`
	b, err := scanIdeabook(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdeabookNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByOwner returns one page of the user's ideabooks newest first, plus
// the total count.
func (r *IdeabookRepo) ListByOwner(ctx context.Context, ownerID uint64, page, pageSize int) ([]*model.Ideabook, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ideabooks WHERE owner_id = ?`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + ideabookColumns + `
		FROM ideabooks WHERE owner_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Ideabook, 0, pageSize)
	for rows.Next() {
		b, err := scanIdeabook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Save persists the mutable columns of an existing ideabook.
func (r *IdeabookRepo) Save(ctx context.Context, b *model.Ideabook) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ideabooks SET title = ?, description = ?, visibility = ?, updated_at = ?
			WHERE id = ? AND owner_id = ?`,
		b.Title, b.Description, b.Visibility, b.UpdatedAt, b.ID, b.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an ideabook and its items inside one transaction.  The
// lookup is owner-scoped: a missing and a foreign-owned ideabook are both
// ErrIdeabookNotFound, indistinguishable to the caller.
func (r *IdeabookRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	if err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM ideabooks WHERE id = ? AND owner_id = ?`, id, ownerID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrIdeabookNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM ideabook_items WHERE ideabook_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM ideabooks WHERE id = ? AND owner_id = ?`, id, ownerID)
	return err
}

// AddItem inserts a saved item into an ideabook.  ErrDuplicate is returned
// when the same entity is already saved in this ideabook.
func (r *IdeabookRepo) AddItem(ctx context.Context, it *model.IdeabookItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ideabook_items (ideabook_id, item_type, item_ref, note, created_at)
			VALUES (?, ?, ?, ?, ?)`,
		it.IdeabookID, it.ItemType, it.ItemRef, it.Note, it.CreatedAt)
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
	it.ID = uint64(id)
	return nil
}

// RemoveItem deletes a saved item from an ideabook.
func (r *IdeabookRepo) RemoveItem(ctx context.Context, ideabookID, itemID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ideabook_items WHERE id = ? AND ideabook_id = ?`, itemID, ideabookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Items returns all saved items of an ideabook oldest first.
func (r *IdeabookRepo) Items(ctx context.Context, ideabookID uint64) ([]*model.IdeabookItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ideabook_id, item_type, item_ref, note, created_at
			FROM ideabook_items WHERE ideabook_id = ? ORDER BY id`, ideabookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.IdeabookItem
	for rows.Next() {
		it := new(model.IdeabookItem)
		if err := rows.Scan(&it.ID, &it.IdeabookID, &it.ItemType, &it.ItemRef,
			&it.Note, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
