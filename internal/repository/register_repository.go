// Package repository contains data access logic separated from HTTP
// handlers.  This file defines repository methods for the registers table.
// A register is a seller-owned cash drawer with an open/closed lifecycle;
// the state transition rules themselves live in the service layer, the
// repository only reads and writes rows.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ErrRegisterNotFound is returned when a register cannot be found or is not
// owned by the acting seller.
var ErrRegisterNotFound = errors.New("register not found")

// RegisterRepo encapsulates all database queries related to registers.  It
// depends on a sql.DB connection which is configured at startup and can be
// swapped for a mock in tests.
type RegisterRepo struct {
	db *sql.DB
}

// NewRegisterRepo constructs a RegisterRepo with the provided DB handle.
func NewRegisterRepo(db *sql.DB) *RegisterRepo {
	return &RegisterRepo{db: db}
}

const registerColumns = `id, seller_id, name, status, opened_at, closed_at,
	opening_balance_cents, closing_balance_cents, sales_count,
	total_sales_cents, notes, created_at, updated_at`

func scanRegister(row interface{ Scan(...any) error }) (*model.Register, error) {
	var r model.Register
	err := row.Scan(&r.ID, &r.SellerID, &r.Name, &r.Status, &r.OpenedAt,
		&r.ClosedAt, &r.OpeningBalanceCents, &r.ClosingBalanceCents,
		&r.SalesCount, &r.TotalSalesCents, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new register in the closed state.  On success the
// register's ID, CreatedAt and UpdatedAt fields are populated with the
// values generated by the database.
func (r *RegisterRepo) Create(ctx context.Context, reg *model.Register) error {
	const qInsert = `INSERT INTO registers
		(seller_id, name, status, opening_balance_cents, notes)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		reg.SellerID, reg.Name, model.RegisterClosed, reg.OpeningBalanceCents, reg.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)

	// Follow-up SELECT so callers receive a fully populated record,
	// including DB-side timestamp defaults.
	got, err := r.GetByIDAndSeller(ctx, reg.ID, reg.SellerID)
	if err != nil {
		return err
	}
	*reg = *got
	return nil
}

// GetByIDAndSeller fetches a register by id, but only if it belongs to the
// specified seller.  A missing or foreign-owned register yields
// ErrRegisterNotFound: callers cannot distinguish the two, by contract.
func (r *RegisterRepo) GetByIDAndSeller(ctx context.Context, id, sellerID uint64) (*model.Register, error) {
	const q = `SELECT ` + registerColumns + ` FROM registers WHERE id = ? AND seller_id = ?`
	reg, err := scanRegister(r.db.QueryRowContext(ctx, q, id, sellerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegisterNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ListBySeller returns one page of a seller's registers ordered by id,
// along with the total count across all pages.
func (r *RegisterRepo) ListBySeller(ctx context.Context, sellerID uint64, page, pageSize int) ([]*model.Register, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registers WHERE seller_id = ?`, sellerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + registerColumns + `
		FROM registers WHERE seller_id = ? ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, sellerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Register, 0, pageSize)
	for rows.Next() {
		reg, err := scanRegister(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Save persists every mutable column of an existing register.  The service
// layer mutates the struct (including UpdatedAt via Touch) and calls Save
// to write the row back.  sql.ErrNoRows is returned when nothing matched.
func (r *RegisterRepo) Save(ctx context.Context, reg *model.Register) error {
	const q = `UPDATE registers SET
			name = ?, status = ?, opened_at = ?, closed_at = ?,
			opening_balance_cents = ?, closing_balance_cents = ?,
			sales_count = ?, total_sales_cents = ?, notes = ?, updated_at = ?
		WHERE id = ? AND seller_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		reg.Name, reg.Status, reg.OpenedAt, reg.ClosedAt,
		reg.OpeningBalanceCents, reg.ClosingBalanceCents,
		reg.SalesCount, reg.TotalSalesCents, reg.Notes, reg.UpdatedAt,
		reg.ID, reg.SellerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a register owned by the seller.  sql.ErrNoRows is
// returned when no row matched.  The open-state guard belongs to the
// service layer, not here.
func (r *RegisterRepo) Delete(ctx context.Context, id, sellerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM registers WHERE id = ? AND seller_id = ?`, id, sellerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
