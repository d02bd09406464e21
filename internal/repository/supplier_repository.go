// This file defines repository methods for the suppliers table: a
// seller-scoped address book with category and free-text search filters.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ErrSupplierNotFound is returned when a supplier cannot be found or is
// not owned by the acting seller.
var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierFilter is the typed filter for supplier list queries, replacing
// ad-hoc stringly-typed filter maps.
type SupplierFilter struct {
	SellerID uint64
	Category string
	Search   string
	Page     int
	PageSize int
}

// SupplierRepo encapsulates all database queries related to suppliers.
type SupplierRepo struct {
	db *sql.DB
}

// NewSupplierRepo constructs a SupplierRepo with the provided DB handle.
func NewSupplierRepo(db *sql.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

const supplierColumns = `id, seller_id, name, contact_name, email, phone,
	category, address, notes, created_at, updated_at`

func scanSupplier(row interface{ Scan(...any) error }) (*model.Supplier, error) {
	var s model.Supplier
	err := row.Scan(&s.ID, &s.SellerID, &s.Name, &s.ContactName, &s.Email,
		&s.Phone, &s.Category, &s.Address, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new supplier and re-reads the row so the caller gets
// DB-generated timestamps.
func (r *SupplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	const qInsert = `INSERT INTO suppliers
		(seller_id, name, contact_name, email, phone, category, address, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		s.SellerID, s.Name, s.ContactName, s.Email, s.Phone, s.Category, s.Address, s.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	got, err := r.GetByIDAndSeller(ctx, s.ID, s.SellerID)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByIDAndSeller fetches a supplier by id scoped to its owning seller.
func (r *SupplierRepo) GetByIDAndSeller(ctx context.Context, id, sellerID uint64) (*model.Supplier, error) {
	const q = `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = ? AND seller_id = ?`
	s, err := scanSupplier(r.db.QueryRowContext(ctx, q, id, sellerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns one page of suppliers matching the filter ordered by name,
// plus the total match count.
func (r *SupplierRepo) List(ctx context.Context, f SupplierFilter) ([]*model.Supplier, int64, error) {
	where := []string{"seller_id = ?"}
	args := []any{f.SellerID}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, `(LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?)`)
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat, pat)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM suppliers WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT ` + supplierColumns + `
		FROM suppliers WHERE ` + cond + `
		ORDER BY name ASC, id ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Supplier, 0, f.PageSize)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Save persists every mutable column of an existing supplier.
func (r *SupplierRepo) Save(ctx context.Context, s *model.Supplier) error {
	const q = `UPDATE suppliers SET
			name = ?, contact_name = ?, email = ?, phone = ?,
			category = ?, address = ?, notes = ?, updated_at = ?
		WHERE id = ? AND seller_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.ContactName, s.Email, s.Phone,
		s.Category, s.Address, s.Notes, s.UpdatedAt,
		s.ID, s.SellerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a supplier owned by the seller.
func (r *SupplierRepo) Delete(ctx context.Context, id, sellerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM suppliers WHERE id = ? AND seller_id = ?`, id, sellerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
