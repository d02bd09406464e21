package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierRepo(t *testing.T) (*SupplierRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSupplierRepo(db), mock
}

func supplierRows(n int, startID uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "seller_id", "name", "contact_name", "email", "phone",
		"category", "address", "notes", "created_at", "updated_at",
	})
	for i := 0; i < n; i++ {
		id := startID + uint64(i)
		rows.AddRow(id, uint64(3), fmt.Sprintf("Supplier %03d", id), "Sam",
			fmt.Sprintf("s%d@example.com", id), "", "tiles", "", "", now, now)
	}
	return rows
}

func TestSupplierListPagination(t *testing.T) {
	repo, mock := newSupplierRepo(t)

	// 45 matches, page 2 at limit 20: rows 21-40 with OFFSET 20.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM suppliers WHERE seller_id = \\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery("SELECT (.+) FROM suppliers WHERE seller_id = \\?").
		WithArgs(uint64(3), 20, 20).
		WillReturnRows(supplierRows(20, 21))

	items, total, err := repo.List(context.Background(), SupplierFilter{
		SellerID: 3, Page: 2, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(45), total)
	assert.Len(t, items, 20)
	assert.Equal(t, uint64(21), items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierListFilters(t *testing.T) {
	repo, mock := newSupplierRepo(t)

	// Category and search combine; the LIKE pattern is lowercased and
	// wrapped in wildcards, bound once per searched column.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM suppliers WHERE seller_id = \\? AND category = \\?").
		WithArgs(uint64(3), "tiles", "%acme%", "%acme%", "%acme%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM suppliers WHERE seller_id = \\? AND category = \\?").
		WithArgs(uint64(3), "tiles", "%acme%", "%acme%", "%acme%", 20, 0).
		WillReturnRows(supplierRows(1, 1))

	items, total, err := repo.List(context.Background(), SupplierFilter{
		SellerID: 3, Category: "tiles", Search: "  Acme ", Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierGetScopedToSeller(t *testing.T) {
	repo, mock := newSupplierRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM suppliers WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(8), uint64(99)).
		WillReturnRows(supplierRows(0, 0))

	_, err := repo.GetByIDAndSeller(context.Background(), 8, 99)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierDeleteMissingRow(t *testing.T) {
	repo, mock := newSupplierRepo(t)

	mock.ExpectExec("DELETE FROM suppliers WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(8), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 8, 3)
	assert.Error(t, err)
}
