package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
)

func newRegisterService(t *testing.T) (*RegisterService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewRegisterService(repository.NewRegisterRepo(db), nil)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func registerRow(id, sellerID uint64, status string, salesCount uint32, totalSales int64) *sqlmock.Rows {
	var (
		openedAt *time.Time
		closedAt *time.Time
		closing  *int64
	)
	if status == model.RegisterOpen {
		at := fixedNow.Add(-2 * time.Hour)
		openedAt = &at
	} else {
		at := fixedNow.Add(-26 * time.Hour)
		openedAt = &at
		done := fixedNow.Add(-24 * time.Hour)
		closedAt = &done
		counted := int64(90000)
		closing = &counted
	}
	return sqlmock.NewRows([]string{
		"id", "seller_id", "name", "status", "opened_at", "closed_at",
		"opening_balance_cents", "closing_balance_cents", "sales_count",
		"total_sales_cents", "notes", "created_at", "updated_at",
	}).AddRow(id, sellerID, "Front desk", status, openedAt, closedAt,
		int64(10000), closing, salesCount, totalSales, nil, fixedNow, fixedNow)
}

func expectGetRegister(mock sqlmock.Sqlmock, id, sellerID uint64, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT (.+) FROM registers WHERE id = \\? AND seller_id = \\?").
		WithArgs(id, sellerID).
		WillReturnRows(rows)
}

func TestOpenResetsSessionState(t *testing.T) {
	s, mock := newRegisterService(t)

	// A closed register with leftover counters from the previous session.
	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterClosed, 12, 345600))
	mock.ExpectExec("UPDATE registers SET").
		WithArgs("Front desk", model.RegisterOpen, sqlmock.AnyArg(), nil,
			int64(5000), nil, uint32(0), int64(0), nil, sqlmock.AnyArg(),
			uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reg, err := s.Open(context.Background(), 3, 5, 5000)
	require.NoError(t, err)
	assert.Equal(t, model.RegisterOpen, reg.Status)
	assert.Equal(t, uint32(0), reg.SalesCount)
	assert.Equal(t, int64(0), reg.TotalSalesCents)
	assert.Nil(t, reg.ClosedAt)
	assert.Nil(t, reg.ClosingBalanceCents)
	require.NotNil(t, reg.OpenedAt)
	assert.Equal(t, fixedNow, *reg.OpenedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenTwiceIsInvalid(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterOpen, 2, 700))

	_, err := s.Open(context.Background(), 3, 5, 0)
	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, "register is already open", state.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseRecordsBalanceAndNotes(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterOpen, 8, 120000))
	notes := "short 200 cents"
	mock.ExpectExec("UPDATE registers SET").
		WithArgs("Front desk", model.RegisterClosed, sqlmock.AnyArg(), sqlmock.AnyArg(),
			int64(10000), int64(129800), uint32(8), int64(120000), notes, sqlmock.AnyArg(),
			uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reg, err := s.Close(context.Background(), 3, 5, 129800, &notes)
	require.NoError(t, err)
	assert.Equal(t, model.RegisterClosed, reg.Status)
	require.NotNil(t, reg.ClosedAt)
	assert.Equal(t, fixedNow, *reg.ClosedAt)
	require.NotNil(t, reg.ClosingBalanceCents)
	assert.Equal(t, int64(129800), *reg.ClosingBalanceCents)
	// Closing does not touch the session counters; they reset on next open.
	assert.Equal(t, uint32(8), reg.SalesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseTwiceIsInvalid(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterClosed, 0, 0))

	_, err := s.Close(context.Background(), 3, 5, 0, nil)
	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, "register is already closed", state.Reason)
}

func TestRecordSaleRequiresOpenRegister(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterClosed, 0, 0))

	_, err := s.RecordSale(context.Background(), 3, 5, 2500)
	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
}

func TestRecordSaleIncrementsCounters(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterOpen, 2, 7000))
	mock.ExpectExec("UPDATE registers SET").
		WithArgs("Front desk", model.RegisterOpen, sqlmock.AnyArg(), nil,
			int64(10000), nil, uint32(3), int64(9500), nil, sqlmock.AnyArg(),
			uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reg, err := s.RecordSale(context.Background(), 3, 5, 2500)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), reg.SalesCount)
	assert.Equal(t, int64(9500), reg.TotalSalesCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOpenRegisterIsInvalid(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterOpen, 0, 0))

	err := s.Delete(context.Background(), 3, 5)
	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, "register is open; close it first", state.Reason)
}

func TestDeleteClosedRegister(t *testing.T) {
	s, mock := newRegisterService(t)

	expectGetRegister(mock, 5, 3, registerRow(5, 3, model.RegisterClosed, 0, 0))
	mock.ExpectExec("DELETE FROM registers WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Delete(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClampsNegativeOpeningBalance(t *testing.T) {
	s, mock := newRegisterService(t)

	mock.ExpectExec("INSERT INTO registers").
		WithArgs(uint64(3), "Back office", model.RegisterClosed, int64(0), nil).
		WillReturnResult(sqlmock.NewResult(6, 1))
	expectGetRegister(mock, 6, 3, registerRow(6, 3, model.RegisterClosed, 0, 0))

	_, err := s.Create(context.Background(), 3, "Back office", -500, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresName(t *testing.T) {
	s, _ := newRegisterService(t)

	_, err := s.Create(context.Background(), 3, "  ", 0, "")
	assert.ErrorIs(t, err, ErrNameRequired)
}
