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

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newLoyaltyService builds a service over a sqlmock database with a frozen
// clock and no publisher.
func newLoyaltyService(t *testing.T) (*LoyaltyService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewLoyaltyService(repository.NewLoyaltyRepo(db), nil)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func programRow(id, sellerID uint64, points, earned, spent int64, tier string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "seller_id", "customer_name", "customer_email", "customer_phone",
		"points", "total_points_earned", "total_points_spent", "tier",
		"created_at", "updated_at",
	}).AddRow(id, sellerID, "Dana", "dana@example.com", nil,
		points, earned, spent, tier, fixedNow, fixedNow)
}

func TestEarnCrossesSilverThreshold(t *testing.T) {
	s, mock := newLoyaltyService(t)

	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(programRow(7, 3, 0, 0, 0, model.TierBronze))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE loyalty_programs").
		WithArgs(int64(600), int64(600), model.TierSilver, sqlmock.AnyArg(), uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_events").
		WithArgs(uint64(7), model.LoyaltyEarn, int64(600), "Points earned", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectCommit()

	p, err := s.Earn(context.Background(), 3, 7, 600, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(600), p.Points)
	assert.Equal(t, int64(600), p.TotalPointsEarned)
	assert.Equal(t, model.TierSilver, p.Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnRejectsNonPositiveAmount(t *testing.T) {
	s, _ := newLoyaltyService(t)

	for _, points := range []int64{0, -10} {
		_, err := s.Earn(context.Background(), 3, 7, points, "", "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestSpendKeepsTierAndBalanceInvariant(t *testing.T) {
	s, mock := newLoyaltyService(t)

	// 5000 earned puts the program at platinum; spending nearly all of it
	// must not move the tier back down.
	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(programRow(7, 3, 5000, 5000, 0, model.TierPlatinum))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE loyalty_programs").
		WithArgs(int64(4999), int64(4999), sqlmock.AnyArg(), uint64(7), uint64(3), int64(4999)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_events").
		WithArgs(uint64(7), model.LoyaltySpend, int64(4999), "Points spent", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	p, err := s.Spend(context.Background(), 3, 7, 4999, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Points)
	assert.Equal(t, int64(4999), p.TotalPointsSpent)
	assert.Equal(t, model.TierPlatinum, p.Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendRejectsInsufficientBalance(t *testing.T) {
	s, mock := newLoyaltyService(t)

	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(programRow(7, 3, 100, 100, 0, model.TierBronze))

	_, err := s.Spend(context.Background(), 3, 7, 500, "")
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(100), insufficient.Balance)
	// No Begin/Exec expected: the rejected spend writes nothing.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendReportsFreshBalanceOnRace(t *testing.T) {
	s, mock := newLoyaltyService(t)

	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(programRow(7, 3, 500, 500, 0, model.TierSilver))
	mock.ExpectBegin()
	// A concurrent spend drained the balance between our read and write:
	// the guarded UPDATE matches nothing.
	mock.ExpectExec("UPDATE loyalty_programs").
		WithArgs(int64(400), int64(400), sqlmock.AnyArg(), uint64(7), uint64(3), int64(400)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()
	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(programRow(7, 3, 50, 500, 450, model.TierSilver))

	_, err := s.Spend(context.Background(), 3, 7, 400, "")
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(50), insufficient.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollValidation(t *testing.T) {
	s, _ := newLoyaltyService(t)

	_, err := s.Enroll(context.Background(), 3, "   ", "dana@example.com", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = s.Enroll(context.Background(), 3, "Dana", "", "")
	assert.ErrorIs(t, err, ErrContactRequired)
}

func TestEnrollRejectsDuplicateKeyPerSeller(t *testing.T) {
	s, mock := newLoyaltyService(t)

	// Phone wins over email as the dedup key.
	mock.ExpectQuery("SELECT 1 FROM loyalty_programs WHERE seller_id = \\? AND customer_key = \\?").
		WithArgs(uint64(3), "+15550100").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	_, err := s.Enroll(context.Background(), 3, "Dana", "dana@example.com", "+15550100")
	assert.ErrorIs(t, err, ErrDuplicateCustomer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollSameCustomerDifferentSeller(t *testing.T) {
	s, mock := newLoyaltyService(t)

	// Seller 9 has no program for this key even though seller 3 does; the
	// dedup scope is per seller.
	mock.ExpectQuery("SELECT 1 FROM loyalty_programs WHERE seller_id = \\? AND customer_key = \\?").
		WithArgs(uint64(9), "dana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec("INSERT INTO loyalty_programs").
		WithArgs(uint64(9), "Dana", "dana@example.com", nil, "dana@example.com", model.TierBronze).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(11), uint64(9)).
		WillReturnRows(programRow(11, 9, 0, 0, 0, model.TierBronze))

	p, err := s.Enroll(context.Background(), 9, "Dana", "Dana@Example.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.TierBronze, p.Tier)
	assert.Equal(t, int64(0), p.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}
