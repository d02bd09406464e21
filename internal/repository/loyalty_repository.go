// This file defines repository methods for loyalty programs and their
// history.  A program row carries the running balance and tier; history
// rows record every earn/spend event.  Balance arithmetic and tier rules
// live in the service layer; the repository guarantees that a program row
// and its history entry are written atomically.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ErrProgramNotFound is returned when a loyalty program cannot be found or
// is not owned by the acting seller.
var ErrProgramNotFound = errors.New("loyalty program not found")

// LoyaltyRepo encapsulates all database queries related to loyalty
// programs.
type LoyaltyRepo struct {
	db *sql.DB
}

// NewLoyaltyRepo constructs a LoyaltyRepo with the provided DB handle.
func NewLoyaltyRepo(db *sql.DB) *LoyaltyRepo {
	return &LoyaltyRepo{db: db}
}

const programColumns = `id, seller_id, customer_name, customer_email,
	customer_phone, points, total_points_earned, total_points_spent, tier,
	created_at, updated_at`

func scanProgram(row interface{ Scan(...any) error }) (*model.LoyaltyProgram, error) {
	var p model.LoyaltyProgram
	err := row.Scan(&p.ID, &p.SellerID, &p.CustomerName, &p.CustomerEmail,
		&p.CustomerPhone, &p.Points, &p.TotalPointsEarned, &p.TotalPointsSpent,
		&p.Tier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new program.  ErrDuplicate is returned when the
// seller already has a program for the same customer key (enforced by a
// unique index on (seller_id, customer_key)).
func (r *LoyaltyRepo) Create(ctx context.Context, p *model.LoyaltyProgram, customerKey string) error {
	const qInsert = `INSERT INTO loyalty_programs
		(seller_id, customer_name, customer_email, customer_phone,
		 customer_key, points, total_points_earned, total_points_spent, tier)
		VALUES (?, ?, ?, ?, ?, 0, 0, 0, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		p.SellerID, p.CustomerName, p.CustomerEmail, p.CustomerPhone,
		customerKey, model.TierBronze)
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
	p.ID = uint64(id)

	got, err := r.GetByIDAndSeller(ctx, p.ID, p.SellerID)
	if err != nil {
		return err
	}
	*p = *got
	return nil
}

// GetByIDAndSeller fetches a program by id scoped to its owning seller.
func (r *LoyaltyRepo) GetByIDAndSeller(ctx context.Context, id, sellerID uint64) (*model.LoyaltyProgram, error) {
	const q = `SELECT ` + programColumns + ` FROM loyalty_programs WHERE id = ? AND seller_id = ?`
	p, err := scanProgram(r.db.QueryRowContext(ctx, q, id, sellerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return p, nil
}

// ExistsByCustomerKey reports whether the seller already has a program for
// the given dedup key (phone when present, otherwise email).
func (r *LoyaltyRepo) ExistsByCustomerKey(ctx context.Context, sellerID uint64, key string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM loyalty_programs WHERE seller_id = ? AND customer_key = ? LIMIT 1`,
		sellerID, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveEarn writes an earn mutation: the updated program counters/tier and
// the matching history entry, in one transaction.
func (r *LoyaltyRepo) SaveEarn(ctx context.Context, p *model.LoyaltyProgram, ev *model.LoyaltyEvent) error {
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

	_, err = tx.ExecContext(ctx,
		`UPDATE loyalty_programs
			SET points = ?, total_points_earned = ?, tier = ?, updated_at = ?
			WHERE id = ? AND seller_id = ?`,
		p.Points, p.TotalPointsEarned, p.Tier, p.UpdatedAt, p.ID, p.SellerID)
	if err != nil {
		return err
	}
	err = r.insertEvent(ctx, tx, ev)
	return err
}

// SaveSpend writes a spend mutation.  The balance decrement is guarded by
// a conditional WHERE clause so the non-negative invariant holds even when
// two spends race: if the row no longer has enough points the update
// matches nothing and ErrBalanceConflict is returned with no history
// written.
func (r *LoyaltyRepo) SaveSpend(ctx context.Context, p *model.LoyaltyProgram, ev *model.LoyaltyEvent) error {
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

	res, execErr := tx.ExecContext(ctx,
		`UPDATE loyalty_programs
			SET points = points - ?, total_points_spent = total_points_spent + ?, updated_at = ?
			WHERE id = ? AND seller_id = ? AND points >= ?`,
		ev.Points, ev.Points, p.UpdatedAt, p.ID, p.SellerID, ev.Points)
	if execErr != nil {
		err = execErr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrBalanceConflict
		return err
	}
	err = r.insertEvent(ctx, tx, ev)
	return err
}

func (r *LoyaltyRepo) insertEvent(ctx context.Context, tx *sql.Tx, ev *model.LoyaltyEvent) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO loyalty_events (program_id, type, points, description, sale_ref, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ProgramID, ev.Type, ev.Points, ev.Description, ev.SaleRef, ev.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// History returns a program's events newest first.
func (r *LoyaltyRepo) History(ctx context.Context, programID uint64, limit int) ([]*model.LoyaltyEvent, error) {
	const q = `SELECT id, program_id, type, points, description, sale_ref, created_at
		FROM loyalty_events WHERE program_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, programID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.LoyaltyEvent
	for rows.Next() {
		ev := new(model.LoyaltyEvent)
		if err := rows.Scan(&ev.ID, &ev.ProgramID, &ev.Type, &ev.Points,
			&ev.Description, &ev.SaleRef, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
