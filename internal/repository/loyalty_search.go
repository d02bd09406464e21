package repository

import (
	"context"
	"strings"

	"github.com/myhouz/myhouz-server/internal/model"
)

// ProgramSearchQuery defines filters & pagination for listing a seller's
// loyalty programs.
type ProgramSearchQuery struct {
	SellerID uint64
	Search   string
	Tier     string
	Page     int
	PageSize int
}

// Search returns one page of matching programs ordered by points
// descending, plus the total match count.  Search text matches a
// case-insensitive substring of the customer's name, email or phone.
func (r *LoyaltyRepo) Search(ctx context.Context, q ProgramSearchQuery) ([]*model.LoyaltyProgram, int64, error) {
	where := []string{"seller_id = ?"}
	args := []any{q.SellerID}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where,
			`(LOWER(customer_name) LIKE ? OR LOWER(COALESCE(customer_email, '')) LIKE ? OR LOWER(COALESCE(customer_phone, '')) LIKE ?)`)
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat, pat)
	}
	if q.Tier != "" {
		where = append(where, "tier = ?")
		args = append(args, q.Tier)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM loyalty_programs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT ` + programColumns + `
		FROM loyalty_programs
		WHERE ` + cond + `
		ORDER BY points DESC, id ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.LoyaltyProgram, 0, q.PageSize)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
