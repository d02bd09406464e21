package model

import "time"

// Register status values.  A register is a two-state lifecycle: it is
// created closed, opened for a trading session and closed again with a
// reconciliation balance.
const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// Register is a point-of-sale cash drawer owned by a seller.
//
// Fields:
//
//	ID                  – primary key identifier.
//	SellerID            – user who owns the register.
//	Name                – human-friendly register name.
//	Status              – "open" or "closed".
//	OpenedAt            – when the current/last session started (nullable).
//	ClosedAt            – when the last session ended (nullable, only
//	                      meaningful while Status is "closed").
//	OpeningBalanceCents – cash float counted in at open, never negative.
//	ClosingBalanceCents – cash counted out at close (nullable).
//	SalesCount          – number of sales in the current session.
//	TotalSalesCents     – sales value in the current session.
//	Notes               – free-text reconciliation notes (nullable).
//	CreatedAt           – creation timestamp.
//	UpdatedAt           – last update timestamp.
type Register struct {
	ID                  uint64     `json:"id"`
	SellerID            uint64     `json:"-"`
	Name                string     `json:"name"`
	Status              string     `json:"status"`
	OpenedAt            *time.Time `json:"opened_at"`
	ClosedAt            *time.Time `json:"closed_at"`
	OpeningBalanceCents int64      `json:"opening_balance_cents"`
	ClosingBalanceCents *int64     `json:"closing_balance_cents"`
	SalesCount          uint32     `json:"sales_count"`
	TotalSalesCents     int64      `json:"total_sales_cents"`
	Notes               *string    `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Touch stamps the record as updated at the given instant.  Timestamp
// management is done explicitly by the mutating operation rather than by a
// persistence hook so it stays visible and testable.
func (r *Register) Touch(now time.Time) { r.UpdatedAt = now.UTC() }
