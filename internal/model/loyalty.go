package model

import "time"

// Loyalty tiers ordered from lowest to highest.  A program's tier is a
// function of cumulative points earned only; spending points never moves a
// program back down.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Cumulative-earned thresholds (inclusive lower bounds) for each tier
// above bronze.
const (
	SilverThreshold   = 500
	GoldThreshold     = 2000
	PlatinumThreshold = 5000
)

// TierFor returns the tier a program is entitled to for the given
// cumulative earned total.
func TierFor(totalEarned int64) string {
	switch {
	case totalEarned >= PlatinumThreshold:
		return TierPlatinum
	case totalEarned >= GoldThreshold:
		return TierGold
	case totalEarned >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// ValidTier reports whether s names a known tier.  Used to validate the
// ?tier= list filter.
func ValidTier(s string) bool {
	switch s {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// LoyaltyProgram tracks one customer's points with one seller.  Customer
// identity lives inline on the program: programs are deduplicated per
// seller by phone when present, otherwise by email.
//
// Invariant: Points == TotalPointsEarned - TotalPointsSpent and never
// negative.
type LoyaltyProgram struct {
	ID                uint64    `json:"id"`
	SellerID          uint64    `json:"-"`
	CustomerName      string    `json:"customer_name"`
	CustomerEmail     *string   `json:"customer_email"`
	CustomerPhone     *string   `json:"customer_phone"`
	Points            int64     `json:"points"`
	TotalPointsEarned int64     `json:"total_points_earned"`
	TotalPointsSpent  int64     `json:"total_points_spent"`
	Tier              string    `json:"tier"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Touch stamps the record as updated at the given instant.
func (p *LoyaltyProgram) Touch(now time.Time) { p.UpdatedAt = now.UTC() }

// Loyalty event types recorded in a program's history.
const (
	LoyaltyEarn  = "earn"
	LoyaltySpend = "spend"
)

// LoyaltyEvent is one entry in a program's ordered history.  SaleRef
// optionally links an earn event back to the sale that produced it.
type LoyaltyEvent struct {
	ID          uint64    `json:"id"`
	ProgramID   uint64    `json:"-"`
	Type        string    `json:"type"`
	Points      int64     `json:"points"`
	Description string    `json:"description"`
	SaleRef     *string   `json:"sale_ref"`
	CreatedAt   time.Time `json:"date"`
}
