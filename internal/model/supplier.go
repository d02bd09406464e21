package model

import "time"

// Supplier is a vendor record in a seller's address book.  Only Name is
// required; the remaining fields are free text.
type Supplier struct {
	ID          uint64    `json:"id"`
	SellerID    uint64    `json:"-"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Touch stamps the record as updated at the given instant.
func (s *Supplier) Touch(now time.Time) { s.UpdatedAt = now.UTC() }
