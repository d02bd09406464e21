package model

import "time"

// Roles stored in the users.role column and embedded in JWT claims.
// Sellers own registers, loyalty programs and suppliers; customers
// write reviews and curate ideabooks.  A seller account can do both.
const (
	RoleSeller   = "SELLER"
	RoleCustomer = "CUSTOMER"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
