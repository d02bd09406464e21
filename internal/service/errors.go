// Package service implements the marketplace business rules that sit
// between the HTTP handlers and the repositories: loyalty point
// bookkeeping, tier computation and the register open/close lifecycle.
// Every operation takes the acting seller id as an explicit argument; no
// ambient request state is read here.
package service

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned when an earn or spend amount is zero or
// negative.
var ErrInvalidAmount = errors.New("points must be a positive amount")

// ErrNameRequired is returned when enrolling a customer without a name.
var ErrNameRequired = errors.New("customer name is required")

// ErrContactRequired is returned when enrolling a customer with neither a
// phone number nor an email to deduplicate on.
var ErrContactRequired = errors.New("customer phone or email is required")

// ErrDuplicateCustomer is returned when the seller already has a loyalty
// program for this customer identity.
var ErrDuplicateCustomer = errors.New("customer is already enrolled")

// InvalidStateError signals a lifecycle operation applied to a record in
// the wrong state, such as opening an already-open register.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }

// InsufficientPointsError is returned when a spend exceeds the program's
// balance.  It carries the current balance so the client-facing message
// can include it.
type InsufficientPointsError struct {
	Balance int64
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: current balance is %d", e.Balance)
}
