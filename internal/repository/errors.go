// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// service and handler packages to distinguish between different failure
// scenarios without string matching.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when an insert violates a uniqueness rule,
// such as enrolling the same loyalty customer twice or reviewing the same
// entity twice.  Handlers translate this into HTTP 400/409.
var ErrDuplicate = errors.New("duplicate record")

// ErrBalanceConflict is returned when a conditional balance update matches
// no rows, meaning a concurrent spend drained the program between the read
// and the write.
var ErrBalanceConflict = errors.New("balance changed concurrently")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
