package authz

import (
	"errors"
	"fmt"
)

// Sentinel decision errors. Every denial produced by this package wraps one
// of these, so callers can classify with errors.Is.
var (
	// ErrForbidden marks a terminal authorization denial.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks an invariant violation with concurrent-safe
	// meaning (duplicate active year, duplicate root).
	ErrConflict = errors.New("conflict")
)

func forbidden(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
