package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateID     = errors.New("id already exists")
	ErrBookUnavailable = errors.New("book not available")
	ErrInvalidInput    = errors.New("invalid input")
)

// PolicyError reports a borrow denied by circulation policy. State is
// left untouched when one is returned.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("borrow denied: %s", e.Reason)
}

func IsPolicyDenied(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
