package expense

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidEntity    = errors.New("unknown expense entity")
	ErrSectorRequired   = errors.New("salon expenses require a sector")
	ErrExceedsAllowance = errors.New("expense exceeds the daily allowance")
)

// AllowanceError reports a rejected expense together with the budget it
// was checked against.
type AllowanceError struct {
	Allowance Allowance
	Requested int64
}

func (e *AllowanceError) Error() string {
	return fmt.Sprintf("%s: requested %d, remaining %d", ErrExceedsAllowance, e.Requested, e.Allowance.Remaining())
}

func (e *AllowanceError) Unwrap() error {
	return ErrExceedsAllowance
}
