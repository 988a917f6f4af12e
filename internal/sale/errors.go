package sale

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("sale not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrSaleFinalized      = errors.New("sale is already finalized")
	ErrInvalidLine        = errors.New("invalid sale line")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPaymentMode = errors.New("unknown payment mode")
)

// ValidationError carries the reason behind ErrInvalidLine.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}

	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidLine(format string, args ...any) error {
	return &ValidationError{Err: ErrInvalidLine, Details: fmt.Sprintf(format, args...)}
}
