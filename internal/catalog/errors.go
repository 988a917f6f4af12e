package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrReferenced       = errors.New("product is referenced by sale lines")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrDuplicateName    = errors.New("name already exists")
)

// ValidationError carries the field-level reason behind ErrInvalidProduct.
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

func invalid(format string, args ...any) error {
	return &ValidationError{Err: ErrInvalidProduct, Details: fmt.Sprintf(format, args...)}
}
