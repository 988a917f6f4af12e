package salon

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrReferenced      = errors.New("record is still referenced")
	ErrDuplicateSector = errors.New("sector already exists")
	ErrInvalid         = errors.New("invalid salon record")
)

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
	return &ValidationError{Err: ErrInvalid, Details: fmt.Sprintf(format, args...)}
}
