package stock

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("product not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidMovementType = errors.New("unknown movement type")
	ErrInsufficientStock   = errors.New("insufficient stock")
)

// InsufficientStockError identifies the product that could not cover an
// outbound quantity.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested", e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
