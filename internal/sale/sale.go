package sale

import (
	"time"

	"github.com/google/uuid"
)

// Sale moves from draft to finalized exactly once. Total and collected are
// derived values kept in sync by the service.
type Sale struct {
	ID              uuid.UUID
	ClientName      string
	SellerID        uuid.UUID
	SoldAt          time.Time
	Total           int64 // Cents
	AmountCollected int64 // Cents, sum of payments
	Completed       bool
	PaymentStatus   Status
	FinalizedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []*Line // Loaded by Get
}

// Balance is what the client still owes.
func (s *Sale) Balance() int64 {
	return max(s.Total-s.AmountCollected, 0)
}

// Line captures the unit price at sale time, independent of later catalog
// price changes.
type Line struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string // Loaded via JOIN
	Quantity    int
	UnitPrice   int64 // Cents
	CreatedAt   time.Time
}

func (l *Line) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Total sums quantity × unit price over lines.
func Total(lines []*Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}

	return total
}

// ProductInfo is the catalog state a line is validated against.
type ProductInfo struct {
	ID        uuid.UUID
	Name      string
	OnHand    int
	SalePrice int64
}
