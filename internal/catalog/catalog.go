package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// Product is a sellable item. OnHand is owned by the stock ledger and is
// read-only here.
type Product struct {
	ID                uuid.UUID
	Name              string
	Description       string
	CategoryID        *uuid.UUID
	CategoryName      string // Loaded via JOIN
	CostPrice         int64  // Cents
	SalePrice         int64  // Cents
	OnHand            int
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Product) LowStock() bool {
	return p.OnHand <= p.LowStockThreshold
}

func (p *Product) OutOfStock() bool {
	return p.OnHand == 0
}

// StockValue is the product's on-hand quantity valued at cost.
func (p *Product) StockValue() int64 {
	return p.CostPrice * int64(p.OnHand)
}
