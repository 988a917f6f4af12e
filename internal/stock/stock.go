package stock

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a change to a product's on-hand quantity.
type MovementType string

const (
	MovementInbound        MovementType = "inbound"
	MovementSaleOutbound   MovementType = "sale_outbound"
	MovementAdjustIncrease MovementType = "adjust_increase"
	MovementAdjustDecrease MovementType = "adjust_decrease"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementInbound, MovementSaleOutbound, MovementAdjustIncrease, MovementAdjustDecrease:
		return true
	}

	return false
}

// Outbound reports whether the movement removes stock.
func (t MovementType) Outbound() bool {
	return t == MovementSaleOutbound || t == MovementAdjustDecrease
}

// Movement is an append-only ledger entry. Quantity is always positive; the
// type carries the sign.
type Movement struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Type      MovementType
	Quantity  int
	MovedAt   time.Time
	ActorID   uuid.UUID
	Reason    string
	SaleID    *uuid.UUID
}

// Level is a product's stock position right after an adjustment.
type Level struct {
	ProductID   uuid.UUID
	ProductName string
	OnHand      int
	Threshold   int
}

func (l Level) Low() bool {
	return l.OnHand <= l.Threshold
}

// Applied pairs a movement with the level it produced.
type Applied struct {
	Movement *Movement
	Level    Level
}
