package sale

import (
	"time"

	"github.com/google/uuid"
)

// Status is the payment state of a sale.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusUnpaid  Status = "unpaid"
)

type PaymentMode string

const (
	ModeCash        PaymentMode = "cash"
	ModeMobileMoney PaymentMode = "mobile_money"
	ModeBank        PaymentMode = "bank"
	ModeOther       PaymentMode = "other"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeMobileMoney, ModeBank, ModeOther:
		return true
	}

	return false
}

// Payment is append-only.
type Payment struct {
	ID      uuid.UUID
	SaleID  uuid.UUID
	Amount  int64 // Cents
	Mode    PaymentMode
	PaidAt  time.Time
	ActorID uuid.UUID
	Note    string
}

// DeriveStatus is the only source of a sale's payment status. It is always
// recomputed from the summed payments rather than patched.
func DeriveStatus(collected, total int64) Status {
	switch {
	case collected >= total:
		return StatusPaid
	case collected > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// Collected sums payment amounts.
func Collected(payments []*Payment) int64 {
	var sum int64
	for _, p := range payments {
		sum += p.Amount
	}

	return sum
}
