package expense

import (
	"time"

	"github.com/google/uuid"
)

type Entity string

const (
	EntityBoutique Entity = "boutique"
	EntitySalon    Entity = "salon"
)

func (e Entity) Valid() bool {
	return e == EntityBoutique || e == EntitySalon
}

type Expense struct {
	ID          uuid.UUID
	Entity      Entity
	Sector      string // Salon sector name, empty for the boutique
	Description string
	Amount      int64     // Cents
	SpentOn     time.Time // Local date
	ReceiptURL  string
	CreatedAt   time.Time
}

// Allowance is the expense budget of one entity, sector and day. Unused
// budget does not carry over to the next day.
type Allowance struct {
	Entity  Entity
	Sector  string
	Day     time.Time
	Revenue int64 // Gross revenue of the day
	Budget  int64 // Share of Revenue that may be spent
	Spent   int64
}

func (a Allowance) Remaining() int64 {
	return max(a.Budget-a.Spent, 0)
}
