package salon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SectorName string

const (
	SectorMen   SectorName = "men"
	SectorWomen SectorName = "women"
)

func (n SectorName) Valid() bool {
	return n == SectorMen || n == SectorWomen
}

// HouseShare is the fraction of salon revenue kept by the business. It
// bounds both reported salon revenue and the daily salon expense allowance.
var HouseShare = decimal.RequireFromString("0.5")

type Sector struct {
	ID             uuid.UUID
	Name           SectorName
	ManagerID      *uuid.UUID
	CommissionRate decimal.Decimal // Fraction, 0.30 is 30%
}

type Staff struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Address   string
	// CommissionRate overrides the sector rate when set and non-zero.
	CommissionRate *decimal.Decimal
	SectorID       uuid.UUID
	SectorName     SectorName // Loaded via JOIN
	CreatedAt      time.Time
}

func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

type ServiceType struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Price             int64 // Cents
	EstimatedDuration time.Duration
}

// Prestation is one service performed by a staff member. The sector is
// copied from the staff member when the record is written.
type Prestation struct {
	ID            uuid.UUID
	StaffID       uuid.UUID
	StaffName     string // Loaded via JOIN
	ServiceTypeID uuid.UUID
	ServiceName   string // Loaded via JOIN
	SectorID      uuid.UUID
	PaidAmount    int64 // Cents
	PerformedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Commission exists at most once per prestation.
type Commission struct {
	ID           uuid.UUID
	PrestationID uuid.UUID
	StaffID      uuid.UUID
	StaffName    string // Loaded via JOIN
	Amount       int64  // Cents
	CalculatedOn time.Time
	Paid         bool
}

// CalculateCommission applies rate to a paid amount in cents, rounding half
// away from zero.
func CalculateCommission(paid int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(paid).Mul(rate).Round(0).IntPart()
}

// ResolveRate picks the staff member's own rate, falling back to the
// sector's default when the staff rate is unset or zero.
func ResolveRate(staff *Staff, sector *Sector) decimal.Decimal {
	if staff.CommissionRate != nil && !staff.CommissionRate.IsZero() {
		return *staff.CommissionRate
	}

	return sector.CommissionRate
}

// ShareOf returns the house share of a salon amount in cents.
func ShareOf(amount int64) int64 {
	return CalculateCommission(amount, HouseShare)
}
