package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/expense"
)

// BoutiqueDay summarizes finalized sales of one local day. Cost uses the
// products' current purchase price.
type BoutiqueDay struct {
	Day       time.Time
	Revenue   int64
	Cost      int64
	Margin    int64
	Expenses  int64
	Net       int64
	SaleCount int
}

type BoutiqueTotals struct {
	Revenue   int64
	Cost      int64
	SaleCount int
}

type ProductValue struct {
	ProductID    uuid.UUID
	Name         string
	CategoryID   *uuid.UUID
	CategoryName string
	OnHand       int
	Threshold    int
	CostPrice    int64
}

func (p ProductValue) Value() int64 {
	return p.CostPrice * int64(p.OnHand)
}

type CategoryValue struct {
	CategoryID *uuid.UUID // Nil groups uncategorized products
	Name       string
	Value      int64
}

type StockValuation struct {
	TotalValue    int64
	ProductCount  int
	LowStockCount int
	ByCategory    []CategoryValue
	Top           []ProductValue
}

type MonthRevenue struct {
	Year      int
	Month     time.Month
	Revenue   int64
	SaleCount int
}

type SectorTotals struct {
	SectorID    uuid.UUID
	Name        string
	Gross       int64
	Prestations int
	Commissions int64
}

// HouseShare is the part of the sector's gross kept by the salon.
func (s SectorTotals) HouseShare() int64 {
	return shareOf(s.Gross)
}

type SalonDay struct {
	Day             time.Time
	Sectors         []SectorTotals
	Revenue         int64
	PreviousRevenue int64
	// Change is the percent change from the previous day, nil when the
	// previous day had no revenue.
	Change      *decimal.Decimal
	Prestations int
	StaffCount  int
	Expenses    int64
}

type StaffTotals struct {
	StaffID     uuid.UUID
	Name        string
	Prestations int
	Paid        int64
}

type SalonPeriod struct {
	From        time.Time
	To          time.Time
	Prestations int
	Revenue     int64
	Commissions int64
	ByStaff     []StaffTotals // Ordered by Paid descending
}

type StaffCommission struct {
	StaffID uuid.UUID
	Name    string
	Total   int64
}

type MonthCommissions struct {
	Year    int
	Month   time.Month
	Total   int64
	ByStaff []StaffCommission
}

type ExpenseRow struct {
	ID          uuid.UUID
	Sector      string
	Description string
	Amount      int64
	SpentOn     time.Time
}

type MonthExpenses struct {
	Entity expense.Entity
	Year   int
	Month  time.Month
	Rows   []ExpenseRow
	Total  int64
}
