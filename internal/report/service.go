package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
)

const topProducts = 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	BoutiqueTotals(ctx context.Context, from, to time.Time) (BoutiqueTotals, error)
	ProductValues(ctx context.Context) ([]ProductValue, error)
	SectorTotals(ctx context.Context, from, to time.Time) ([]SectorTotals, error)
	StaffTotals(ctx context.Context, from, to time.Time) ([]StaffTotals, error)
	StaffCount(ctx context.Context) (int, error)
	// CommissionTotals groups commissions by staff for calculation dates in
	// [from, to).
	CommissionTotals(ctx context.Context, from, to time.Time) ([]StaffCommission, error)
	// Expenses lists an entity's expenses for dates in [from, to).
	Expenses(ctx context.Context, entity expense.Entity, from, to time.Time) ([]ExpenseRow, error)
}

type Service struct {
	repo Repository
	cal  *calendar.Calendar
}

func NewService(repo Repository, cal *calendar.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

func shareOf(amount int64) int64 {
	return salon.ShareOf(amount)
}

func sumExpenses(rows []ExpenseRow) int64 {
	var total int64
	for _, r := range rows {
		total += r.Amount
	}

	return total
}

func (s *Service) BoutiqueDaily(ctx context.Context, day time.Time) (*BoutiqueDay, error) {
	from, to := s.cal.DayBounds(day)

	totals, err := s.repo.BoutiqueTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("boutique totals: %w", err)
	}

	date := calendar.Date(day.Year(), day.Month(), day.Day())

	expenses, err := s.repo.Expenses(ctx, expense.EntityBoutique, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("boutique expenses: %w", err)
	}

	report := &BoutiqueDay{
		Day:       date,
		Revenue:   totals.Revenue,
		Cost:      totals.Cost,
		Margin:    totals.Revenue - totals.Cost,
		Expenses:  sumExpenses(expenses),
		SaleCount: totals.SaleCount,
	}
	report.Net = report.Margin - report.Expenses

	return report, nil
}

func (s *Service) StockValuation(ctx context.Context) (*StockValuation, error) {
	products, err := s.repo.ProductValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("product values: %w", err)
	}

	v := &StockValuation{ProductCount: len(products)}
	byCategory := map[string]*CategoryValue{}

	var order []string

	for _, p := range products {
		value := p.Value()
		v.TotalValue += value

		if p.OnHand <= p.Threshold {
			v.LowStockCount++
		}

		key := ""
		if p.CategoryID != nil {
			key = p.CategoryID.String()
		}

		cv, ok := byCategory[key]
		if !ok {
			cv = &CategoryValue{CategoryID: p.CategoryID, Name: p.CategoryName}
			byCategory[key] = cv
			order = append(order, key)
		}

		cv.Value += value
	}

	for _, key := range order {
		v.ByCategory = append(v.ByCategory, *byCategory[key])
	}

	slices.SortStableFunc(v.ByCategory, func(a, b CategoryValue) int {
		return cmp.Compare(b.Value, a.Value)
	})

	top := slices.Clone(products)
	slices.SortStableFunc(top, func(a, b ProductValue) int {
		return cmp.Compare(b.Value(), a.Value())
	})

	v.Top = top[:min(topProducts, len(top))]

	return v, nil
}

func (s *Service) MonthlyRevenue(ctx context.Context, year int, month time.Month) (*MonthRevenue, error) {
	from, to := s.cal.MonthBounds(year, month)

	totals, err := s.repo.BoutiqueTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}

	return &MonthRevenue{Year: year, Month: month, Revenue: totals.Revenue, SaleCount: totals.SaleCount}, nil
}

func salonRevenue(sectors []SectorTotals) int64 {
	var total int64
	for _, st := range sectors {
		total += st.HouseShare()
	}

	return total
}

// PercentChange returns the change from previous to current in percent,
// rounded to two places. It is nil when previous is zero.
func PercentChange(previous, current int64) *decimal.Decimal {
	if previous == 0 {
		return nil
	}

	change := decimal.NewFromInt(current - previous).
		Div(decimal.NewFromInt(previous)).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	return &change
}

// SalonDaily loads the day and the day before concurrently.
func (s *Service) SalonDaily(ctx context.Context, day time.Time) (*SalonDay, error) {
	date := calendar.Date(day.Year(), day.Month(), day.Day())
	from, to := s.cal.DayBounds(date)
	prevFrom, prevTo := s.cal.DayBounds(calendar.Yesterday(date))

	var (
		today, yesterday []SectorTotals
		staffCount       int
		expenses         []ExpenseRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		today, err = s.repo.SectorTotals(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		yesterday, err = s.repo.SectorTotals(gctx, prevFrom, prevTo)
		return err
	})
	g.Go(func() (err error) {
		staffCount, err = s.repo.StaffCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.repo.Expenses(gctx, expense.EntitySalon, date, date.AddDate(0, 0, 1))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("salon daily: %w", err)
	}

	report := &SalonDay{
		Day:             date,
		Sectors:         today,
		Revenue:         salonRevenue(today),
		PreviousRevenue: salonRevenue(yesterday),
		StaffCount:      staffCount,
		Expenses:        sumExpenses(expenses),
	}

	for _, st := range today {
		report.Prestations += st.Prestations
	}

	report.Change = PercentChange(report.PreviousRevenue, report.Revenue)

	return report, nil
}

// SalonRange covers the local dates first through last inclusive.
func (s *Service) SalonRange(ctx context.Context, first, last time.Time) (*SalonPeriod, error) {
	from, to := s.cal.RangeBounds(first, last)

	sectors, err := s.repo.SectorTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sector totals: %w", err)
	}

	staff, err := s.repo.StaffTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("staff totals: %w", err)
	}

	period := &SalonPeriod{
		From:    calendar.Date(first.Year(), first.Month(), first.Day()),
		To:      calendar.Date(last.Year(), last.Month(), last.Day()),
		Revenue: salonRevenue(sectors),
		ByStaff: staff,
	}

	for _, st := range sectors {
		period.Prestations += st.Prestations
		period.Commissions += st.Commissions
	}

	return period, nil
}

func (s *Service) MonthlyCommissions(ctx context.Context, year int, month time.Month) (*MonthCommissions, error) {
	from, to := calendar.MonthDates(year, month)

	byStaff, err := s.repo.CommissionTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("commission totals: %w", err)
	}

	report := &MonthCommissions{Year: year, Month: month, ByStaff: byStaff}
	for _, c := range byStaff {
		report.Total += c.Total
	}

	return report, nil
}

func (s *Service) MonthlyExpenses(ctx context.Context, entity expense.Entity, year int, month time.Month) (*MonthExpenses, error) {
	from, to := calendar.MonthDates(year, month)

	rows, err := s.repo.Expenses(ctx, entity, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly expenses: %w", err)
	}

	return &MonthExpenses{Entity: entity, Year: year, Month: month, Rows: rows, Total: sumExpenses(rows)}, nil
}
