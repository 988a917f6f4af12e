package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/observability"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	List(ctx context.Context, filter ListFilter) ([]*Expense, error)
}

type Tx interface {
	// Lock serializes writers of the same entity, sector and day.
	Lock(ctx context.Context, entity Entity, sector string, day time.Time) error
	// BoutiqueRevenue sums totals of sales finalized with a sale time in
	// [from, to).
	BoutiqueRevenue(ctx context.Context, from, to time.Time) (int64, error)
	// SalonRevenue sums paid amounts of a sector's prestations in [from, to).
	SalonRevenue(ctx context.Context, sector string, from, to time.Time) (int64, error)
	Spent(ctx context.Context, entity Entity, sector string, day time.Time) (int64, error)
	Insert(ctx context.Context, expense *Expense) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo   Repository
	cal    *calendar.Calendar
	tracer trace.Tracer
}

func NewService(repo Repository, cal *calendar.Calendar) *Service {
	return &Service{
		repo:   repo,
		cal:    cal,
		tracer: observability.Tracer("comptoir/expense"),
	}
}

type RecordParams struct {
	Entity      Entity
	Sector      string
	Description string
	Amount      int64
	// SpentOn is any instant on the expense's local business day; the current
	// local date when nil.
	SpentOn    *time.Time
	ReceiptURL string
}

type ListFilter struct {
	Entity *Entity
	Sector *string
	// From and To are dates, To exclusive.
	From *time.Time
	To   *time.Time
}

func normalize(entity Entity, sector string) (string, error) {
	switch entity {
	case EntityBoutique:
		return "", nil
	case EntitySalon:
		if sector == "" {
			return "", ErrSectorRequired
		}

		if !salon.SectorName(sector).Valid() {
			return "", fmt.Errorf("%w: unknown sector %q", ErrSectorRequired, sector)
		}

		return sector, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEntity, entity)
	}
}

// Record stores an expense when it fits in what is left of the day's
// allowance. The check and the insert share one locked transaction.
func (s *Service) Record(ctx context.Context, params RecordParams) (_ *Expense, err error) {
	ctx, span := s.tracer.Start(ctx, "expense.Record", trace.WithAttributes(
		attribute.String("entity", string(params.Entity)),
		attribute.Int64("amount", params.Amount),
	))
	defer func() { observability.End(span, err) }()

	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	sector, err := normalize(params.Entity, params.Sector)
	if err != nil {
		return nil, err
	}

	day := s.cal.Today()
	if params.SpentOn != nil {
		day = s.cal.DateOf(*params.SpentOn)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin record expense: %w", err)
	}
	defer tx.Rollback()

	if err := tx.Lock(ctx, params.Entity, sector, day); err != nil {
		return nil, err
	}

	allowance, err := s.allowance(ctx, tx, params.Entity, sector, day)
	if err != nil {
		return nil, err
	}

	if params.Amount > allowance.Remaining() {
		observability.ExpensesRejected.WithLabelValues(string(params.Entity)).Inc()
		slog.InfoContext(ctx, "expense rejected",
			"entity", params.Entity, "sector", sector, "day", day.Format(time.DateOnly),
			"amount", params.Amount, "remaining", allowance.Remaining())

		return nil, &AllowanceError{Allowance: allowance, Requested: params.Amount}
	}

	e := &Expense{
		ID:          uuid.New(),
		Entity:      params.Entity,
		Sector:      sector,
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		SpentOn:     day,
		ReceiptURL:  params.ReceiptURL,
		CreatedAt:   s.cal.Now(),
	}

	if err := tx.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit record expense: %w", err)
	}

	return e, nil
}

// Allowance reports the budget of a day without recording anything.
func (s *Service) Allowance(ctx context.Context, entity Entity, sector string, day time.Time) (Allowance, error) {
	sector, err := normalize(entity, sector)
	if err != nil {
		return Allowance{}, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return Allowance{}, fmt.Errorf("begin allowance: %w", err)
	}
	defer tx.Rollback()

	return s.allowance(ctx, tx, entity, sector, calendar.Date(day.Year(), day.Month(), day.Day()))
}

func (s *Service) allowance(ctx context.Context, tx Tx, entity Entity, sector string, day time.Time) (Allowance, error) {
	from, to := s.cal.DayBounds(day)
	a := Allowance{Entity: entity, Sector: sector, Day: day}

	var err error

	switch entity {
	case EntityBoutique:
		a.Revenue, err = tx.BoutiqueRevenue(ctx, from, to)
		a.Budget = a.Revenue
	case EntitySalon:
		a.Revenue, err = tx.SalonRevenue(ctx, sector, from, to)
		a.Budget = salon.ShareOf(a.Revenue)
	}

	if err != nil {
		return Allowance{}, fmt.Errorf("computing revenue: %w", err)
	}

	a.Spent, err = tx.Spent(ctx, entity, sector, day)
	if err != nil {
		return Allowance{}, fmt.Errorf("summing expenses: %w", err)
	}

	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.List(ctx, filter)
}
