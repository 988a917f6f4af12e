package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/comptoir/internal/observability"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stock
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	ListMovements(ctx context.Context, filter MovementFilter) ([]*Movement, error)
}

// Tx mutates stock inside one storage transaction. Other packages obtain a Tx
// bound to their own transaction so that stock moves commit with them.
type Tx interface {
	// Increase adds qty to on-hand.
	Increase(ctx context.Context, productID uuid.UUID, qty int) (Level, error)
	// Decrease subtracts qty only when on-hand covers it. When it does not,
	// applied is false and the returned level holds the current on-hand.
	Decrease(ctx context.Context, productID uuid.UUID, qty int) (level Level, applied bool, err error)
	InsertMovement(ctx context.Context, movement *Movement) error
	Commit() error
	Rollback() error
}

type MovementFilter struct {
	ProductID *uuid.UUID
	SaleID    *uuid.UUID
	From      *time.Time
	To        *time.Time
}

type AdjustParams struct {
	ProductID uuid.UUID
	Quantity  int
	Type      MovementType
	Actor     uuid.UUID
	Reason    string
	// MovedAt defaults to now.
	MovedAt time.Time
	SaleID  *uuid.UUID
}

type Ledger struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
	tracer   trace.Tracer
}

type Option func(*Ledger)

func WithNotifier(n Notifier) Option {
	return func(l *Ledger) {
		l.notifier = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(repo Repository, opts ...Option) *Ledger {
	l := &Ledger{
		repo:     repo,
		notifier: LogNotifier{},
		now:      time.Now,
		tracer:   observability.Tracer("comptoir/stock"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Adjust applies one movement in its own transaction.
func (l *Ledger) Adjust(ctx context.Context, params AdjustParams) (_ *Movement, err error) {
	ctx, span := l.tracer.Start(ctx, "stock.Adjust", trace.WithAttributes(
		attribute.String("product_id", params.ProductID.String()),
		attribute.String("type", string(params.Type)),
		attribute.Int("quantity", params.Quantity),
	))
	defer func() { observability.End(span, err) }()

	if err := validate(params); err != nil {
		return nil, err
	}

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin adjust: %w", err)
	}
	defer tx.Rollback()

	applied, err := l.AdjustTx(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit adjust: %w", err)
	}

	l.Settle(ctx, applied)

	return applied.Movement, nil
}

// AdjustTx applies one movement inside a transaction owned by the caller, who
// must call Settle after committing.
func (l *Ledger) AdjustTx(ctx context.Context, tx Tx, params AdjustParams) (Applied, error) {
	if err := validate(params); err != nil {
		return Applied{}, err
	}

	var (
		level Level
		err   error
	)

	if params.Type.Outbound() {
		var ok bool

		level, ok, err = tx.Decrease(ctx, params.ProductID, params.Quantity)
		if err != nil {
			return Applied{}, fmt.Errorf("decrease stock: %w", err)
		}

		if !ok {
			observability.InsufficientStock.Inc()

			return Applied{}, &InsufficientStockError{
				ProductID:   params.ProductID,
				ProductName: level.ProductName,
				Available:   level.OnHand,
				Requested:   params.Quantity,
			}
		}
	} else {
		level, err = tx.Increase(ctx, params.ProductID, params.Quantity)
		if err != nil {
			return Applied{}, fmt.Errorf("increase stock: %w", err)
		}
	}

	movedAt := params.MovedAt
	if movedAt.IsZero() {
		movedAt = l.now()
	}

	m := &Movement{
		ID:        uuid.New(),
		ProductID: params.ProductID,
		Type:      params.Type,
		Quantity:  params.Quantity,
		MovedAt:   movedAt,
		ActorID:   params.Actor,
		Reason:    params.Reason,
		SaleID:    params.SaleID,
	}

	if err := tx.InsertMovement(ctx, m); err != nil {
		return Applied{}, fmt.Errorf("insert movement: %w", err)
	}

	return Applied{Movement: m, Level: level}, nil
}

// Settle runs the post-commit side effects of committed movements.
func (l *Ledger) Settle(ctx context.Context, applied ...Applied) {
	for _, a := range applied {
		if a.Movement != nil {
			observability.StockMovements.WithLabelValues(string(a.Movement.Type)).Inc()
		}

		if a.Level.Low() {
			observability.LowStockAlerts.Inc()
			l.notifier.LowStock(ctx, a.Level)
		}
	}
}

func (l *Ledger) ListMovements(ctx context.Context, filter MovementFilter) ([]*Movement, error) {
	return l.repo.ListMovements(ctx, filter)
}

func validate(params AdjustParams) error {
	if params.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if !params.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMovementType, params.Type)
	}

	return nil
}
