package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (stock.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning stock tx: %w", err)
	}

	return &Tx{tx: dbTx}, nil
}

func (s *Store) ListMovements(ctx context.Context, filter stock.MovementFilter) ([]*stock.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, moved_at, actor_id, reason, sale_id
		FROM stock_movements
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	if filter.SaleID != nil {
		query += fmt.Sprintf(" AND sale_id = $%d", argIdx)

		args = append(args, *filter.SaleID)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND moved_at >= $%d", argIdx)

		args = append(args, database.UTC(*filter.From))
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND moved_at < $%d", argIdx)

		args = append(args, database.UTC(*filter.To))
	}

	query += " ORDER BY moved_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*stock.Movement

	for rows.Next() {
		var (
			m      stock.Movement
			typ    string
			saleID uuid.NullUUID
		)

		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.MovedAt, &m.ActorID, &m.Reason, &saleID); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		m.Type = stock.MovementType(typ)
		if saleID.Valid {
			m.SaleID = &saleID.UUID
		}

		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements: %w", err)
	}

	return movements, nil
}

// Tx implements stock.Tx on an open database transaction. Commit and
// Rollback act on that transaction, so only its owner should call them.
type Tx struct {
	tx *sql.Tx
}

// WithTx binds stock operations to a transaction opened elsewhere.
func WithTx(tx *sql.Tx) *Tx {
	return &Tx{tx: tx}
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) Increase(ctx context.Context, productID uuid.UUID, qty int) (stock.Level, error) {
	query := `
		UPDATE products
		SET on_hand = on_hand + $1, updated_at = $2
		WHERE id = $3
		RETURNING name, on_hand, low_stock_threshold
	`

	level := stock.Level{ProductID: productID}

	err := t.tx.QueryRowContext(ctx, query, qty, database.UTC(time.Now()), productID).
		Scan(&level.ProductName, &level.OnHand, &level.Threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stock.Level{}, stock.ErrNotFound
		}

		return stock.Level{}, fmt.Errorf("increasing on-hand: %w", err)
	}

	return level, nil
}

// Decrease is a guarded decrement: the row is only touched when on-hand
// covers qty, so concurrent writers serialize on the row and on-hand never
// goes below zero.
func (t *Tx) Decrease(ctx context.Context, productID uuid.UUID, qty int) (stock.Level, bool, error) {
	query := `
		UPDATE products
		SET on_hand = on_hand - $1, updated_at = $2
		WHERE id = $3 AND on_hand >= $1
		RETURNING name, on_hand, low_stock_threshold
	`

	level := stock.Level{ProductID: productID}

	err := t.tx.QueryRowContext(ctx, query, qty, database.UTC(time.Now()), productID).
		Scan(&level.ProductName, &level.OnHand, &level.Threshold)
	if err == nil {
		return level, true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return stock.Level{}, false, fmt.Errorf("decreasing on-hand: %w", err)
	}

	err = t.tx.QueryRowContext(ctx,
		`SELECT name, on_hand, low_stock_threshold FROM products WHERE id = $1`, productID,
	).Scan(&level.ProductName, &level.OnHand, &level.Threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stock.Level{}, false, stock.ErrNotFound
		}

		return stock.Level{}, false, fmt.Errorf("reading on-hand: %w", err)
	}

	return level, false, nil
}

func (t *Tx) InsertMovement(ctx context.Context, m *stock.Movement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, moved_at, actor_id, reason, sale_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var saleID uuid.NullUUID
	if m.SaleID != nil {
		saleID = uuid.NullUUID{UUID: *m.SaleID, Valid: true}
	}

	_, err := t.tx.ExecContext(ctx, query,
		m.ID,
		m.ProductID,
		m.Type,
		m.Quantity,
		database.UTC(m.MovedAt),
		m.ActorID,
		m.Reason,
		saleID,
	)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}
