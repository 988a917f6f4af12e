package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
)

type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

func New(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) Begin(ctx context.Context) (expense.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning expense tx: %w", err)
	}

	return &expenseTx{tx: dbTx, dialect: s.dialect}, nil
}

func (s *Store) List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `
		SELECT id, entity, COALESCE(sector, ''), description, amount, spent_on, receipt_url, created_at
		FROM expenses
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Entity != nil {
		query += fmt.Sprintf(" AND entity = $%d", argIdx)

		args = append(args, string(*filter.Entity))
		argIdx++
	}

	if filter.Sector != nil {
		query += fmt.Sprintf(" AND sector = $%d", argIdx)

		args = append(args, *filter.Sector)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND spent_on >= $%d", argIdx)

		args = append(args, database.UTC(*filter.From))
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND spent_on < $%d", argIdx)

		args = append(args, database.UTC(*filter.To))
	}

	query += " ORDER BY spent_on DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		var (
			e      expense.Expense
			entity string
		)

		if err := rows.Scan(&e.ID, &entity, &e.Sector, &e.Description, &e.Amount, &e.SpentOn, &e.ReceiptURL, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		e.Entity = expense.Entity(entity)
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

type expenseTx struct {
	tx      *sql.Tx
	dialect database.Dialect
}

func (t *expenseTx) Commit() error   { return t.tx.Commit() }
func (t *expenseTx) Rollback() error { return t.tx.Rollback() }

func (t *expenseTx) Lock(ctx context.Context, entity expense.Entity, sector string, day time.Time) error {
	key := database.LockKey("expense", string(entity), sector, day.Format(time.DateOnly))
	return database.LockTx(ctx, t.tx, t.dialect, key)
}

func (t *expenseTx) sum(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (t *expenseTx) BoutiqueRevenue(ctx context.Context, from, to time.Time) (int64, error) {
	return t.sum(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE completed = TRUE AND sold_at >= $1 AND sold_at < $2
	`, database.UTC(from), database.UTC(to))
}

func (t *expenseTx) SalonRevenue(ctx context.Context, sector string, from, to time.Time) (int64, error) {
	return t.sum(ctx, `
		SELECT COALESCE(SUM(p.paid_amount), 0)
		FROM prestations p
		JOIN sectors s ON s.id = p.sector_id
		WHERE s.name = $1 AND p.performed_at >= $2 AND p.performed_at < $3
	`, sector, database.UTC(from), database.UTC(to))
}

func (t *expenseTx) Spent(ctx context.Context, entity expense.Entity, sector string, day time.Time) (int64, error) {
	return t.sum(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE entity = $1 AND COALESCE(sector, '') = $2 AND spent_on = $3
	`, string(entity), sector, database.UTC(day))
}

func (t *expenseTx) Insert(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (id, entity, sector, description, amount, spent_on, receipt_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := t.tx.ExecContext(ctx, query,
		e.ID,
		string(e.Entity),
		nullString(e.Sector),
		e.Description,
		e.Amount,
		database.UTC(e.SpentOn),
		e.ReceiptURL,
		database.UTC(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}
