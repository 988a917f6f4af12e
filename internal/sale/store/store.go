package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	stockStore "github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectSaleColumns = `
	id, client_name, seller_id, sold_at, total, amount_collected,
	completed, payment_status, finalized_at, created_at, updated_at
`

func scanSale(s scanner) (*sale.Sale, error) {
	var (
		sl        sale.Sale
		status    string
		finalized sql.NullTime
	)

	if err := s.Scan(
		&sl.ID, &sl.ClientName, &sl.SellerID, &sl.SoldAt, &sl.Total, &sl.AmountCollected,
		&sl.Completed, &status, &finalized, &sl.CreatedAt, &sl.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sl.PaymentStatus = sale.Status(status)
	if finalized.Valid {
		sl.FinalizedAt = &finalized.Time
	}

	return &sl, nil
}

func (s *Store) Begin(ctx context.Context) (sale.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sale tx: %w", err)
	}

	return &saleTx{tx: dbTx}, nil
}

func (s *Store) GetSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE id = $1`

	sl, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	sl.Lines, err = listLines(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	return sl, nil
}

func (s *Store) ListSales(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND sold_at >= $%d", argIdx)

		args = append(args, database.UTC(*filter.From))
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND sold_at < $%d", argIdx)

		args = append(args, database.UTC(*filter.To))
		argIdx++
	}

	if filter.Completed != nil {
		query += fmt.Sprintf(" AND completed = $%d", argIdx)

		args = append(args, *filter.Completed)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND payment_status = $%d", argIdx)

		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY sold_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales: %w", err)
	}

	return sales, nil
}

func (s *Store) ListPayments(ctx context.Context, saleID uuid.UUID) ([]*sale.Payment, error) {
	query := `
		SELECT id, sale_id, amount, mode, paid_at, actor_id, note
		FROM payments
		WHERE sale_id = $1
		ORDER BY paid_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*sale.Payment

	for rows.Next() {
		var (
			p    sale.Payment
			mode string
		)

		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &mode, &p.PaidAt, &p.ActorID, &p.Note); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Mode = sale.PaymentMode(mode)
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

func listLines(ctx context.Context, db database.DBTX, saleID uuid.UUID) ([]*sale.Line, error) {
	query := `
		SELECT l.id, l.sale_id, l.product_id, p.name, l.quantity, l.unit_price, l.created_at
		FROM sale_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1
		ORDER BY l.created_at, l.id
	`

	rows, err := db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}
	defer rows.Close()

	var lines []*sale.Line

	for rows.Next() {
		var l sale.Line
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}

		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lines: %w", err)
	}

	return lines, nil
}

type saleTx struct {
	tx *sql.Tx
}

func (t *saleTx) Commit() error   { return t.tx.Commit() }
func (t *saleTx) Rollback() error { return t.tx.Rollback() }

func (t *saleTx) Stock() stock.Tx {
	return stockStore.WithTx(t.tx)
}

// LockSale writes to the sale row before reading it. The write takes the
// row lock on Postgres and the database write lock on SQLite, and both are
// held until the transaction ends.
func (t *saleTx) LockSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	res, err := t.tx.ExecContext(ctx, `UPDATE sales SET updated_at = updated_at WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("locking sale: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("locking sale: %w", err)
	}

	if n == 0 {
		return nil, sale.ErrNotFound
	}

	sl, err := scanSale(t.tx.QueryRowContext(ctx, `SELECT `+selectSaleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("reading locked sale: %w", err)
	}

	return sl, nil
}

func (t *saleTx) InsertSale(ctx context.Context, sl *sale.Sale) error {
	query := `
		INSERT INTO sales (id, client_name, seller_id, sold_at, total, amount_collected,
			completed, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := t.tx.ExecContext(ctx, query,
		sl.ID,
		sl.ClientName,
		sl.SellerID,
		database.UTC(sl.SoldAt),
		sl.Total,
		sl.AmountCollected,
		sl.Completed,
		string(sl.PaymentStatus),
		database.UTC(sl.CreatedAt),
		database.UTC(sl.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	return nil
}

func (t *saleTx) InsertLine(ctx context.Context, l *sale.Line) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := t.tx.ExecContext(ctx, query, l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, database.UTC(l.CreatedAt))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return sale.ErrProductNotFound
		}

		return fmt.Errorf("inserting line: %w", err)
	}

	return nil
}

func (t *saleTx) Lines(ctx context.Context, saleID uuid.UUID) ([]*sale.Line, error) {
	return listLines(ctx, t.tx, saleID)
}

func (t *saleTx) Product(ctx context.Context, productID uuid.UUID) (sale.ProductInfo, error) {
	var p sale.ProductInfo

	err := t.tx.QueryRowContext(ctx,
		`SELECT id, name, on_hand, sale_price FROM products WHERE id = $1`, productID,
	).Scan(&p.ID, &p.Name, &p.OnHand, &p.SalePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sale.ProductInfo{}, sale.ErrProductNotFound
		}

		return sale.ProductInfo{}, fmt.Errorf("reading product: %w", err)
	}

	return p, nil
}

func (t *saleTx) UpdateTotal(ctx context.Context, saleID uuid.UUID, total int64) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE sales SET total = $1, updated_at = $2 WHERE id = $3`,
		total, database.UTC(time.Now()), saleID,
	)
	if err != nil {
		return fmt.Errorf("updating total: %w", err)
	}

	return nil
}

func (t *saleTx) MarkFinalized(ctx context.Context, saleID uuid.UUID, total int64, status sale.Status, at time.Time) (bool, error) {
	query := `
		UPDATE sales
		SET completed = TRUE, total = $1, payment_status = $2, finalized_at = $3, updated_at = $3
		WHERE id = $4 AND completed = FALSE
	`

	res, err := t.tx.ExecContext(ctx, query, total, string(status), database.UTC(at), saleID)
	if err != nil {
		return false, fmt.Errorf("finalizing sale: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalizing sale: %w", err)
	}

	return n == 1, nil
}

func (t *saleTx) InsertPayment(ctx context.Context, p *sale.Payment) error {
	query := `
		INSERT INTO payments (id, sale_id, amount, mode, paid_at, actor_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := t.tx.ExecContext(ctx, query, p.ID, p.SaleID, p.Amount, string(p.Mode), database.UTC(p.PaidAt), p.ActorID, p.Note)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return sale.ErrNotFound
		}

		return fmt.Errorf("inserting payment: %w", err)
	}

	return nil
}

func (t *saleTx) SumPayments(ctx context.Context, saleID uuid.UUID) (int64, error) {
	var sum int64

	err := t.tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE sale_id = $1`, saleID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("summing payments: %w", err)
	}

	return sum, nil
}

func (t *saleTx) UpdatePaymentState(ctx context.Context, saleID uuid.UUID, collected int64, status sale.Status) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE sales SET amount_collected = $1, payment_status = $2, updated_at = $3 WHERE id = $4`,
		collected, string(status), database.UTC(time.Now()), saleID,
	)
	if err != nil {
		return fmt.Errorf("updating payment state: %w", err)
	}

	return nil
}
