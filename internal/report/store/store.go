package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
)

// Store runs read-only aggregates across the boutique and salon tables.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) BoutiqueTotals(ctx context.Context, from, to time.Time) (report.BoutiqueTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(l.quantity * l.unit_price), 0),
			COALESCE(SUM(l.quantity * p.cost_price), 0),
			COUNT(DISTINCT s.id)
		FROM sales s
		LEFT JOIN sale_lines l ON l.sale_id = s.id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE s.completed = TRUE AND s.sold_at >= $1 AND s.sold_at < $2
	`

	var t report.BoutiqueTotals

	err := s.db.QueryRowContext(ctx, query, database.UTC(from), database.UTC(to)).
		Scan(&t.Revenue, &t.Cost, &t.SaleCount)
	if err != nil {
		return report.BoutiqueTotals{}, fmt.Errorf("summing boutique sales: %w", err)
	}

	return t, nil
}

func (s *Store) ProductValues(ctx context.Context) ([]report.ProductValue, error) {
	query := `
		SELECT p.id, p.name, p.category_id, COALESCE(c.name, ''), p.on_hand, p.low_stock_threshold, p.cost_price
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing product values: %w", err)
	}
	defer rows.Close()

	var values []report.ProductValue

	for rows.Next() {
		var (
			v        report.ProductValue
			category uuid.NullUUID
		)

		if err := rows.Scan(&v.ProductID, &v.Name, &category, &v.CategoryName, &v.OnHand, &v.Threshold, &v.CostPrice); err != nil {
			return nil, fmt.Errorf("scanning product value: %w", err)
		}

		if category.Valid {
			v.CategoryID = &category.UUID
		}

		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product values: %w", err)
	}

	return values, nil
}

// SectorTotals lists every sector, including those without prestations in
// the interval.
func (s *Store) SectorTotals(ctx context.Context, from, to time.Time) ([]report.SectorTotals, error) {
	query := `
		SELECT se.id, se.name,
			COALESCE(SUM(p.paid_amount), 0),
			COUNT(p.id),
			COALESCE(SUM(c.amount), 0)
		FROM sectors se
		LEFT JOIN prestations p
			ON p.sector_id = se.id AND p.performed_at >= $1 AND p.performed_at < $2
		LEFT JOIN commissions c ON c.prestation_id = p.id
		GROUP BY se.id, se.name
		ORDER BY se.name
	`

	rows, err := s.db.QueryContext(ctx, query, database.UTC(from), database.UTC(to))
	if err != nil {
		return nil, fmt.Errorf("summing sectors: %w", err)
	}
	defer rows.Close()

	var totals []report.SectorTotals

	for rows.Next() {
		var t report.SectorTotals
		if err := rows.Scan(&t.SectorID, &t.Name, &t.Gross, &t.Prestations, &t.Commissions); err != nil {
			return nil, fmt.Errorf("scanning sector totals: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sector totals: %w", err)
	}

	return totals, nil
}

func (s *Store) StaffTotals(ctx context.Context, from, to time.Time) ([]report.StaffTotals, error) {
	query := `
		SELECT st.id, st.first_name || ' ' || st.last_name, COUNT(p.id), COALESCE(SUM(p.paid_amount), 0) AS paid
		FROM prestations p
		JOIN staff st ON st.id = p.staff_id
		WHERE p.performed_at >= $1 AND p.performed_at < $2
		GROUP BY st.id, st.first_name, st.last_name
		ORDER BY paid DESC, st.last_name
	`

	rows, err := s.db.QueryContext(ctx, query, database.UTC(from), database.UTC(to))
	if err != nil {
		return nil, fmt.Errorf("summing staff: %w", err)
	}
	defer rows.Close()

	var totals []report.StaffTotals

	for rows.Next() {
		var t report.StaffTotals
		if err := rows.Scan(&t.StaffID, &t.Name, &t.Prestations, &t.Paid); err != nil {
			return nil, fmt.Errorf("scanning staff totals: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff totals: %w", err)
	}

	return totals, nil
}

func (s *Store) StaffCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting staff: %w", err)
	}

	return n, nil
}

func (s *Store) CommissionTotals(ctx context.Context, from, to time.Time) ([]report.StaffCommission, error) {
	query := `
		SELECT st.id, st.first_name || ' ' || st.last_name, SUM(c.amount) AS total
		FROM commissions c
		JOIN staff st ON st.id = c.staff_id
		WHERE c.calculated_on >= $1 AND c.calculated_on < $2
		GROUP BY st.id, st.first_name, st.last_name
		ORDER BY total DESC, st.last_name
	`

	rows, err := s.db.QueryContext(ctx, query, database.UTC(from), database.UTC(to))
	if err != nil {
		return nil, fmt.Errorf("summing commissions: %w", err)
	}
	defer rows.Close()

	var totals []report.StaffCommission

	for rows.Next() {
		var t report.StaffCommission
		if err := rows.Scan(&t.StaffID, &t.Name, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning commission totals: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commission totals: %w", err)
	}

	return totals, nil
}

func (s *Store) Expenses(ctx context.Context, entity expense.Entity, from, to time.Time) ([]report.ExpenseRow, error) {
	query := `
		SELECT id, COALESCE(sector, ''), description, amount, spent_on
		FROM expenses
		WHERE entity = $1 AND spent_on >= $2 AND spent_on < $3
		ORDER BY spent_on, created_at
	`

	rows, err := s.db.QueryContext(ctx, query, string(entity), database.UTC(from), database.UTC(to))
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []report.ExpenseRow

	for rows.Next() {
		var e report.ExpenseRow
		if err := rows.Scan(&e.ID, &e.Sector, &e.Description, &e.Amount, &e.SpentOn); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}
