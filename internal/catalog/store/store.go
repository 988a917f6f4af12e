package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	stockStore "github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

func New(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectProductColumns.
func scanProduct(s scanner) (*catalog.Product, error) {
	var (
		p        catalog.Product
		category uuid.NullUUID
	)

	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &category, &p.CategoryName,
		&p.CostPrice, &p.SalePrice, &p.OnHand, &p.LowStockThreshold,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if category.Valid {
		p.CategoryID = &category.UUID
	}

	return &p, nil
}

const selectProductColumns = `
	p.id, p.name, p.description, p.category_id, COALESCE(c.name, ''),
	p.cost_price, p.sale_price, p.on_hand, p.low_stock_threshold,
	p.created_at, p.updated_at
`

const fromProducts = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + fromProducts + `WHERE p.id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + fromProducts + `WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.NameContains != "" {
		query += fmt.Sprintf(" AND LOWER(p.name) LIKE $%d", argIdx)

		args = append(args, containsPattern(filter.NameContains))
	}

	if filter.LowStockOnly {
		query += " AND p.on_hand <= p.low_stock_threshold"
	}

	if filter.OutOfStockOnly {
		query += " AND p.on_hand = 0"
	}

	query += " ORDER BY p.name ASC"

	return s.queryProducts(ctx, query, args...)
}

func (s *Store) SearchProducts(ctx context.Context, q string, limit int) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + fromProducts + `
		WHERE LOWER(p.name) LIKE $1
		ORDER BY p.name ASC
		LIMIT $2`

	return s.queryProducts(ctx, query, containsPattern(q), limit)
}

func containsPattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]*catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, category_id = $3, cost_price = $4, sale_price = $5,
			low_stock_threshold = $6, updated_at = $7
		WHERE id = $8
		RETURNING on_hand
	`

	now := database.UTC(time.Now())

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		nullUUID(p.CategoryID),
		p.CostPrice,
		p.SalePrice,
		p.LowStockThreshold,
		now,
		p.ID,
	).Scan(&p.OnHand)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return catalog.ErrNotFound
		case database.IsForeignKeyViolation(err):
			return catalog.ErrCategoryNotFound
		}

		return fmt.Errorf("updating product: %w", err)
	}

	p.UpdatedAt = now

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalog.ErrReferenced
		}

		return fmt.Errorf("deleting product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.Description,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return catalog.ErrDuplicateName
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category

	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

type catalogTx struct {
	tx      *sql.Tx
	dialect database.Dialect
}

func (s *Store) Begin(ctx context.Context) (catalog.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning catalog tx: %w", err)
	}

	return &catalogTx{tx: dbTx, dialect: s.dialect}, nil
}

func (t *catalogTx) Commit() error   { return t.tx.Commit() }
func (t *catalogTx) Rollback() error { return t.tx.Rollback() }

func (t *catalogTx) Stock() stock.Tx {
	return stockStore.WithTx(t.tx)
}

func (t *catalogTx) LockName(ctx context.Context, name string) error {
	return database.LockTx(ctx, t.tx, t.dialect, database.LockKey("product-name", strings.ToLower(name)))
}

func (t *catalogTx) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + fromProducts + `
		WHERE LOWER(p.name) = LOWER($1)
		ORDER BY p.created_at ASC
		LIMIT 1`

	p, err := scanProduct(t.tx.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("finding product by name: %w", err)
	}

	return p, nil
}

// UpdatePrices refreshes both prices of a restocked product.
func (t *catalogTx) UpdatePrices(ctx context.Context, id uuid.UUID, cost, sale int64) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE products SET cost_price = $1, sale_price = $2, updated_at = $3 WHERE id = $4`,
		cost, sale, database.UTC(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("updating prices: %w", err)
	}

	return nil
}

// InsertProduct always starts the product at zero on-hand; opening stock
// goes through the ledger.
func (t *catalogTx) InsertProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (id, name, description, category_id, cost_price, sale_price, on_hand, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $8)
	`

	now := database.UTC(time.Now())

	_, err := t.tx.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		nullUUID(p.CategoryID),
		p.CostPrice,
		p.SalePrice,
		p.LowStockThreshold,
		now,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalog.ErrCategoryNotFound
		}

		return fmt.Errorf("inserting product: %w", err)
	}

	p.OnHand = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	return nil
}
