package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/comptoir/internal/observability"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
}

// Tx groups product creation with its opening stock movement.
type Tx interface {
	// LockName serializes resolution of the same free-text name.
	LockName(ctx context.Context, name string) error
	FindByName(ctx context.Context, name string) (*Product, error)
	InsertProduct(ctx context.Context, product *Product) error
	UpdatePrices(ctx context.Context, id uuid.UUID, cost, sale int64) error
	Stock() stock.Tx
	Commit() error
	Rollback() error
}

// StockLedger is the part of stock.Ledger the catalog books opening stock through.
type StockLedger interface {
	AdjustTx(ctx context.Context, tx stock.Tx, params stock.AdjustParams) (stock.Applied, error)
	Settle(ctx context.Context, applied ...stock.Applied)
}

const (
	DefaultLowStockThreshold = 2
	maxSearchResults         = 10
)

type Service struct {
	repo             Repository
	ledger           StockLedger
	defaultThreshold int
	tracer           trace.Tracer
}

type Option func(*Service)

// WithDefaultThreshold sets the low-stock threshold for products created
// without one.
func WithDefaultThreshold(n int) Option {
	return func(s *Service) {
		s.defaultThreshold = n
	}
}

func NewService(repo Repository, ledger StockLedger, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		ledger:           ledger,
		defaultThreshold: DefaultLowStockThreshold,
		tracer:           observability.Tracer("comptoir/catalog"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Name              string
	Description       string
	CategoryID        *uuid.UUID
	CostPrice         int64
	SalePrice         int64
	InitialQuantity   int
	LowStockThreshold *int
	Actor             uuid.UUID
}

type UpdateParams struct {
	Name              string
	Description       string
	CategoryID        *uuid.UUID
	CostPrice         int64
	SalePrice         int64
	LowStockThreshold int
}

type ListFilter struct {
	CategoryID     *uuid.UUID
	LowStockOnly   bool
	OutOfStockOnly bool
	NameContains   string
}

type ResolveParams struct {
	Name      string
	UnitPrice int64
	Quantity  int
	Actor     uuid.UUID
}

// Create inserts a product and books a positive initial quantity as an
// inbound movement in the same transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (_ *Product, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Create")
	defer func() { observability.End(span, err) }()

	threshold := s.defaultThreshold
	if params.LowStockThreshold != nil {
		threshold = *params.LowStockThreshold
	}

	p := &Product{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(params.Name),
		Description:       params.Description,
		CategoryID:        params.CategoryID,
		CostPrice:         params.CostPrice,
		SalePrice:         params.SalePrice,
		LowStockThreshold: threshold,
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if params.InitialQuantity < 0 {
		return nil, invalid("initial quantity must not be negative")
	}

	return s.insert(ctx, p, params.InitialQuantity, params.Actor, "initial stock")
}

func (s *Service) insert(ctx context.Context, p *Product, qty int, actor uuid.UUID, reason string) (*Product, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create product: %w", err)
	}
	defer tx.Rollback()

	if err := tx.InsertProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	applied, err := s.openingStock(ctx, tx, p, qty, actor, reason)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create product: %w", err)
	}

	if applied != nil {
		s.ledger.Settle(ctx, *applied)
	}

	return p, nil
}

func (s *Service) openingStock(ctx context.Context, tx Tx, p *Product, qty int, actor uuid.UUID, reason string) (*stock.Applied, error) {
	if qty == 0 {
		return nil, nil
	}

	applied, err := s.ledger.AdjustTx(ctx, tx.Stock(), stock.AdjustParams{
		ProductID: p.ID,
		Quantity:  qty,
		Type:      stock.MovementInbound,
		Actor:     actor,
		Reason:    reason,
	})
	if err != nil {
		return nil, fmt.Errorf("book opening stock: %w", err)
	}

	p.OnHand = applied.Level.OnHand

	return &applied, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// Update edits descriptive fields and prices. On-hand is never touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(params.Name)
	p.Description = params.Description
	p.CategoryID = params.CategoryID
	p.CostPrice = params.CostPrice
	p.SalePrice = params.SalePrice
	p.LowStockThreshold = params.LowStockThreshold

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete removes a product and its movements. Products still referenced by
// sale lines fail with ErrReferenced.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

// Resolve maps a free-text line onto the catalog. An existing product whose
// name matches case-insensitively is returned as is. Otherwise a product is
// created at zero cost, priced at the entered unit price, and stocked with
// the requested quantity so the line can always be fulfilled. created
// reports which of the two happened.
func (s *Service) Resolve(ctx context.Context, params ResolveParams) (_ *Product, created bool, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Resolve", trace.WithAttributes(attribute.String("name", params.Name)))
	defer func() { observability.End(span, err) }()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, false, invalid("name is required")
	}

	if params.UnitPrice < 0 {
		return nil, false, invalid("unit price must not be negative")
	}

	if params.Quantity < 0 {
		return nil, false, invalid("quantity must not be negative")
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin resolve: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockName(ctx, name); err != nil {
		return nil, false, err
	}

	existing, err := tx.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("find product by name: %w", err)
	}

	p := &Product{
		ID:                uuid.New(),
		Name:              name,
		SalePrice:         params.UnitPrice,
		LowStockThreshold: s.defaultThreshold,
	}

	if err := tx.InsertProduct(ctx, p); err != nil {
		return nil, false, fmt.Errorf("insert product: %w", err)
	}

	applied, err := s.openingStock(ctx, tx, p, params.Quantity, params.Actor, "created from sale entry")
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit resolve: %w", err)
	}

	if applied != nil {
		s.ledger.Settle(ctx, *applied)
	}

	return p, true, nil
}

type ReceiveParams struct {
	Name string
	// CostPrice and SalePrice replace the catalog prices when positive.
	CostPrice int64
	SalePrice int64
	Quantity  int
	Actor     uuid.UUID
	Reason    string
}

// Receive books a supplier delivery. A product whose name matches
// case-insensitively is restocked, otherwise it is created with the
// delivered quantity as opening stock.
func (s *Service) Receive(ctx context.Context, params ReceiveParams) (_ *Product, created bool, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Receive", trace.WithAttributes(attribute.String("name", params.Name)))
	defer func() { observability.End(span, err) }()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, false, invalid("name is required")
	}

	if params.Quantity <= 0 {
		return nil, false, invalid("delivered quantity must be positive")
	}

	if params.CostPrice < 0 || params.SalePrice < 0 {
		return nil, false, invalid("prices must not be negative")
	}

	reason := params.Reason
	if reason == "" {
		reason = "delivery"
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin receive: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockName(ctx, name); err != nil {
		return nil, false, err
	}

	p, err := tx.FindByName(ctx, name)

	switch {
	case err == nil:
		if params.CostPrice > 0 {
			p.CostPrice = params.CostPrice
		}

		if params.SalePrice > 0 {
			p.SalePrice = params.SalePrice
		}

		if err := tx.UpdatePrices(ctx, p.ID, p.CostPrice, p.SalePrice); err != nil {
			return nil, false, fmt.Errorf("update prices: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		created = true
		p = &Product{
			ID:                uuid.New(),
			Name:              name,
			CostPrice:         params.CostPrice,
			SalePrice:         params.SalePrice,
			LowStockThreshold: s.defaultThreshold,
		}

		if err := tx.InsertProduct(ctx, p); err != nil {
			return nil, false, fmt.Errorf("insert product: %w", err)
		}
	default:
		return nil, false, fmt.Errorf("find product by name: %w", err)
	}

	applied, err := s.openingStock(ctx, tx, p, params.Quantity, params.Actor, reason)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit receive: %w", err)
	}

	s.ledger.Settle(ctx, *applied)

	return p, created, nil
}

// Search matches names case-insensitively by substring.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	return s.repo.SearchProducts(ctx, query, limit)
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("category name is required")
	}

	c := &Category{ID: uuid.New(), Name: name, Description: description}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func validate(p *Product) error {
	switch {
	case p.Name == "":
		return invalid("name is required")
	case p.CostPrice < 0:
		return invalid("cost price must not be negative")
	case p.SalePrice < 0:
		return invalid("sale price must not be negative")
	case p.LowStockThreshold < 0:
		return invalid("low stock threshold must not be negative")
	}

	return nil
}
