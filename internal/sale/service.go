package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/observability"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)
	ListPayments(ctx context.Context, saleID uuid.UUID) ([]*Payment, error)
}

// Tx is one storage transaction. Every mutating operation on a sale first
// calls LockSale, which holds the sale row until commit so that concurrent
// finalize and payment calls on the same sale run one after another.
type Tx interface {
	LockSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	InsertSale(ctx context.Context, sale *Sale) error
	InsertLine(ctx context.Context, line *Line) error
	Lines(ctx context.Context, saleID uuid.UUID) ([]*Line, error)
	Product(ctx context.Context, productID uuid.UUID) (ProductInfo, error)
	UpdateTotal(ctx context.Context, saleID uuid.UUID, total int64) error
	// MarkFinalized flips a draft to finalized. It reports false when the
	// sale was already finalized.
	MarkFinalized(ctx context.Context, saleID uuid.UUID, total int64, status Status, at time.Time) (bool, error)
	InsertPayment(ctx context.Context, payment *Payment) error
	SumPayments(ctx context.Context, saleID uuid.UUID) (int64, error)
	UpdatePaymentState(ctx context.Context, saleID uuid.UUID, collected int64, status Status) error
	Stock() stock.Tx
	Commit() error
	Rollback() error
}

type StockLedger interface {
	AdjustTx(ctx context.Context, tx stock.Tx, params stock.AdjustParams) (stock.Applied, error)
	Settle(ctx context.Context, applied ...stock.Applied)
}

// ProductResolver turns free-text line entries into catalog products.
type ProductResolver interface {
	Resolve(ctx context.Context, params catalog.ResolveParams) (*catalog.Product, bool, error)
}

type Service struct {
	repo     Repository
	ledger   StockLedger
	resolver ProductResolver
	now      func() time.Time
	tracer   trace.Tracer
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, ledger StockLedger, resolver ProductResolver, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		ledger:   ledger,
		resolver: resolver,
		now:      time.Now,
		tracer:   observability.Tracer("comptoir/sale"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type LineParams struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice of zero takes the catalog sale price.
	UnitPrice int64
}

type CreateParams struct {
	ClientName string
	Seller     uuid.UUID
	// SoldAt defaults to now.
	SoldAt time.Time
	Lines  []LineParams
}

type PaymentParams struct {
	Amount int64
	Mode   PaymentMode
	Actor  uuid.UUID
	Note   string
	// PaidAt defaults to now.
	PaidAt time.Time
}

// CheckoutLine references a catalog product or names one in free text.
type CheckoutLine struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  int
	UnitPrice int64
}

type CheckoutParams struct {
	ClientName string
	Seller     uuid.UUID
	SoldAt     time.Time
	Lines      []CheckoutLine
	Deposit    *PaymentParams
}

type CheckoutResult struct {
	Sale    *Sale
	Payment *Payment
	// Created lists products the free-text lines added to the catalog.
	Created []*catalog.Product
}

type ListFilter struct {
	From      *time.Time
	To        *time.Time
	Completed *bool
	Status    *Status
}

// Create stores a draft sale with its lines. Each line is checked against
// the product's current on-hand.
func (s *Service) Create(ctx context.Context, params CreateParams) (_ *Sale, err error) {
	ctx, span := s.tracer.Start(ctx, "sale.Create")
	defer func() { observability.End(span, err) }()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create sale: %w", err)
	}
	defer tx.Rollback()

	sale, err := s.insertDraft(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create sale: %w", err)
	}

	return sale, nil
}

func (s *Service) insertDraft(ctx context.Context, tx Tx, params CreateParams) (*Sale, error) {
	now := s.now()

	sale := &Sale{
		ID:         uuid.New(),
		ClientName: params.ClientName,
		SellerID:   params.Seller,
		SoldAt:     params.SoldAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if sale.SoldAt.IsZero() {
		sale.SoldAt = now
	}

	lines := make([]*Line, 0, len(params.Lines))

	for _, lp := range params.Lines {
		line, err := s.buildLine(ctx, tx, sale.ID, lp)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	sale.Total = Total(lines)
	sale.PaymentStatus = DeriveStatus(0, sale.Total)

	if err := tx.InsertSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	for _, line := range lines {
		if err := tx.InsertLine(ctx, line); err != nil {
			return nil, fmt.Errorf("insert line: %w", err)
		}
	}

	sale.Lines = lines

	return sale, nil
}

// buildLine validates a line against the product's on-hand at save time.
func (s *Service) buildLine(ctx context.Context, tx Tx, saleID uuid.UUID, lp LineParams) (*Line, error) {
	if lp.Quantity <= 0 {
		return nil, invalidLine("quantity must be positive")
	}

	if lp.UnitPrice < 0 {
		return nil, invalidLine("unit price must not be negative")
	}

	product, err := tx.Product(ctx, lp.ProductID)
	if err != nil {
		return nil, err
	}

	if lp.Quantity > product.OnHand {
		return nil, &stock.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.OnHand,
			Requested:   lp.Quantity,
		}
	}

	price := lp.UnitPrice
	if price == 0 {
		price = product.SalePrice
	}

	return &Line{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    lp.Quantity,
		UnitPrice:   price,
		CreatedAt:   s.now(),
	}, nil
}

// AddLine appends a line to a draft and recomputes its total.
func (s *Service) AddLine(ctx context.Context, saleID uuid.UUID, lp LineParams) (*Line, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add line: %w", err)
	}
	defer tx.Rollback()

	sale, err := tx.LockSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if sale.Completed {
		return nil, ErrSaleFinalized
	}

	line, err := s.buildLine(ctx, tx, saleID, lp)
	if err != nil {
		return nil, err
	}

	if err := tx.InsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("insert line: %w", err)
	}

	if _, err := recalculate(ctx, tx, saleID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add line: %w", err)
	}

	return line, nil
}

// CalculateTotal recomputes the total from the stored lines and re-derives
// the payment status against it.
func (s *Service) CalculateTotal(ctx context.Context, saleID uuid.UUID) (int64, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin calculate total: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockSale(ctx, saleID); err != nil {
		return 0, err
	}

	total, err := recalculate(ctx, tx, saleID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit calculate total: %w", err)
	}

	return total, nil
}

func recalculate(ctx context.Context, tx Tx, saleID uuid.UUID) (int64, error) {
	lines, err := tx.Lines(ctx, saleID)
	if err != nil {
		return 0, fmt.Errorf("load lines: %w", err)
	}

	total := Total(lines)
	if err := tx.UpdateTotal(ctx, saleID, total); err != nil {
		return 0, fmt.Errorf("update total: %w", err)
	}

	// A new total can move a draft that already has payments across the
	// paid/partial boundary.
	collected, err := tx.SumPayments(ctx, saleID)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}

	if err := tx.UpdatePaymentState(ctx, saleID, collected, DeriveStatus(collected, total)); err != nil {
		return 0, fmt.Errorf("update payment state: %w", err)
	}

	return total, nil
}

// Finalize debits stock for every line and marks the sale complete. It
// returns false without side effects when the sale was already finalized.
// A single line failing rolls back every debit.
func (s *Service) Finalize(ctx context.Context, saleID uuid.UUID) (_ bool, err error) {
	ctx, span := s.tracer.Start(ctx, "sale.Finalize", trace.WithAttributes(attribute.String("sale_id", saleID.String())))
	defer func() { observability.End(span, err) }()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin finalize: %w", err)
	}
	defer tx.Rollback()

	sale, err := tx.LockSale(ctx, saleID)
	if err != nil {
		return false, err
	}

	if sale.Completed {
		return false, nil
	}

	lines, err := tx.Lines(ctx, saleID)
	if err != nil {
		return false, fmt.Errorf("load lines: %w", err)
	}

	applied, ok, err := s.finalizeTx(ctx, tx, sale, lines)
	if err != nil || !ok {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit finalize: %w", err)
	}

	s.ledger.Settle(ctx, applied...)
	observability.SalesFinalized.Inc()

	return true, nil
}

func (s *Service) finalizeTx(ctx context.Context, tx Tx, sale *Sale, lines []*Line) ([]stock.Applied, bool, error) {
	applied := make([]stock.Applied, 0, len(lines))

	for _, line := range lines {
		a, err := s.ledger.AdjustTx(ctx, tx.Stock(), stock.AdjustParams{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Type:      stock.MovementSaleOutbound,
			Actor:     sale.SellerID,
			Reason:    fmt.Sprintf("sale %s", sale.ID),
			MovedAt:   sale.SoldAt,
			SaleID:    &sale.ID,
		})
		if err != nil {
			return nil, false, fmt.Errorf("finalize sale %s: %w", sale.ID, err)
		}

		applied = append(applied, a)
	}

	now := s.now()
	total := Total(lines)
	status := DeriveStatus(sale.AmountCollected, total)

	ok, err := tx.MarkFinalized(ctx, sale.ID, total, status, now)
	if err != nil {
		return nil, false, fmt.Errorf("mark finalized: %w", err)
	}

	if !ok {
		return nil, false, nil
	}

	sale.Total = total
	sale.PaymentStatus = status
	sale.Completed = true
	sale.FinalizedAt = &now
	sale.Lines = lines

	return applied, true, nil
}

// RecordPayment appends a payment and re-derives the payment status from
// the sum of all payments.
func (s *Service) RecordPayment(ctx context.Context, saleID uuid.UUID, params PaymentParams) (_ *Payment, err error) {
	ctx, span := s.tracer.Start(ctx, "sale.RecordPayment", trace.WithAttributes(attribute.String("sale_id", saleID.String())))
	defer func() { observability.End(span, err) }()

	if err := validatePayment(params); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin record payment: %w", err)
	}
	defer tx.Rollback()

	sale, err := tx.LockSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	payment, err := s.recordPaymentTx(ctx, tx, sale, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit record payment: %w", err)
	}

	observability.PaymentsRecorded.WithLabelValues(string(payment.Mode)).Inc()

	return payment, nil
}

func validatePayment(params PaymentParams) error {
	if params.Amount <= 0 {
		return ErrInvalidAmount
	}

	if !params.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMode, params.Mode)
	}

	return nil
}

func (s *Service) recordPaymentTx(ctx context.Context, tx Tx, sale *Sale, params PaymentParams) (*Payment, error) {
	payment := &Payment{
		ID:      uuid.New(),
		SaleID:  sale.ID,
		Amount:  params.Amount,
		Mode:    params.Mode,
		PaidAt:  params.PaidAt,
		ActorID: params.Actor,
		Note:    params.Note,
	}

	if payment.PaidAt.IsZero() {
		payment.PaidAt = s.now()
	}

	if err := tx.InsertPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	collected, err := tx.SumPayments(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	status := DeriveStatus(collected, sale.Total)
	if err := tx.UpdatePaymentState(ctx, sale.ID, collected, status); err != nil {
		return nil, fmt.Errorf("update payment state: %w", err)
	}

	sale.AmountCollected = collected
	sale.PaymentStatus = status

	return payment, nil
}

// Checkout is the counter flow: free-text lines are resolved against the
// catalog first, then the sale is created, finalized and the optional
// deposit recorded in one transaction. Products created during resolution
// stay in the catalog even if the sale itself fails.
func (s *Service) Checkout(ctx context.Context, params CheckoutParams) (_ *CheckoutResult, err error) {
	ctx, span := s.tracer.Start(ctx, "sale.Checkout", trace.WithAttributes(attribute.Int("lines", len(params.Lines))))
	defer func() { observability.End(span, err) }()

	if len(params.Lines) == 0 {
		return nil, invalidLine("at least one line is required")
	}

	if params.Deposit != nil {
		if err := validatePayment(*params.Deposit); err != nil {
			return nil, err
		}
	}

	result := &CheckoutResult{}

	lines, err := s.resolveLines(ctx, params, result)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback()

	sale, err := s.insertDraft(ctx, tx, CreateParams{
		ClientName: params.ClientName,
		Seller:     params.Seller,
		SoldAt:     params.SoldAt,
		Lines:      lines,
	})
	if err != nil {
		return nil, err
	}

	if params.Deposit != nil {
		result.Payment, err = s.recordPaymentTx(ctx, tx, sale, *params.Deposit)
		if err != nil {
			return nil, err
		}
	}

	applied, ok, err := s.finalizeTx(ctx, tx, sale, sale.Lines)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("finalize sale %s: %w", sale.ID, ErrSaleFinalized)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	s.ledger.Settle(ctx, applied...)
	observability.SalesFinalized.Inc()

	if result.Payment != nil {
		observability.PaymentsRecorded.WithLabelValues(string(result.Payment.Mode)).Inc()
	}

	result.Sale = sale

	return result, nil
}

// resolveLines maps free-text lines to catalog products. Lines naming the
// same product, case-insensitively, are resolved once with their summed
// quantity so that a product created here holds enough stock for all of them.
func (s *Service) resolveLines(ctx context.Context, params CheckoutParams, result *CheckoutResult) ([]LineParams, error) {
	var (
		names  []string
		wanted = make(map[string]*catalog.ResolveParams)
	)

	for i, cl := range params.Lines {
		if cl.Quantity <= 0 {
			return nil, invalidLine("line %d: quantity must be positive", i+1)
		}

		if cl.ProductID != nil {
			continue
		}

		key := nameKey(cl.Name)
		if key == "" {
			return nil, invalidLine("line %d: a product or a name is required", i+1)
		}

		if rp, ok := wanted[key]; ok {
			rp.Quantity += cl.Quantity
			continue
		}

		names = append(names, key)
		wanted[key] = &catalog.ResolveParams{
			Name:      cl.Name,
			UnitPrice: cl.UnitPrice,
			Quantity:  cl.Quantity,
			Actor:     params.Seller,
		}
	}

	resolved := make(map[string]uuid.UUID, len(names))

	for _, key := range names {
		product, created, err := s.resolver.Resolve(ctx, *wanted[key])
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", wanted[key].Name, err)
		}

		if created {
			result.Created = append(result.Created, product)
		}

		resolved[key] = product.ID
	}

	lines := make([]LineParams, 0, len(params.Lines))

	for _, cl := range params.Lines {
		productID := resolved[nameKey(cl.Name)]
		if cl.ProductID != nil {
			productID = *cl.ProductID
		}

		lines = append(lines, LineParams{ProductID: productID, Quantity: cl.Quantity, UnitPrice: cl.UnitPrice})
	}

	return lines, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListSales(ctx, filter)
}

func (s *Service) Payments(ctx context.Context, saleID uuid.UUID) ([]*Payment, error) {
	if _, err := s.repo.GetSale(ctx, saleID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, saleID)
}
