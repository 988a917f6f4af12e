package salon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/observability"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=salon
type Repository interface {
	Begin(ctx context.Context) (Tx, error)

	CreateSector(ctx context.Context, sector *Sector) error
	ListSectors(ctx context.Context) ([]*Sector, error)
	UpdateSectorRate(ctx context.Context, id uuid.UUID, rate decimal.Decimal) error

	CreateStaff(ctx context.Context, staff *Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error)
	ListStaff(ctx context.Context, sectorID *uuid.UUID) ([]*Staff, error)
	UpdateStaff(ctx context.Context, staff *Staff) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error

	CreateServiceType(ctx context.Context, st *ServiceType) error
	GetServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error)
	ListServiceTypes(ctx context.Context) ([]*ServiceType, error)
	UpdateServiceType(ctx context.Context, st *ServiceType) error
	DeleteServiceType(ctx context.Context, id uuid.UUID) error

	GetPrestation(ctx context.Context, id uuid.UUID) (*Prestation, error)
	ListPrestations(ctx context.Context, filter PrestationFilter) ([]*Prestation, error)
	DeletePrestation(ctx context.Context, id uuid.UUID) error

	ListCommissions(ctx context.Context, filter CommissionFilter) ([]*Commission, error)
	MarkCommissionPaid(ctx context.Context, id uuid.UUID) error
}

type Tx interface {
	Staff(ctx context.Context, id uuid.UUID) (*Staff, error)
	Sector(ctx context.Context, id uuid.UUID) (*Sector, error)
	ServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error)
	Prestation(ctx context.Context, id uuid.UUID) (*Prestation, error)
	InsertPrestation(ctx context.Context, p *Prestation) error
	UpdatePrestation(ctx context.Context, p *Prestation) error
	// UpsertCommission writes the single commission row of a prestation,
	// keeping its paid flag, and stores the row id back on c.
	UpsertCommission(ctx context.Context, c *Commission) error
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
		tracer: observability.Tracer("comptoir/salon"),
	}
}

type PrestationFilter struct {
	From     *time.Time
	To       *time.Time
	StaffID  *uuid.UUID
	SectorID *uuid.UUID
}

type CommissionFilter struct {
	// From and To bound the calculation date, To exclusive.
	From    *time.Time
	To      *time.Time
	StaffID *uuid.UUID
	Paid    *bool
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}

func (s *Service) CreateSector(ctx context.Context, name SectorName, manager *uuid.UUID, rate decimal.Decimal) (*Sector, error) {
	if !name.Valid() {
		return nil, invalid("unknown sector %q", name)
	}

	if !validRate(rate) {
		return nil, invalid("commission rate must be between 0 and 1")
	}

	sector := &Sector{ID: uuid.New(), Name: name, ManagerID: manager, CommissionRate: rate}
	if err := s.repo.CreateSector(ctx, sector); err != nil {
		return nil, err
	}

	return sector, nil
}

func (s *Service) ListSectors(ctx context.Context) ([]*Sector, error) {
	return s.repo.ListSectors(ctx)
}

// SetSectorRate changes the default rate. Existing commissions keep their
// amount until their prestation is recomputed.
func (s *Service) SetSectorRate(ctx context.Context, id uuid.UUID, rate decimal.Decimal) error {
	if !validRate(rate) {
		return invalid("commission rate must be between 0 and 1")
	}

	return s.repo.UpdateSectorRate(ctx, id, rate)
}

type StaffParams struct {
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	CommissionRate *decimal.Decimal
	SectorID       uuid.UUID
}

func (p StaffParams) validate() error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return invalid("first and last name are required")
	}

	if p.CommissionRate != nil && !validRate(*p.CommissionRate) {
		return invalid("commission rate must be between 0 and 1")
	}

	return nil
}

func (s *Service) CreateStaff(ctx context.Context, params StaffParams) (*Staff, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	staff := &Staff{
		ID:             uuid.New(),
		FirstName:      strings.TrimSpace(params.FirstName),
		LastName:       strings.TrimSpace(params.LastName),
		Phone:          params.Phone,
		Address:        params.Address,
		CommissionRate: params.CommissionRate,
		SectorID:       params.SectorID,
		CreatedAt:      s.cal.Now(),
	}

	if err := s.repo.CreateStaff(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, sectorID *uuid.UUID) ([]*Staff, error) {
	return s.repo.ListStaff(ctx, sectorID)
}

func (s *Service) UpdateStaff(ctx context.Context, id uuid.UUID, params StaffParams) (*Staff, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	staff, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	staff.FirstName = strings.TrimSpace(params.FirstName)
	staff.LastName = strings.TrimSpace(params.LastName)
	staff.Phone = params.Phone
	staff.Address = params.Address
	staff.CommissionRate = params.CommissionRate
	staff.SectorID = params.SectorID

	if err := s.repo.UpdateStaff(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// DeleteStaff fails with ErrReferenced while prestations point at the staff
// member.
func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStaff(ctx, id)
}

type ServiceTypeParams struct {
	Name              string
	Description       string
	Price             int64
	EstimatedDuration time.Duration
}

func (p ServiceTypeParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name is required")
	}

	if p.Price < 0 {
		return invalid("price must not be negative")
	}

	if p.EstimatedDuration < 0 {
		return invalid("estimated duration must not be negative")
	}

	return nil
}

func (s *Service) CreateServiceType(ctx context.Context, params ServiceTypeParams) (*ServiceType, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	st := &ServiceType{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(params.Name),
		Description:       params.Description,
		Price:             params.Price,
		EstimatedDuration: params.EstimatedDuration,
	}

	if err := s.repo.CreateServiceType(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) ListServiceTypes(ctx context.Context) ([]*ServiceType, error) {
	return s.repo.ListServiceTypes(ctx)
}

func (s *Service) UpdateServiceType(ctx context.Context, id uuid.UUID, params ServiceTypeParams) (*ServiceType, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	st := &ServiceType{
		ID:                id,
		Name:              strings.TrimSpace(params.Name),
		Description:       params.Description,
		Price:             params.Price,
		EstimatedDuration: params.EstimatedDuration,
	}

	if err := s.repo.UpdateServiceType(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteServiceType(ctx, id)
}

type PrestationParams struct {
	StaffID       uuid.UUID
	ServiceTypeID uuid.UUID
	// PaidAmount nil takes the service type's list price.
	PaidAmount *int64
	// PerformedAt defaults to now.
	PerformedAt time.Time
}

// RecordPrestation stores the prestation and then computes its commission.
func (s *Service) RecordPrestation(ctx context.Context, params PrestationParams) (_ *Prestation, _ *Commission, err error) {
	ctx, span := s.tracer.Start(ctx, "salon.RecordPrestation")
	defer func() { observability.End(span, err) }()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin record prestation: %w", err)
	}
	defer tx.Rollback()

	now := s.cal.Now()
	p := &Prestation{
		ID:            uuid.New(),
		StaffID:       params.StaffID,
		ServiceTypeID: params.ServiceTypeID,
		PerformedAt:   params.PerformedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if p.PerformedAt.IsZero() {
		p.PerformedAt = now
	}

	if err := s.fillPrestation(ctx, tx, p, params.PaidAmount); err != nil {
		return nil, nil, err
	}

	if err := tx.InsertPrestation(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("insert prestation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit record prestation: %w", err)
	}

	c, err := s.RecomputeCommission(ctx, p.ID)
	if err != nil {
		return p, nil, err
	}

	return p, c, nil
}

// fillPrestation copies the sector from the staff member and resolves the
// paid amount.
func (s *Service) fillPrestation(ctx context.Context, tx Tx, p *Prestation, paid *int64) error {
	staff, err := tx.Staff(ctx, p.StaffID)
	if err != nil {
		return err
	}

	st, err := tx.ServiceType(ctx, p.ServiceTypeID)
	if err != nil {
		return err
	}

	p.SectorID = staff.SectorID
	p.StaffName = staff.FullName()
	p.ServiceName = st.Name

	if paid == nil {
		p.PaidAmount = st.Price
		return nil
	}

	if *paid < 0 {
		return invalid("paid amount must not be negative")
	}

	p.PaidAmount = *paid

	return nil
}

type UpdatePrestationParams struct {
	StaffID       *uuid.UUID
	ServiceTypeID *uuid.UUID
	PaidAmount    *int64
	PerformedAt   *time.Time
}

// UpdatePrestation rewrites the prestation and then recomputes its
// commission, replacing the previous amount.
func (s *Service) UpdatePrestation(ctx context.Context, id uuid.UUID, params UpdatePrestationParams) (_ *Prestation, _ *Commission, err error) {
	ctx, span := s.tracer.Start(ctx, "salon.UpdatePrestation", trace.WithAttributes(attribute.String("prestation_id", id.String())))
	defer func() { observability.End(span, err) }()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin update prestation: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.Prestation(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if params.StaffID != nil {
		p.StaffID = *params.StaffID
	}

	if params.ServiceTypeID != nil {
		p.ServiceTypeID = *params.ServiceTypeID
	}

	if params.PerformedAt != nil {
		p.PerformedAt = *params.PerformedAt
	}

	paid := params.PaidAmount
	if paid == nil {
		paid = &p.PaidAmount
	}

	if err := s.fillPrestation(ctx, tx, p, paid); err != nil {
		return nil, nil, err
	}

	p.UpdatedAt = s.cal.Now()

	if err := tx.UpdatePrestation(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("update prestation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit update prestation: %w", err)
	}

	c, err := s.RecomputeCommission(ctx, p.ID)
	if err != nil {
		return p, nil, err
	}

	return p, c, nil
}

// RecomputeCommission derives the commission of a prestation from its
// current paid amount and the applicable rate. It can be called any number
// of times; the prestation keeps exactly one commission row.
func (s *Service) RecomputeCommission(ctx context.Context, prestationID uuid.UUID) (*Commission, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin recompute commission: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.Prestation(ctx, prestationID)
	if err != nil {
		return nil, err
	}

	staff, err := tx.Staff(ctx, p.StaffID)
	if err != nil {
		return nil, err
	}

	sector, err := tx.Sector(ctx, staff.SectorID)
	if err != nil {
		return nil, err
	}

	rate := ResolveRate(staff, sector)
	c := &Commission{
		ID:           uuid.New(),
		PrestationID: p.ID,
		StaffID:      staff.ID,
		StaffName:    staff.FullName(),
		Amount:       CalculateCommission(p.PaidAmount, rate),
		CalculatedOn: s.cal.DateOf(p.PerformedAt),
	}

	if err := tx.UpsertCommission(ctx, c); err != nil {
		return nil, fmt.Errorf("upsert commission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit recompute commission: %w", err)
	}

	observability.CommissionsComputed.Inc()
	slog.DebugContext(ctx, "commission computed",
		"prestation_id", p.ID, "staff_id", staff.ID, "rate", rate.String(), "amount", c.Amount)

	return c, nil
}

func (s *Service) GetPrestation(ctx context.Context, id uuid.UUID) (*Prestation, error) {
	return s.repo.GetPrestation(ctx, id)
}

func (s *Service) ListPrestations(ctx context.Context, filter PrestationFilter) ([]*Prestation, error) {
	return s.repo.ListPrestations(ctx, filter)
}

// DeletePrestation removes the prestation together with its commission.
func (s *Service) DeletePrestation(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePrestation(ctx, id)
}

func (s *Service) ListCommissions(ctx context.Context, filter CommissionFilter) ([]*Commission, error) {
	return s.repo.ListCommissions(ctx, filter)
}

func (s *Service) MarkCommissionPaid(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkCommissionPaid(ctx, id)
}
