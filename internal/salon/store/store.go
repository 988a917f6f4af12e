package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
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

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id, salon.ErrNotFound)
}

// affected turns a zero-row write into ErrNotFound.
func affected(res sql.Result, what string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return notFound(what, id)
	}

	return nil
}

func (s *Store) Begin(ctx context.Context) (salon.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning salon tx: %w", err)
	}

	return &salonTx{tx: dbTx}, nil
}

// Sectors

func scanSector(s scanner) (*salon.Sector, error) {
	var (
		sector  salon.Sector
		name    string
		manager uuid.NullUUID
	)

	if err := s.Scan(&sector.ID, &name, &manager, &sector.CommissionRate); err != nil {
		return nil, err
	}

	sector.Name = salon.SectorName(name)
	if manager.Valid {
		sector.ManagerID = &manager.UUID
	}

	return &sector, nil
}

func (s *Store) CreateSector(ctx context.Context, sector *salon.Sector) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sectors (id, name, manager_id, commission_rate) VALUES ($1, $2, $3, $4)`,
		sector.ID, string(sector.Name), nullUUID(sector.ManagerID), sector.CommissionRate,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return salon.ErrDuplicateSector
		}

		return fmt.Errorf("inserting sector: %w", err)
	}

	return nil
}

func (s *Store) ListSectors(ctx context.Context) ([]*salon.Sector, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, manager_id, commission_rate FROM sectors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing sectors: %w", err)
	}
	defer rows.Close()

	var sectors []*salon.Sector

	for rows.Next() {
		sector, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sector: %w", err)
		}

		sectors = append(sectors, sector)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sectors: %w", err)
	}

	return sectors, nil
}

func (s *Store) UpdateSectorRate(ctx context.Context, id uuid.UUID, rate decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sectors SET commission_rate = $1 WHERE id = $2`, rate, id)
	if err != nil {
		return fmt.Errorf("updating sector rate: %w", err)
	}

	return affected(res, "sector", id)
}

// Staff

const selectStaff = `
	SELECT st.id, st.first_name, st.last_name, st.phone, st.address, st.commission_rate,
		st.sector_id, se.name, st.created_at
	FROM staff st
	JOIN sectors se ON se.id = st.sector_id
`

func scanStaff(s scanner) (*salon.Staff, error) {
	var (
		staff  salon.Staff
		rate   decimal.NullDecimal
		sector string
	)

	if err := s.Scan(
		&staff.ID, &staff.FirstName, &staff.LastName, &staff.Phone, &staff.Address, &rate,
		&staff.SectorID, &sector, &staff.CreatedAt,
	); err != nil {
		return nil, err
	}

	staff.SectorName = salon.SectorName(sector)
	if rate.Valid {
		staff.CommissionRate = &rate.Decimal
	}

	return &staff, nil
}

func getStaff(ctx context.Context, db database.DBTX, id uuid.UUID) (*salon.Staff, error) {
	staff, err := scanStaff(db.QueryRowContext(ctx, selectStaff+`WHERE st.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("staff", id)
		}

		return nil, fmt.Errorf("getting staff: %w", err)
	}

	return staff, nil
}

func (s *Store) CreateStaff(ctx context.Context, staff *salon.Staff) error {
	query := `
		INSERT INTO staff (id, first_name, last_name, phone, address, commission_rate, sector_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		staff.ID,
		staff.FirstName,
		staff.LastName,
		staff.Phone,
		staff.Address,
		nullDecimal(staff.CommissionRate),
		staff.SectorID,
		database.UTC(staff.CreatedAt),
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return notFound("sector", staff.SectorID)
		}

		return fmt.Errorf("inserting staff: %w", err)
	}

	return nil
}

func (s *Store) GetStaff(ctx context.Context, id uuid.UUID) (*salon.Staff, error) {
	return getStaff(ctx, s.db, id)
}

func (s *Store) ListStaff(ctx context.Context, sectorID *uuid.UUID) ([]*salon.Staff, error) {
	query := selectStaff

	var args []any

	if sectorID != nil {
		query += `WHERE st.sector_id = $1`

		args = append(args, *sectorID)
	}

	query += ` ORDER BY st.last_name, st.first_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	defer rows.Close()

	var staff []*salon.Staff

	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning staff: %w", err)
		}

		staff = append(staff, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff: %w", err)
	}

	return staff, nil
}

func (s *Store) UpdateStaff(ctx context.Context, staff *salon.Staff) error {
	query := `
		UPDATE staff
		SET first_name = $1, last_name = $2, phone = $3, address = $4, commission_rate = $5, sector_id = $6
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		staff.FirstName,
		staff.LastName,
		staff.Phone,
		staff.Address,
		nullDecimal(staff.CommissionRate),
		staff.SectorID,
		staff.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return notFound("sector", staff.SectorID)
		}

		return fmt.Errorf("updating staff: %w", err)
	}

	return affected(res, "staff", staff.ID)
}

func (s *Store) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return salon.ErrReferenced
		}

		return fmt.Errorf("deleting staff: %w", err)
	}

	return affected(res, "staff", id)
}

// Service types

const selectServiceType = `SELECT id, name, description, price, estimated_duration FROM service_types `

func scanServiceType(s scanner) (*salon.ServiceType, error) {
	var (
		st      salon.ServiceType
		seconds int64
	)

	if err := s.Scan(&st.ID, &st.Name, &st.Description, &st.Price, &seconds); err != nil {
		return nil, err
	}

	st.EstimatedDuration = time.Duration(seconds) * time.Second

	return &st, nil
}

func getServiceType(ctx context.Context, db database.DBTX, id uuid.UUID) (*salon.ServiceType, error) {
	st, err := scanServiceType(db.QueryRowContext(ctx, selectServiceType+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("service type", id)
		}

		return nil, fmt.Errorf("getting service type: %w", err)
	}

	return st, nil
}

func (s *Store) CreateServiceType(ctx context.Context, st *salon.ServiceType) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO service_types (id, name, description, price, estimated_duration) VALUES ($1, $2, $3, $4, $5)`,
		st.ID, st.Name, st.Description, st.Price, int64(st.EstimatedDuration/time.Second),
	)
	if err != nil {
		return fmt.Errorf("inserting service type: %w", err)
	}

	return nil
}

func (s *Store) GetServiceType(ctx context.Context, id uuid.UUID) (*salon.ServiceType, error) {
	return getServiceType(ctx, s.db, id)
}

func (s *Store) ListServiceTypes(ctx context.Context) ([]*salon.ServiceType, error) {
	rows, err := s.db.QueryContext(ctx, selectServiceType+`ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing service types: %w", err)
	}
	defer rows.Close()

	var types []*salon.ServiceType

	for rows.Next() {
		st, err := scanServiceType(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service type: %w", err)
		}

		types = append(types, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service types: %w", err)
	}

	return types, nil
}

func (s *Store) UpdateServiceType(ctx context.Context, st *salon.ServiceType) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE service_types SET name = $1, description = $2, price = $3, estimated_duration = $4 WHERE id = $5`,
		st.Name, st.Description, st.Price, int64(st.EstimatedDuration/time.Second), st.ID,
	)
	if err != nil {
		return fmt.Errorf("updating service type: %w", err)
	}

	return affected(res, "service type", st.ID)
}

func (s *Store) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM service_types WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return salon.ErrReferenced
		}

		return fmt.Errorf("deleting service type: %w", err)
	}

	return affected(res, "service type", id)
}

// Prestations

const selectPrestation = `
	SELECT p.id, p.staff_id, st.first_name || ' ' || st.last_name, p.service_type_id, sv.name,
		p.sector_id, p.paid_amount, p.performed_at, p.created_at, p.updated_at
	FROM prestations p
	JOIN staff st ON st.id = p.staff_id
	JOIN service_types sv ON sv.id = p.service_type_id
`

func scanPrestation(s scanner) (*salon.Prestation, error) {
	var p salon.Prestation
	if err := s.Scan(
		&p.ID, &p.StaffID, &p.StaffName, &p.ServiceTypeID, &p.ServiceName,
		&p.SectorID, &p.PaidAmount, &p.PerformedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func getPrestation(ctx context.Context, db database.DBTX, id uuid.UUID) (*salon.Prestation, error) {
	p, err := scanPrestation(db.QueryRowContext(ctx, selectPrestation+`WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("prestation", id)
		}

		return nil, fmt.Errorf("getting prestation: %w", err)
	}

	return p, nil
}

func (s *Store) GetPrestation(ctx context.Context, id uuid.UUID) (*salon.Prestation, error) {
	return getPrestation(ctx, s.db, id)
}

func (s *Store) ListPrestations(ctx context.Context, filter salon.PrestationFilter) ([]*salon.Prestation, error) {
	query := selectPrestation + `WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND p.performed_at >= $%d", argIdx)

		args = append(args, database.UTC(*filter.From))
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND p.performed_at < $%d", argIdx)

		args = append(args, database.UTC(*filter.To))
		argIdx++
	}

	if filter.StaffID != nil {
		query += fmt.Sprintf(" AND p.staff_id = $%d", argIdx)

		args = append(args, *filter.StaffID)
		argIdx++
	}

	if filter.SectorID != nil {
		query += fmt.Sprintf(" AND p.sector_id = $%d", argIdx)

		args = append(args, *filter.SectorID)
	}

	query += " ORDER BY p.performed_at DESC, p.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prestations: %w", err)
	}
	defer rows.Close()

	var prestations []*salon.Prestation

	for rows.Next() {
		p, err := scanPrestation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning prestation: %w", err)
		}

		prestations = append(prestations, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prestations: %w", err)
	}

	return prestations, nil
}

func (s *Store) DeletePrestation(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prestations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting prestation: %w", err)
	}

	return affected(res, "prestation", id)
}

// Commissions

func (s *Store) ListCommissions(ctx context.Context, filter salon.CommissionFilter) ([]*salon.Commission, error) {
	query := `
		SELECT c.id, c.prestation_id, c.staff_id, st.first_name || ' ' || st.last_name,
			c.amount, c.calculated_on, c.paid
		FROM commissions c
		JOIN staff st ON st.id = c.staff_id
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND c.calculated_on >= $%d", argIdx)

		args = append(args, database.UTC(*filter.From))
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND c.calculated_on < $%d", argIdx)

		args = append(args, database.UTC(*filter.To))
		argIdx++
	}

	if filter.StaffID != nil {
		query += fmt.Sprintf(" AND c.staff_id = $%d", argIdx)

		args = append(args, *filter.StaffID)
		argIdx++
	}

	if filter.Paid != nil {
		query += fmt.Sprintf(" AND c.paid = $%d", argIdx)

		args = append(args, *filter.Paid)
	}

	query += " ORDER BY c.calculated_on DESC, c.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing commissions: %w", err)
	}
	defer rows.Close()

	var commissions []*salon.Commission

	for rows.Next() {
		var c salon.Commission
		if err := rows.Scan(&c.ID, &c.PrestationID, &c.StaffID, &c.StaffName, &c.Amount, &c.CalculatedOn, &c.Paid); err != nil {
			return nil, fmt.Errorf("scanning commission: %w", err)
		}

		commissions = append(commissions, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commissions: %w", err)
	}

	return commissions, nil
}

func (s *Store) MarkCommissionPaid(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE commissions SET paid = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking commission paid: %w", err)
	}

	return affected(res, "commission", id)
}

type salonTx struct {
	tx *sql.Tx
}

func (t *salonTx) Commit() error   { return t.tx.Commit() }
func (t *salonTx) Rollback() error { return t.tx.Rollback() }

func (t *salonTx) Staff(ctx context.Context, id uuid.UUID) (*salon.Staff, error) {
	return getStaff(ctx, t.tx, id)
}

func (t *salonTx) Sector(ctx context.Context, id uuid.UUID) (*salon.Sector, error) {
	sector, err := scanSector(t.tx.QueryRowContext(ctx,
		`SELECT id, name, manager_id, commission_rate FROM sectors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("sector", id)
		}

		return nil, fmt.Errorf("getting sector: %w", err)
	}

	return sector, nil
}

func (t *salonTx) ServiceType(ctx context.Context, id uuid.UUID) (*salon.ServiceType, error) {
	return getServiceType(ctx, t.tx, id)
}

func (t *salonTx) Prestation(ctx context.Context, id uuid.UUID) (*salon.Prestation, error) {
	return getPrestation(ctx, t.tx, id)
}

func (t *salonTx) InsertPrestation(ctx context.Context, p *salon.Prestation) error {
	query := `
		INSERT INTO prestations (id, staff_id, service_type_id, sector_id, paid_amount, performed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := t.tx.ExecContext(ctx, query,
		p.ID,
		p.StaffID,
		p.ServiceTypeID,
		p.SectorID,
		p.PaidAmount,
		database.UTC(p.PerformedAt),
		database.UTC(p.CreatedAt),
		database.UTC(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting prestation: %w", err)
	}

	return nil
}

func (t *salonTx) UpdatePrestation(ctx context.Context, p *salon.Prestation) error {
	query := `
		UPDATE prestations
		SET staff_id = $1, service_type_id = $2, sector_id = $3, paid_amount = $4, performed_at = $5, updated_at = $6
		WHERE id = $7
	`

	res, err := t.tx.ExecContext(ctx, query,
		p.StaffID,
		p.ServiceTypeID,
		p.SectorID,
		p.PaidAmount,
		database.UTC(p.PerformedAt),
		database.UTC(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating prestation: %w", err)
	}

	return affected(res, "prestation", p.ID)
}

func (t *salonTx) UpsertCommission(ctx context.Context, c *salon.Commission) error {
	query := `
		INSERT INTO commissions (id, prestation_id, staff_id, amount, calculated_on, paid)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (prestation_id) DO UPDATE
		SET staff_id = excluded.staff_id, amount = excluded.amount, calculated_on = excluded.calculated_on
		RETURNING id, paid
	`

	err := t.tx.QueryRowContext(ctx, query,
		c.ID,
		c.PrestationID,
		c.StaffID,
		c.Amount,
		database.UTC(c.CalculatedOn),
	).Scan(&c.ID, &c.Paid)
	if err != nil {
		return fmt.Errorf("upserting commission: %w", err)
	}

	return nil
}
