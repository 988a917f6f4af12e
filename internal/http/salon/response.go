package salon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/salon"
)

type sectorResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           salon.SectorName `json:"name"`
	ManagerID      *uuid.UUID       `json:"manager_id,omitempty"`
	CommissionRate decimal.Decimal  `json:"commission_rate"`
}

type staffResponse struct {
	ID             uuid.UUID        `json:"id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Phone          string           `json:"phone,omitempty"`
	Address        string           `json:"address,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	SectorID       uuid.UUID        `json:"sector_id"`
	SectorName     salon.SectorName `json:"sector_name,omitempty"`
}

type serviceTypeResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"estimated_duration_minutes"`
}

type prestationResponse struct {
	ID            uuid.UUID           `json:"id"`
	StaffID       uuid.UUID           `json:"staff_id"`
	StaffName     string              `json:"staff_name,omitempty"`
	ServiceTypeID uuid.UUID           `json:"service_type_id"`
	ServiceName   string              `json:"service_name,omitempty"`
	SectorID      uuid.UUID           `json:"sector_id"`
	PaidAmount    int64               `json:"paid_amount"`
	PerformedAt   time.Time           `json:"performed_at"`
	Commission    *commissionResponse `json:"commission,omitempty"`
}

type commissionResponse struct {
	ID           uuid.UUID `json:"id"`
	PrestationID uuid.UUID `json:"prestation_id"`
	StaffID      uuid.UUID `json:"staff_id"`
	StaffName    string    `json:"staff_name,omitempty"`
	Amount       int64     `json:"amount"`
	CalculatedOn string    `json:"calculated_on"`
	Paid         bool      `json:"paid"`
}

func toSectorResponse(s *salon.Sector) sectorResponse {
	return sectorResponse{ID: s.ID, Name: s.Name, ManagerID: s.ManagerID, CommissionRate: s.CommissionRate}
}

func toStaffResponse(s *salon.Staff) staffResponse {
	return staffResponse{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Phone:          s.Phone,
		Address:        s.Address,
		CommissionRate: s.CommissionRate,
		SectorID:       s.SectorID,
		SectorName:     s.SectorName,
	}
}

func toServiceTypeResponse(st *salon.ServiceType) serviceTypeResponse {
	return serviceTypeResponse{
		ID:              st.ID,
		Name:            st.Name,
		Description:     st.Description,
		Price:           st.Price,
		DurationMinutes: int(st.EstimatedDuration / time.Minute),
	}
}

func toPrestationResponse(p *salon.Prestation, c *salon.Commission) prestationResponse {
	resp := prestationResponse{
		ID:            p.ID,
		StaffID:       p.StaffID,
		StaffName:     p.StaffName,
		ServiceTypeID: p.ServiceTypeID,
		ServiceName:   p.ServiceName,
		SectorID:      p.SectorID,
		PaidAmount:    p.PaidAmount,
		PerformedAt:   p.PerformedAt,
	}

	if c != nil {
		resp.Commission = new(toCommissionResponse(c))
	}

	return resp
}

func toCommissionResponse(c *salon.Commission) commissionResponse {
	return commissionResponse{
		ID:           c.ID,
		PrestationID: c.PrestationID,
		StaffID:      c.StaffID,
		StaffName:    c.StaffName,
		Amount:       c.Amount,
		CalculatedOn: c.CalculatedOn.Format(time.DateOnly),
		Paid:         c.Paid,
	}
}
