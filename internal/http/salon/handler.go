package salon

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
)

type Handler struct {
	svc *salon.Service
	cal *calendar.Calendar
}

func NewHandler(svc *salon.Service, cal *calendar.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/sectors", func(r chi.Router) {
		r.Post("/", h.createSector)
		r.Get("/", h.listSectors)
		r.Put("/{id}/rate", h.setSectorRate)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Post("/", h.createStaff)
		r.Get("/", h.listStaff)
		r.Get("/{id}", h.getStaff)
		r.Put("/{id}", h.updateStaff)
		r.Delete("/{id}", h.deleteStaff)
	})

	r.Route("/services", func(r chi.Router) {
		r.Post("/", h.createServiceType)
		r.Get("/", h.listServiceTypes)
		r.Put("/{id}", h.updateServiceType)
		r.Delete("/{id}", h.deleteServiceType)
	})

	r.Route("/prestations", func(r chi.Router) {
		r.Post("/", h.recordPrestation)
		r.Get("/", h.listPrestations)
		r.Get("/{id}", h.getPrestation)
		r.Patch("/{id}", h.updatePrestation)
		r.Delete("/{id}", h.deletePrestation)
		r.Post("/{id}/commission", h.recomputeCommission)
	})

	r.Route("/commissions", func(r chi.Router) {
		r.Get("/", h.listCommissions)
		r.Post("/{id}/paid", h.markCommissionPaid)
	})
}

type sectorRequest struct {
	Name           salon.SectorName `json:"name" validate:"required,oneof=men women"`
	ManagerID      *uuid.UUID       `json:"manager_id"`
	CommissionRate decimal.Decimal  `json:"commission_rate"`
}

func (h *Handler) createSector(w http.ResponseWriter, r *http.Request) {
	var req sectorRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.CreateSector(r.Context(), req.Name, req.ManagerID, req.CommissionRate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSectorResponse(s))
}

func (h *Handler) listSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.svc.ListSectors(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]sectorResponse, len(sectors))
	for i, s := range sectors {
		resp[i] = toSectorResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type rateRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (h *Handler) setSectorRate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req rateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.SetSectorRate(r.Context(), id, req.CommissionRate); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type staffRequest struct {
	FirstName      string           `json:"first_name" validate:"required,max=100"`
	LastName       string           `json:"last_name" validate:"required,max=100"`
	Phone          string           `json:"phone" validate:"max=30"`
	Address        string           `json:"address" validate:"max=300"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	SectorID       uuid.UUID        `json:"sector_id" validate:"required"`
}

func (s staffRequest) params() salon.StaffParams {
	return salon.StaffParams{
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Phone:          s.Phone,
		Address:        s.Address,
		CommissionRate: s.CommissionRate,
		SectorID:       s.SectorID,
	}
}

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.CreateStaff(r.Context(), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toStaffResponse(s))
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	sectorID, err := respond.QueryID(r, "sector_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	staff, err := h.svc.ListStaff(r.Context(), sectorID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]staffResponse, len(staff))
	for i, s := range staff {
		resp[i] = toStaffResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getStaff(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.GetStaff(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStaffResponse(s))
}

func (h *Handler) updateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req staffRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.UpdateStaff(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStaffResponse(s))
}

func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteStaff(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type serviceTypeRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Description     string `json:"description"`
	Price           int64  `json:"price" validate:"gte=0"`
	DurationMinutes int    `json:"estimated_duration_minutes" validate:"gte=0"`
}

func (s serviceTypeRequest) params() salon.ServiceTypeParams {
	return salon.ServiceTypeParams{
		Name:              s.Name,
		Description:       s.Description,
		Price:             s.Price,
		EstimatedDuration: time.Duration(s.DurationMinutes) * time.Minute,
	}
}

func (h *Handler) createServiceType(w http.ResponseWriter, r *http.Request) {
	var req serviceTypeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.svc.CreateServiceType(r.Context(), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toServiceTypeResponse(st))
}

func (h *Handler) listServiceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListServiceTypes(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]serviceTypeResponse, len(types))
	for i, st := range types {
		resp[i] = toServiceTypeResponse(st)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) updateServiceType(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req serviceTypeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.svc.UpdateServiceType(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toServiceTypeResponse(st))
}

func (h *Handler) deleteServiceType(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteServiceType(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type prestationRequest struct {
	StaffID       uuid.UUID  `json:"staff_id" validate:"required"`
	ServiceTypeID uuid.UUID  `json:"service_type_id" validate:"required"`
	PaidAmount    *int64     `json:"paid_amount" validate:"omitempty,gte=0"`
	PerformedAt   *time.Time `json:"performed_at"`
}

func (h *Handler) recordPrestation(w http.ResponseWriter, r *http.Request) {
	var req prestationRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := salon.PrestationParams{
		StaffID:       req.StaffID,
		ServiceTypeID: req.ServiceTypeID,
		PaidAmount:    req.PaidAmount,
	}

	if req.PerformedAt != nil {
		params.PerformedAt = *req.PerformedAt
	}

	p, c, err := h.svc.RecordPrestation(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPrestationResponse(p, c))
}

func (h *Handler) listPrestations(w http.ResponseWriter, r *http.Request) {
	var (
		filter salon.PrestationFilter
		err    error
	)

	if filter.From, filter.To, err = respond.QueryPeriod(r, h.cal); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.StaffID, err = respond.QueryID(r, "staff_id"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.SectorID, err = respond.QueryID(r, "sector_id"); err != nil {
		respond.Error(w, r, err)
		return
	}

	prestations, err := h.svc.ListPrestations(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]prestationResponse, len(prestations))
	for i, p := range prestations {
		resp[i] = toPrestationResponse(p, nil)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getPrestation(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.GetPrestation(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPrestationResponse(p, nil))
}

type updatePrestationRequest struct {
	StaffID       *uuid.UUID `json:"staff_id"`
	ServiceTypeID *uuid.UUID `json:"service_type_id"`
	PaidAmount    *int64     `json:"paid_amount" validate:"omitempty,gte=0"`
	PerformedAt   *time.Time `json:"performed_at"`
}

func (h *Handler) updatePrestation(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updatePrestationRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, c, err := h.svc.UpdatePrestation(r.Context(), id, salon.UpdatePrestationParams{
		StaffID:       req.StaffID,
		ServiceTypeID: req.ServiceTypeID,
		PaidAmount:    req.PaidAmount,
		PerformedAt:   req.PerformedAt,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPrestationResponse(p, c))
}

func (h *Handler) deletePrestation(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeletePrestation(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recomputeCommission(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.RecomputeCommission(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCommissionResponse(c))
}

func (h *Handler) listCommissions(w http.ResponseWriter, r *http.Request) {
	var (
		filter salon.CommissionFilter
		err    error
	)

	if filter.From, filter.To, err = respond.QueryDates(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.StaffID, err = respond.QueryID(r, "staff_id"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.Paid, err = respond.QueryBool(r, "paid"); err != nil {
		respond.Error(w, r, err)
		return
	}

	commissions, err := h.svc.ListCommissions(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]commissionResponse, len(commissions))
	for i, c := range commissions {
		resp[i] = toCommissionResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) markCommissionPaid(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.MarkCommissionPaid(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
