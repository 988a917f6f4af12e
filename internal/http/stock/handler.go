package stock

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

type Handler struct {
	ledger *stock.Ledger
	cal    *calendar.Calendar
}

func NewHandler(ledger *stock.Ledger, cal *calendar.Calendar) *Handler {
	return &Handler{ledger: ledger, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.adjust)
	r.Get("/", h.list)
}

type movementResponse struct {
	ID        uuid.UUID          `json:"id"`
	ProductID uuid.UUID          `json:"product_id"`
	Type      stock.MovementType `json:"type"`
	Quantity  int                `json:"quantity"`
	MovedAt   time.Time          `json:"moved_at"`
	ActorID   uuid.UUID          `json:"actor_id"`
	Reason    string             `json:"reason,omitempty"`
	SaleID    *uuid.UUID         `json:"sale_id,omitempty"`
}

func toResponse(m *stock.Movement) movementResponse {
	return movementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		MovedAt:   m.MovedAt,
		ActorID:   m.ActorID,
		Reason:    m.Reason,
		SaleID:    m.SaleID,
	}
}

// Sale outbound movements are only booked by sale finalization.
type adjustRequest struct {
	ProductID uuid.UUID          `json:"product_id" validate:"required"`
	Type      stock.MovementType `json:"type" validate:"required,oneof=inbound adjust_increase adjust_decrease"`
	Quantity  int                `json:"quantity" validate:"gt=0"`
	Reason    string             `json:"reason" validate:"max=500"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	m, err := h.ledger.Adjust(r.Context(), stock.AdjustParams{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Actor:     respond.Actor(r),
		Reason:    req.Reason,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter stock.MovementFilter
		err    error
	)

	if filter.ProductID, err = respond.QueryID(r, "product_id"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.SaleID, err = respond.QueryID(r, "sale_id"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.From, filter.To, err = respond.QueryPeriod(r, h.cal); err != nil {
		respond.Error(w, r, err)
		return
	}

	movements, err := h.ledger.ListMovements(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = toResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}
