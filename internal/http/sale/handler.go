package sale

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
)

type Handler struct {
	svc *sale.Service
	cal *calendar.Calendar
}

func NewHandler(svc *sale.Service, cal *calendar.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/checkout", h.checkout)
	r.Get("/{id}", h.get)
	r.Post("/{id}/lines", h.addLine)
	r.Post("/{id}/total", h.calculateTotal)
	r.Post("/{id}/finalize", h.finalize)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/payments", h.listPayments)
}

type lineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
	UnitPrice int64     `json:"unit_price" validate:"gte=0"`
}

func (l lineRequest) params() sale.LineParams {
	return sale.LineParams{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
}

type createSaleRequest struct {
	ClientName string        `json:"client_name" validate:"max=200"`
	SoldAt     *time.Time    `json:"sold_at"`
	Lines      []lineRequest `json:"lines" validate:"dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := sale.CreateParams{
		ClientName: req.ClientName,
		Seller:     respond.Actor(r),
	}

	if req.SoldAt != nil {
		params.SoldAt = *req.SoldAt
	}

	for _, l := range req.Lines {
		params.Lines = append(params.Lines, l.params())
	}

	s, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter sale.ListFilter
		err    error
	)

	if filter.From, filter.To, err = respond.QueryPeriod(r, h.cal); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.Completed, err = respond.QueryBool(r, "completed"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(sale.Status(s))
	}

	sales, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req lineRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	line, err := h.svc.AddLine(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toLineResponse(line))
}

type totalResponse struct {
	Total int64 `json:"total"`
}

func (h *Handler) calculateTotal(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	total, err := h.svc.CalculateTotal(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, totalResponse{Total: total})
}

// finalize answers 200 with the sale whether or not this call performed the
// transition; Finalized tells the caller which.
func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	finalized, err := h.svc.Finalize(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, struct {
		Finalized bool         `json:"finalized"`
		Sale      saleResponse `json:"sale"`
	}{finalized, toResponse(s)})
}

type paymentRequest struct {
	Amount int64            `json:"amount" validate:"gt=0"`
	Mode   sale.PaymentMode `json:"mode" validate:"required,oneof=cash mobile_money bank other"`
	Note   string           `json:"note" validate:"max=500"`
	PaidAt *time.Time       `json:"paid_at"`
}

func (p paymentRequest) params(actor uuid.UUID) sale.PaymentParams {
	params := sale.PaymentParams{Amount: p.Amount, Mode: p.Mode, Actor: actor, Note: p.Note}
	if p.PaidAt != nil {
		params.PaidAt = *p.PaidAt
	}

	return params
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req paymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), id, req.params(respond.Actor(r)))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payments, err := h.svc.Payments(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

// checkoutLineRequest names a product by id or by free text; free-text
// names missing from the catalog are created.
type checkoutLineRequest struct {
	ProductID *uuid.UUID `json:"product_id" validate:"required_without=Name"`
	Name      string     `json:"name" validate:"max=200"`
	Quantity  int        `json:"quantity" validate:"gt=0"`
	UnitPrice int64      `json:"unit_price" validate:"gte=0"`
}

type checkoutRequest struct {
	ClientName string                `json:"client_name" validate:"max=200"`
	SoldAt     *time.Time            `json:"sold_at"`
	Lines      []checkoutLineRequest `json:"lines" validate:"required,min=1,dive"`
	Deposit    *paymentRequest       `json:"deposit"`
}

type checkoutResponse struct {
	Sale    saleResponse     `json:"sale"`
	Payment *paymentResponse `json:"payment,omitempty"`
	Created []uuid.UUID      `json:"created_products,omitempty"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	actor := respond.Actor(r)
	params := sale.CheckoutParams{
		ClientName: req.ClientName,
		Seller:     actor,
	}

	if req.SoldAt != nil {
		params.SoldAt = *req.SoldAt
	}

	for _, l := range req.Lines {
		params.Lines = append(params.Lines, sale.CheckoutLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	if req.Deposit != nil {
		params.Deposit = new(req.Deposit.params(actor))
	}

	res, err := h.svc.Checkout(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := checkoutResponse{Sale: toResponse(res.Sale)}

	if res.Payment != nil {
		resp.Payment = new(toPaymentResponse(res.Payment))
	}

	for _, p := range res.Created {
		resp.Created = append(resp.Created, p.ID)
	}

	respond.JSON(w, http.StatusCreated, resp)
}
