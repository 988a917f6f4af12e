package expense

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
)

type Handler struct {
	svc *expense.Service
	cal *calendar.Calendar
}

func NewHandler(svc *expense.Service, cal *calendar.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
	r.Get("/allowance", h.allowance)
}

type expenseResponse struct {
	ID          uuid.UUID      `json:"id"`
	Entity      expense.Entity `json:"entity"`
	Sector      string         `json:"sector,omitempty"`
	Description string         `json:"description"`
	Amount      int64          `json:"amount"`
	SpentOn     string         `json:"spent_on"`
	ReceiptURL  string         `json:"receipt_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Entity:      e.Entity,
		Sector:      e.Sector,
		Description: e.Description,
		Amount:      e.Amount,
		SpentOn:     e.SpentOn.Format(time.DateOnly),
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
	}
}

type allowanceResponse struct {
	Entity    expense.Entity `json:"entity"`
	Sector    string         `json:"sector,omitempty"`
	Day       string         `json:"day"`
	Revenue   int64          `json:"revenue"`
	Budget    int64          `json:"budget"`
	Spent     int64          `json:"spent"`
	Remaining int64          `json:"remaining"`
}

type recordRequest struct {
	Entity      expense.Entity `json:"entity" validate:"required,oneof=boutique salon"`
	Sector      string         `json:"sector" validate:"omitempty,oneof=men women"`
	Description string         `json:"description" validate:"required,max=500"`
	Amount      int64          `json:"amount" validate:"gt=0"`
	// SpentOn is a YYYY-MM-DD local date, today when empty.
	SpentOn    string `json:"spent_on" validate:"omitempty,datetime=2006-01-02"`
	ReceiptURL string `json:"receipt_url" validate:"omitempty,url"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := expense.RecordParams{
		Entity:      req.Entity,
		Sector:      req.Sector,
		Description: req.Description,
		Amount:      req.Amount,
		ReceiptURL:  req.ReceiptURL,
	}

	if req.SpentOn != "" {
		day, err := time.ParseInLocation(time.DateOnly, req.SpentOn, h.cal.Location())
		if err != nil {
			respond.Error(w, r, fmt.Errorf("%w: invalid spent_on, expected YYYY-MM-DD", respond.ErrBadRequest))
			return
		}

		params.SpentOn = &day
	}

	e, err := h.svc.Record(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter expense.ListFilter
		err    error
	)

	if filter.From, filter.To, err = respond.QueryDates(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	if s := r.URL.Query().Get("entity"); s != "" {
		filter.Entity = new(expense.Entity(s))
	}

	if s := r.URL.Query().Get("sector"); s != "" {
		filter.Sector = new(s)
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) allowance(w http.ResponseWriter, r *http.Request) {
	day := h.cal.Today()

	d, err := respond.QueryDate(r, "day")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if d != nil {
		day = *d
	}

	q := r.URL.Query()

	a, err := h.svc.Allowance(r.Context(), expense.Entity(q.Get("entity")), q.Get("sector"), day)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, allowanceResponse{
		Entity:    a.Entity,
		Sector:    a.Sector,
		Day:       a.Day.Format(time.DateOnly),
		Revenue:   a.Revenue,
		Budget:    a.Budget,
		Spent:     a.Spent,
		Remaining: a.Remaining(),
	})
}
