package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
)

type Handler struct {
	svc *report.Service
	cal *calendar.Calendar
}

func NewHandler(svc *report.Service, cal *calendar.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

// BoutiqueRoutes and SalonRoutes are mounted separately so each side can be
// restricted to its own managers.
func (h *Handler) BoutiqueRoutes(r chi.Router) {
	r.Get("/daily", h.boutiqueDaily)
	r.Get("/stock", h.stockValuation)
	r.Get("/monthly", h.monthlyRevenue)
	r.Get("/expenses", h.expenses(expense.EntityBoutique))
}

func (h *Handler) SalonRoutes(r chi.Router) {
	r.Get("/daily", h.salonDaily)
	r.Get("/range", h.salonRange)
	r.Get("/commissions", h.monthlyCommissions)
	r.Get("/expenses", h.expenses(expense.EntitySalon))
}

// day reads the day query parameter, defaulting to the current local date.
func (h *Handler) day(r *http.Request) (time.Time, error) {
	d, err := respond.QueryDate(r, "day")
	if err != nil {
		return time.Time{}, err
	}

	if d == nil {
		return h.cal.Today(), nil
	}

	return *d, nil
}

func (h *Handler) boutiqueDaily(w http.ResponseWriter, r *http.Request) {
	day, err := h.day(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.BoutiqueDaily(r.Context(), day)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBoutiqueDay(d))
}

func (h *Handler) stockValuation(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.StockValuation(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStockValuation(v))
}

func (h *Handler) monthlyRevenue(w http.ResponseWriter, r *http.Request) {
	year, month, err := respond.QueryMonth(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	m, err := h.svc.MonthlyRevenue(r.Context(), year, month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, monthRevenueResponse{
		Month:     monthLabel(m.Year, m.Month),
		Revenue:   m.Revenue,
		SaleCount: m.SaleCount,
	})
}

func (h *Handler) salonDaily(w http.ResponseWriter, r *http.Request) {
	day, err := h.day(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.SalonDaily(r.Context(), day)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSalonDay(d))
}

func (h *Handler) salonRange(w http.ResponseWriter, r *http.Request) {
	from, err := respond.QueryDate(r, "from")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	to, err := respond.QueryDate(r, "to")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	today := h.cal.Today()
	if from == nil {
		from = &today
	}

	if to == nil {
		to = &today
	}

	p, err := h.svc.SalonRange(r.Context(), *from, *to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSalonPeriod(p))
}

func (h *Handler) monthlyCommissions(w http.ResponseWriter, r *http.Request) {
	year, month, err := respond.QueryMonth(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	m, err := h.svc.MonthlyCommissions(r.Context(), year, month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMonthCommissions(m))
}

func (h *Handler) expenses(entity expense.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, err := respond.QueryMonth(r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		m, err := h.svc.MonthlyExpenses(r.Context(), entity, year, month)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toMonthExpenses(m))
	}
}
