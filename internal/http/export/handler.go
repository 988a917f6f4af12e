package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/export"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	cal *calendar.Calendar
}

func NewHandler(svc *export.Service, cal *calendar.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/receipts", h.metadata)
	r.Post("/receipts/download", h.download)
}

type exportRequest struct {
	Entity expense.Entity `json:"entity" validate:"omitempty,oneof=boutique salon"`
	// From and To are inclusive YYYY-MM-DD dates.
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (req exportRequest) filter() expense.ListFilter {
	var filter expense.ListFilter

	if req.Entity != "" {
		filter.Entity = new(req.Entity)
	}

	if t, err := time.Parse(time.DateOnly, req.From); err == nil {
		filter.From = &t
	}

	if t, err := time.Parse(time.DateOnly, req.To); err == nil {
		filter.To = new(calendar.Date(t.Year(), t.Month(), t.Day()+1))
	}

	return filter
}

type expenseResponse struct {
	ID          uuid.UUID      `json:"id"`
	Entity      expense.Entity `json:"entity"`
	Sector      string         `json:"sector,omitempty"`
	Description string         `json:"description"`
	Amount      int64          `json:"amount"`
	SpentOn     string         `json:"spent_on"`
	ReceiptURL  string         `json:"receipt_url,omitempty"`
	Receipt     string         `json:"receipt,omitempty"`
}

type exportMetadataResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Summary  string            `json:"summary"`
}

// export downloads into a scratch directory that is removed once the
// response is written.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) ([]export.Item, func(), bool) {
	var req exportRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return nil, nil, false
	}

	tmpDir, err := os.MkdirTemp("", "comptoir-receipts-*")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("creating scratch dir: %w", err))
		return nil, nil, false
	}

	cleanup := func() { os.RemoveAll(tmpDir) }

	items, err := h.svc.Export(r.Context(), req.filter(), tmpDir)
	if err != nil {
		cleanup()
		slog.ErrorContext(r.Context(), "receipt export failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)

		return nil, nil, false
	}

	return items, cleanup, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	items, cleanup, ok := h.export(w, r)
	if !ok {
		return
	}
	defer cleanup()

	resp := exportMetadataResponse{
		Expenses: make([]expenseResponse, 0, len(items)),
		Summary:  export.Summary(items),
	}

	for _, item := range items {
		e := item.Expense

		er := expenseResponse{
			ID:          e.ID,
			Entity:      e.Entity,
			Sector:      e.Sector,
			Description: e.Description,
			Amount:      e.Amount,
			SpentOn:     e.SpentOn.Format(time.DateOnly),
			ReceiptURL:  e.ReceiptURL,
		}

		if item.FilePath != "" {
			er.Receipt = filepath.Base(item.FilePath)
		}

		resp.Expenses = append(resp.Expenses, er)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	items, cleanup, ok := h.export(w, r)
	if !ok {
		return
	}
	defer cleanup()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"receipts_%s.zip\"", h.cal.Today().Format("20060102")))

	if err := export.Archive(w, items); err != nil {
		slog.ErrorContext(r.Context(), "failed to create zip", "error", err)
	}
}
