package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// ReadRoutes serve sellers looking up products at the till.
func (h *Handler) ReadRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/search", h.search)
	r.Get("/{id}", h.get)
}

func (h *Handler) WriteRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) CategoryRoutes(r chi.Router, write func(http.Handler) http.Handler) {
	r.Get("/", h.listCategories)
	r.With(write).Post("/", h.createCategory)
}

type productResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	CategoryID        *uuid.UUID `json:"category_id,omitempty"`
	CategoryName      string     `json:"category_name,omitempty"`
	CostPrice         int64      `json:"cost_price"`
	SalePrice         int64      `json:"sale_price"`
	OnHand            int        `json:"on_hand"`
	LowStockThreshold int        `json:"low_stock_threshold"`
	LowStock          bool       `json:"low_stock"`
	StockValue        int64      `json:"stock_value"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		CategoryName:      p.CategoryName,
		CostPrice:         p.CostPrice,
		SalePrice:         p.SalePrice,
		OnHand:            p.OnHand,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.LowStock(),
		StockValue:        p.StockValue(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toResponseList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}

type createProductRequest struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description"`
	CategoryID        *uuid.UUID `json:"category_id"`
	CostPrice         int64      `json:"cost_price" validate:"gte=0"`
	SalePrice         int64      `json:"sale_price" validate:"gte=0"`
	InitialQuantity   int        `json:"initial_quantity" validate:"gte=0"`
	LowStockThreshold *int       `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), catalog.CreateParams{
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		CostPrice:         req.CostPrice,
		SalePrice:         req.SalePrice,
		InitialQuantity:   req.InitialQuantity,
		LowStockThreshold: req.LowStockThreshold,
		Actor:             respond.Actor(r),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categoryID, err := respond.QueryID(r, "category_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	low, err := respond.QueryBool(r, "low_stock")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out, err := respond.QueryBool(r, "out_of_stock")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	products, err := h.svc.List(r.Context(), catalog.ListFilter{
		CategoryID:     categoryID,
		LowStockOnly:   low != nil && *low,
		OutOfStockOnly: out != nil && *out,
		NameContains:   r.URL.Query().Get("name"),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(products))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(products))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type updateProductRequest struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description"`
	CategoryID        *uuid.UUID `json:"category_id"`
	CostPrice         int64      `json:"cost_price" validate:"gte=0"`
	SalePrice         int64      `json:"sale_price" validate:"gte=0"`
	LowStockThreshold int        `json:"low_stock_threshold" validate:"gte=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, catalog.UpdateParams{
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		CostPrice:         req.CostPrice,
		SalePrice:         req.SalePrice,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}

	respond.JSON(w, http.StatusOK, resp)
}
