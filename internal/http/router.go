package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/comptoir/internal/auth"
	"github.com/MrJamesThe3rd/comptoir/internal/http/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/http/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/http/export"
	"github.com/MrJamesThe3rd/comptoir/internal/http/importcsv"
	"github.com/MrJamesThe3rd/comptoir/internal/http/report"
	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/http/sale"
	"github.com/MrJamesThe3rd/comptoir/internal/http/salon"
	"github.com/MrJamesThe3rd/comptoir/internal/http/stock"
)

type Handlers struct {
	Catalog  *catalog.Handler
	Stock    *stock.Handler
	Sales    *sale.Handler
	Salon    *salon.Handler
	Expenses *expense.Handler
	Reports  *report.Handler
	Import   *importcsv.Handler
	Export   *export.Handler
}

type Options struct {
	Issuer         *auth.Issuer
	DB             *sql.DB
	AllowedOrigins []string
	Timeout        time.Duration
	Metrics        bool
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", health(opts.DB))

	if opts.Metrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	boutique := auth.RequireRole(auth.RoleBoutiqueManager)
	selling := auth.RequireRole(auth.RoleBoutiqueManager, auth.RoleSeller)
	salonOnly := auth.RequireRole(auth.RoleSalonManager)
	managers := auth.RequireRole(auth.RoleBoutiqueManager, auth.RoleSalonManager)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Issuer.Middleware)

		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/products", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(selling)
					h.Catalog.ReadRoutes(r)
				})
				r.Group(func(r chi.Router) {
					r.Use(boutique)
					h.Catalog.WriteRoutes(r)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(selling)
				h.Catalog.CategoryRoutes(r, boutique)
			})

			r.Route("/stock/movements", func(r chi.Router) {
				r.Use(boutique)
				h.Stock.Routes(r)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Use(selling)
				h.Sales.Routes(r)
			})

			r.Route("/salon", func(r chi.Router) {
				r.Use(salonOnly)
				h.Salon.Routes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(managers)
				h.Expenses.Routes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(boutique).Route("/boutique", h.Reports.BoutiqueRoutes)
				r.With(salonOnly).Route("/salon", h.Reports.SalonRoutes)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(auth.RequireRole())
				h.Export.Routes(r)
			})
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(boutique)
			h.Import.Routes(r)
		})
	})

	return router
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Database: "ok"}
		status := http.StatusOK

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				resp.Status, resp.Database = "degraded", err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		respond.JSON(w, status, resp)
	}
}
