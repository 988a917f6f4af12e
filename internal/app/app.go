// Package app wires stores, services and handlers together for the binaries.
package app

import (
	"database/sql"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/comptoir/internal/catalog/store"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/comptoir/internal/expense/store"
	"github.com/MrJamesThe3rd/comptoir/internal/export"
	comptoirHttp "github.com/MrJamesThe3rd/comptoir/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/comptoir/internal/http/catalog"
	expenseHandler "github.com/MrJamesThe3rd/comptoir/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/comptoir/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/comptoir/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/comptoir/internal/http/report"
	saleHandler "github.com/MrJamesThe3rd/comptoir/internal/http/sale"
	salonHandler "github.com/MrJamesThe3rd/comptoir/internal/http/salon"
	stockHandler "github.com/MrJamesThe3rd/comptoir/internal/http/stock"
	"github.com/MrJamesThe3rd/comptoir/internal/importer"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
	reportStore "github.com/MrJamesThe3rd/comptoir/internal/report/store"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
	saleStore "github.com/MrJamesThe3rd/comptoir/internal/sale/store"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
	salonStore "github.com/MrJamesThe3rd/comptoir/internal/salon/store"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	stockStore "github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

type Settings struct {
	LowStockThreshold int
	ReceiptsToken     string
}

type Services struct {
	Calendar *calendar.Calendar
	Ledger   *stock.Ledger
	Catalog  *catalog.Service
	Sales    *sale.Service
	Salon    *salon.Service
	Expenses *expense.Service
	Reports  *report.Service
	Import   *importer.Service
	Export   *export.Service
}

func NewServices(db *sql.DB, dialect database.Dialect, cal *calendar.Calendar, settings Settings) *Services {
	ledger := stock.NewLedger(stockStore.New(db), stock.WithClock(cal.Now))
	products := catalog.NewService(catalogStore.New(db, dialect), ledger,
		catalog.WithDefaultThreshold(settings.LowStockThreshold))
	expenses := expense.NewService(expenseStore.New(db, dialect), cal)

	return &Services{
		Calendar: cal,
		Ledger:   ledger,
		Catalog:  products,
		Sales:    sale.NewService(saleStore.New(db), ledger, products, sale.WithClock(cal.Now)),
		Salon:    salon.NewService(salonStore.New(db), cal),
		Expenses: expenses,
		Reports:  report.NewService(reportStore.New(db), cal),
		Import:   importer.NewService(products),
		Export:   export.NewService(expenses, settings.ReceiptsToken),
	}
}

func (s *Services) Handlers() comptoirHttp.Handlers {
	return comptoirHttp.Handlers{
		Catalog:  catalogHandler.NewHandler(s.Catalog),
		Stock:    stockHandler.NewHandler(s.Ledger, s.Calendar),
		Sales:    saleHandler.NewHandler(s.Sales, s.Calendar),
		Salon:    salonHandler.NewHandler(s.Salon, s.Calendar),
		Expenses: expenseHandler.NewHandler(s.Expenses, s.Calendar),
		Reports:  reportHandler.NewHandler(s.Reports, s.Calendar),
		Import:   importHandler.NewHandler(s.Import),
		Export:   exportHandler.NewHandler(s.Export, s.Calendar),
	}
}
