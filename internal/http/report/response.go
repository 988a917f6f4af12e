package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
)

type boutiqueDayResponse struct {
	Day       string `json:"day"`
	Revenue   int64  `json:"revenue"`
	Cost      int64  `json:"cost"`
	Margin    int64  `json:"margin"`
	Expenses  int64  `json:"expenses"`
	Net       int64  `json:"net"`
	SaleCount int    `json:"sale_count"`
}

type productValueResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	CategoryName string    `json:"category_name,omitempty"`
	OnHand       int       `json:"on_hand"`
	CostPrice    int64     `json:"cost_price"`
	Value        int64     `json:"value"`
}

type categoryValueResponse struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Name       string     `json:"name"`
	Value      int64      `json:"value"`
}

type stockValuationResponse struct {
	TotalValue    int64                   `json:"total_value"`
	ProductCount  int                     `json:"product_count"`
	LowStockCount int                     `json:"low_stock_count"`
	ByCategory    []categoryValueResponse `json:"by_category"`
	Top           []productValueResponse  `json:"top"`
}

type monthRevenueResponse struct {
	Month     string `json:"month"`
	Revenue   int64  `json:"revenue"`
	SaleCount int    `json:"sale_count"`
}

type sectorTotalsResponse struct {
	SectorID    uuid.UUID `json:"sector_id"`
	Name        string    `json:"name"`
	Gross       int64     `json:"gross"`
	HouseShare  int64     `json:"house_share"`
	Prestations int       `json:"prestations"`
	Commissions int64     `json:"commissions"`
}

type salonDayResponse struct {
	Day             string                 `json:"day"`
	Sectors         []sectorTotalsResponse `json:"sectors"`
	Revenue         int64                  `json:"revenue"`
	PreviousRevenue int64                  `json:"previous_revenue"`
	Change          *decimal.Decimal       `json:"change_percent"`
	Prestations     int                    `json:"prestations"`
	StaffCount      int                    `json:"staff_count"`
	Expenses        int64                  `json:"expenses"`
}

type staffTotalsResponse struct {
	StaffID     uuid.UUID `json:"staff_id"`
	Name        string    `json:"name"`
	Prestations int       `json:"prestations"`
	Paid        int64     `json:"paid"`
}

type salonPeriodResponse struct {
	From        string                `json:"from"`
	To          string                `json:"to"`
	Prestations int                   `json:"prestations"`
	Revenue     int64                 `json:"revenue"`
	Commissions int64                 `json:"commissions"`
	ByStaff     []staffTotalsResponse `json:"by_staff"`
}

type staffCommissionResponse struct {
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
	Total   int64     `json:"total"`
}

type monthCommissionsResponse struct {
	Month   string                    `json:"month"`
	Total   int64                     `json:"total"`
	ByStaff []staffCommissionResponse `json:"by_staff"`
}

type expenseRowResponse struct {
	ID          uuid.UUID `json:"id"`
	Sector      string    `json:"sector,omitempty"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	SpentOn     string    `json:"spent_on"`
}

type monthExpensesResponse struct {
	Entity expense.Entity       `json:"entity"`
	Month  string               `json:"month"`
	Rows   []expenseRowResponse `json:"rows"`
	Total  int64                `json:"total"`
}

func monthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func toBoutiqueDay(d *report.BoutiqueDay) boutiqueDayResponse {
	return boutiqueDayResponse{
		Day:       d.Day.Format(time.DateOnly),
		Revenue:   d.Revenue,
		Cost:      d.Cost,
		Margin:    d.Margin,
		Expenses:  d.Expenses,
		Net:       d.Net,
		SaleCount: d.SaleCount,
	}
}

func toStockValuation(v *report.StockValuation) stockValuationResponse {
	resp := stockValuationResponse{
		TotalValue:    v.TotalValue,
		ProductCount:  v.ProductCount,
		LowStockCount: v.LowStockCount,
		ByCategory:    make([]categoryValueResponse, len(v.ByCategory)),
		Top:           make([]productValueResponse, len(v.Top)),
	}

	for i, c := range v.ByCategory {
		resp.ByCategory[i] = categoryValueResponse{CategoryID: c.CategoryID, Name: c.Name, Value: c.Value}
	}

	for i, p := range v.Top {
		resp.Top[i] = productValueResponse{
			ProductID:    p.ProductID,
			Name:         p.Name,
			CategoryName: p.CategoryName,
			OnHand:       p.OnHand,
			CostPrice:    p.CostPrice,
			Value:        p.Value(),
		}
	}

	return resp
}

func toSalonDay(d *report.SalonDay) salonDayResponse {
	resp := salonDayResponse{
		Day:             d.Day.Format(time.DateOnly),
		Sectors:         make([]sectorTotalsResponse, len(d.Sectors)),
		Revenue:         d.Revenue,
		PreviousRevenue: d.PreviousRevenue,
		Change:          d.Change,
		Prestations:     d.Prestations,
		StaffCount:      d.StaffCount,
		Expenses:        d.Expenses,
	}

	for i, s := range d.Sectors {
		resp.Sectors[i] = sectorTotalsResponse{
			SectorID:    s.SectorID,
			Name:        s.Name,
			Gross:       s.Gross,
			HouseShare:  s.HouseShare(),
			Prestations: s.Prestations,
			Commissions: s.Commissions,
		}
	}

	return resp
}

func toSalonPeriod(p *report.SalonPeriod) salonPeriodResponse {
	resp := salonPeriodResponse{
		From:        p.From.Format(time.DateOnly),
		To:          p.To.Format(time.DateOnly),
		Prestations: p.Prestations,
		Revenue:     p.Revenue,
		Commissions: p.Commissions,
		ByStaff:     make([]staffTotalsResponse, len(p.ByStaff)),
	}

	for i, s := range p.ByStaff {
		resp.ByStaff[i] = staffTotalsResponse{StaffID: s.StaffID, Name: s.Name, Prestations: s.Prestations, Paid: s.Paid}
	}

	return resp
}

func toMonthCommissions(m *report.MonthCommissions) monthCommissionsResponse {
	resp := monthCommissionsResponse{
		Month:   monthLabel(m.Year, m.Month),
		Total:   m.Total,
		ByStaff: make([]staffCommissionResponse, len(m.ByStaff)),
	}

	for i, s := range m.ByStaff {
		resp.ByStaff[i] = staffCommissionResponse{StaffID: s.StaffID, Name: s.Name, Total: s.Total}
	}

	return resp
}

func toMonthExpenses(m *report.MonthExpenses) monthExpensesResponse {
	resp := monthExpensesResponse{
		Entity: m.Entity,
		Month:  monthLabel(m.Year, m.Month),
		Rows:   make([]expenseRowResponse, len(m.Rows)),
		Total:  m.Total,
	}

	for i, e := range m.Rows {
		resp.Rows[i] = expenseRowResponse{
			ID:          e.ID,
			Sector:      e.Sector,
			Description: e.Description,
			Amount:      e.Amount,
			SpentOn:     e.SpentOn.Format(time.DateOnly),
		}
	}

	return resp
}
