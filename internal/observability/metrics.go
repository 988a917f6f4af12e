// Package observability holds the Prometheus collectors and the OpenTelemetry
// tracer provider shared by the business packages.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "comptoir"

// StockMovements counts persisted stock movements by type.
var StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "stock",
	Name:      "movements_total",
	Help:      "Total stock movements recorded, by movement type.",
}, []string{"type"})

// LowStockAlerts counts low-stock notifications emitted after a movement.
var LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "stock",
	Name:      "low_stock_alerts_total",
	Help:      "Total low-stock notifications emitted.",
})

// InsufficientStock counts outbound adjustments rejected for lack of stock.
var InsufficientStock = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "stock",
	Name:      "insufficient_total",
	Help:      "Total outbound adjustments rejected because on-hand was too low.",
})

// SalesFinalized counts draft sales moved to finalized.
var SalesFinalized = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sales",
	Name:      "finalized_total",
	Help:      "Total sales finalized.",
})

// PaymentsRecorded counts payments by mode.
var PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sales",
	Name:      "payments_total",
	Help:      "Total payments recorded, by payment mode.",
}, []string{"mode"})

// CommissionsComputed counts commission upserts.
var CommissionsComputed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "salon",
	Name:      "commissions_computed_total",
	Help:      "Total commission recomputations.",
})

// ExpensesRejected counts expenses refused by the daily allowance rule.
var ExpensesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "expenses",
	Name:      "rejected_total",
	Help:      "Total expenses rejected for exceeding the daily allowance, by entity.",
}, []string{"entity"})
