// Package observability exposes Prometheus metrics for the POS core:
// transaction creation, settlements, stock rejections, and ledger
// recomputations. The /metrics endpoint is mounted by the API server
// when metrics are enabled in config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Transaction Writer Metrics ─────────────────────────────────────────────

// TransactionsCreated tracks created records by kind (invoice/bill/booking).
var TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "writer",
	Name:      "transactions_created_total",
	Help:      "Total money-bearing records created, by kind.",
}, []string{"kind"})

// StockRejections tracks sales rejected for insufficient frame stock.
var StockRejections = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "writer",
	Name:      "stock_rejections_total",
	Help:      "Total create operations rejected for insufficient frame stock.",
})

// ─── Settlement Metrics ─────────────────────────────────────────────────────

// Settlements tracks completed settlements by kind.
var Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "settle",
	Name:      "settlements_total",
	Help:      "Total settlements completed, by kind.",
}, []string{"kind"})

// SettlementRejections tracks settle calls rejected before mutation.
var SettlementRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "settle",
	Name:      "rejections_total",
	Help:      "Total settle calls rejected, by reason.",
}, []string{"reason"})

// SettlementChange observes change handed back at settlement.
var SettlementChange = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pos",
	Subsystem: "settle",
	Name:      "change_amount",
	Help:      "Change returned to the customer at settlement, in minor units.",
	Buckets:   []float64{0, 100, 500, 1000, 5000, 10000, 50000},
})

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// LedgerRecomputes tracks daily balance recomputations.
var LedgerRecomputes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "ledger",
	Name:      "recomputes_total",
	Help:      "Total daily balance recomputations.",
})
