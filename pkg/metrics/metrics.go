package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrdersSubmitted counts orders accepted by the engine, by side and outcome.
var OrdersSubmitted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "matchbook_orders_submitted_total",
		Help: "Total number of orders submitted to the matching engine",
	},
	[]string{"side", "status"},
)

// MatchLatency records latency distribution for the matching hot path.
var MatchLatency = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "matchbook_match_latency_seconds",
		Help:    "Latency in seconds to match a single incoming order",
		Buckets: prometheus.DefBuckets,
	},
)

// Fills counts individual maker/taker fills produced by matching.
var Fills = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "matchbook_fills_total",
		Help: "Total number of fills produced by the matching engine",
	},
)

// RestingOrders gauges the number of orders currently resting in the book.
var RestingOrders = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "matchbook_resting_orders",
		Help: "Number of resting orders in the book",
	},
	[]string{"side"},
)

func init() {
	prometheus.MustRegister(OrdersSubmitted, MatchLatency, Fills, RestingOrders)
}
