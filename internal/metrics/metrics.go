package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics exposed on /metrics.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "makerboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "makerboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	SettlementDivergencesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "makerboard_settlement_divergences_total",
			Help: "Orders whose explicit intermediary fee contradicts the derived settlement",
		},
	)

	OrderDetailsCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "makerboard_order_details_cache_hits_total",
			Help: "Order detail reads served from the redis cache",
		},
	)

	OverdueOrdersMarkedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "makerboard_overdue_orders_marked_total",
			Help: "Orders moved to delayed by the status worker",
		},
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(SettlementDivergencesTotal)
	prometheus.MustRegister(OrderDetailsCacheHitsTotal)
	prometheus.MustRegister(OverdueOrdersMarkedTotal)
}
