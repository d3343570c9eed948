// Package metrics holds the Prometheus collectors shared by the core services
// and the HTTP adapter. Collectors register on the default registry, which is
// what promhttp.Handler serves on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stock mutation operation labels.
const (
	OpAdjust   = "adjust"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpTransfer = "transfer"
	OpRestock  = "restock"
	OpCheckout = "checkout"
	OpUpdate   = "update"
)

var (
	stockMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wms",
		Name:      "stock_mutations_total",
		Help:      "Stock ledger mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	unitsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wms",
		Name:      "stock_units_total",
		Help:      "Units of stock moved by operation.",
	}, []string{"operation"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wms",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveMutation counts one stock mutation; err == nil counts as "ok".
// outcome is the error kind label otherwise (see core.ErrorKind).
func ObserveMutation(operation, outcome string) {
	stockMutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveUnits adds the number of units an operation moved.
func ObserveUnits(operation string, units int) {
	if units <= 0 {
		return
	}
	unitsMoved.WithLabelValues(operation).Add(float64(units))
}

// ObserveHTTP records a finished HTTP request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
