// Package metrics exposes Prometheus metrics for the project lifecycle.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio_admin"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// OperationsTotal counts lifecycle operations.
	// Labels: operation (list, create, update, destroy, restore, drop, ...), outcome
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "operations_total",
			Help:      "Total number of project lifecycle operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// OperationDuration tracks how long lifecycle operations take.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "operation_duration_seconds",
			Help:      "Duration of project lifecycle operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// AssetBytes tracks the size of stored images.
	AssetBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assets",
			Name:      "stored_bytes",
			Help:      "Size of stored project images in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// AssetOperations counts asset store calls.
	// Labels: op (put, delete), result (success, error)
	AssetOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assets",
			Name:      "operations_total",
			Help:      "Total number of asset store operations",
		},
		[]string{"op", "result"},
	)
)

// ObserveOperation records one finished lifecycle operation.
func ObserveOperation(operation, outcome string, started time.Time) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveAsset records one asset store call. size is ignored for deletes and failures.
func ObserveAsset(op string, size int, err error) {
	if err != nil {
		AssetOperations.WithLabelValues(op, OutcomeError).Inc()
		return
	}
	AssetOperations.WithLabelValues(op, OutcomeSuccess).Inc()
	if op == "put" {
		AssetBytes.Observe(float64(size))
	}
}
