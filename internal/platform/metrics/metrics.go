// Package metrics defines the Prometheus collectors of the ledger service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	revisionConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "revision_conflicts_total",
			Help:      "Update and delete requests rejected because the entity revision changed.",
		},
		[]string{"entity"},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route, method, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// ConflictCounter counts revision conflicts per entity type.
type ConflictCounter struct{}

// RecordConflict increments the conflict counter for entity.
func (ConflictCounter) RecordConflict(entity string) {
	revisionConflictsTotal.WithLabelValues(entity).Inc()
}
