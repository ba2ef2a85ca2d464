// Package metrics exposes the Prometheus instruments for the kdx host.
// Everything registers through promauto against the default registry,
// so the HTTP /metrics endpoint picks it all up with no extra wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts nearest-neighbor queries by outcome
	// ("hit", "error").
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kdx_searches_total",
			Help: "Total number of nearest-neighbor queries",
		},
		[]string{"outcome"},
	)

	// SearchDuration measures end-to-end query latency, including
	// time spent waiting for the tree's read lock.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kdx_search_duration_seconds",
			Help:    "Duration of nearest-neighbor queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// InsertsTotal counts point insertions by outcome.
	InsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kdx_inserts_total",
			Help: "Total number of point insertions",
		},
		[]string{"outcome"},
	)

	// IndexedPoints tracks the number of points in the live tree.
	IndexedPoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kdx_indexed_points",
			Help: "Number of points in the in-memory index",
		},
	)
)
