package wikisearch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("wikisearch")

var (
	searchRunsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikisearch",
		Name:      "search_runs_total",
		Help:      "The total number of search runs by terminal state.",
	}, []string{"state"})

	expandedNodesHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wikisearch",
		Name:      "search_expanded_nodes",
		Help:      "The number of distinct nodes expanded per search run.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})

	searchDurationHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wikisearch",
		Name:      "search_duration_seconds",
		Help:      "Wall-clock duration of search runs, resolution excluded.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)
