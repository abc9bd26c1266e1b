package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	neighborsCacheTotalCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wikisearch",
		Name:      "neighbors_cache_total_count",
		Help:      "The total number of neighbor lookups served by the cached graph source.",
	})

	neighborsCacheHitCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wikisearch",
		Name:      "neighbors_cache_hit_count",
		Help:      "The total number of neighbor lookups answered from the cache.",
	})

	fetchRetryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikisearch",
		Name:      "graph_fetch_retries_total",
		Help:      "The total number of retried graph source calls by operation.",
	}, []string{"operation"})
)
