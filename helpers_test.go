package wikisearch_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/internal/mocks"
)

// mapGraph is an adjacency list where every node is a key.
type mapGraph[NodeType comparable] map[NodeType][]NodeType

func (g mapGraph[NodeType]) Resolve(_ context.Context, key NodeType) (NodeType, error) {
	if _, ok := g[key]; !ok {
		var zero NodeType
		return zero, fmt.Errorf("%v: %w", key, wikisearch.ErrNodeNotFound)
	}
	return key, nil
}

func (g mapGraph[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g[node], nil
}

type edge[NodeType comparable] struct {
	from, to NodeType
}

// weights is an EdgeCost backed by a map. Missing edges cost 1.
type weights[NodeType comparable] map[edge[NodeType]]float64

func (w weights[NodeType]) Cost(from, to NodeType) float64 {
	if cost, ok := w[edge[NodeType]{from, to}]; ok {
		return cost
	}
	return 1
}

// sessionGraph is a GraphSource that opens sessions. Only the sessions are
// expected to be queried.
type sessionGraph struct {
	*mocks.MockGraphSource[string]
	*mocks.MockSessioner[string]
}

// randomGraph builds a graph of size nodes where every node links to up to
// degree distinct other nodes, with integer weights in [1, 10].
func randomGraph(r *rand.Rand, size, degree int) (mapGraph[int], weights[int]) {
	graph := make(mapGraph[int], size)
	w := make(weights[int])
	for node := 0; node < size; node++ {
		graph[node] = nil
		seen := map[int]bool{node: true}
		for i := 0; i < degree; i++ {
			target := r.Intn(size)
			if seen[target] {
				continue
			}
			seen[target] = true
			graph[node] = append(graph[node], target)
			w[edge[int]{node, target}] = float64(1 + r.Intn(10))
		}
	}
	return graph, w
}

// shortestDistances runs Bellman-Ford from source. Unreachable nodes are at
// +Inf. With reverse set, distances are measured to source instead.
func shortestDistances(graph mapGraph[int], w weights[int], source int, reverse bool) map[int]float64 {
	distances := make(map[int]float64, len(graph))
	for node := range graph {
		distances[node] = math.Inf(1)
	}
	distances[source] = 0
	for i := 0; i < len(graph); i++ {
		changed := false
		for from, targets := range graph {
			for _, to := range targets {
				u, v := from, to
				if reverse {
					u, v = to, from
				}
				if candidate := distances[u] + w.Cost(from, to); candidate < distances[v] {
					distances[v] = candidate
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return distances
}
