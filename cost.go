package wikisearch

// UniformCost gives every edge the same weight, which makes the search behave
// like breadth-first search when paired with a zero heuristic.
type UniformCost[NodeType comparable] struct {
	weight float64
}

// NewUniformCost returns a cost function that assigns weight to every edge.
func NewUniformCost[NodeType comparable](weight float64) UniformCost[NodeType] {
	return UniformCost[NodeType]{weight: weight}
}

func (c UniformCost[NodeType]) Cost(_, _ NodeType) float64 { return c.weight }

// ZeroHeuristic never overestimates. With it the engine runs Dijkstra's
// algorithm and the first path found is cost-optimal.
type ZeroHeuristic[NodeType comparable] struct{}

func (ZeroHeuristic[NodeType]) Estimate(_, _ NodeType) float64 { return 0 }
