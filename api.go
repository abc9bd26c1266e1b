//go:generate mockgen -source api.go -destination internal/mocks/mock_api.go -package mocks

package wikisearch

import (
	"context"
	"time"

	"github.com/pdrpinto/wikisearch/pkg/logger"
)

// GraphSource is generic over node type NodeType.
// NodeType must be comparable so it can be used in maps; two nodes are the
// same node exactly when they compare equal.
type GraphSource[NodeType comparable] interface {
	// Resolve maps a key to its canonical node. It returns an error wrapping
	// ErrNodeNotFound when the key is unknown.
	Resolve(ctx context.Context, key NodeType) (NodeType, error)

	// Neighbors returns the outgoing neighbors of node, possibly none.
	Neighbors(ctx context.Context, node NodeType) ([]NodeType, error)
}

// GraphSession is a GraphSource scoped to a single search run.
type GraphSession[NodeType comparable] interface {
	GraphSource[NodeType]
	Close() error
}

// Sessioner is implemented by sources that hold a scoped handle (a connection,
// a database session) for the duration of one run. The engine opens a session
// at the start of every run and closes it on every exit path.
type Sessioner[NodeType comparable] interface {
	Session(ctx context.Context) (GraphSession[NodeType], error)
}

// EdgeCost returns the non-negative weight of the edge from -> to.
// It is only called for pairs reported adjacent by the GraphSource.
type EdgeCost[NodeType comparable] interface {
	Cost(from, to NodeType) float64
}

// EdgeCostFunc adapts a plain function to EdgeCost.
type EdgeCostFunc[NodeType comparable] func(from, to NodeType) float64

func (f EdgeCostFunc[NodeType]) Cost(from, to NodeType) float64 { return f(from, to) }

// Heuristic returns the estimated remaining cost from current to destination.
// It may overestimate.
type Heuristic[NodeType comparable] interface {
	Estimate(current, destination NodeType) float64
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc[NodeType comparable] func(current, destination NodeType) float64

func (f HeuristicFunc[NodeType]) Estimate(current, destination NodeType) float64 {
	return f(current, destination)
}

// Candidate is a neighbor whose cost improved during an expansion and that is
// about to enter the frontier.
type Candidate[NodeType comparable] struct {
	Node     NodeType
	EdgeCost float64
	GScore   float64
	FCost    float64
}

// FrontierEntry is a read-only view of an entry in the open set.
type FrontierEntry[NodeType comparable] struct {
	Node           NodeType
	Predecessor    NodeType
	HasPredecessor bool
	GScore         float64
	FCost          float64
	// Sequence is the insertion counter of the entry within its run.
	Sequence uint64
}

// ExpansionStrategy controls the order in which equally promising nodes are
// expanded and may filter neighbors before they enter the frontier.
type ExpansionStrategy[NodeType comparable] interface {
	// Select receives the improved neighbors of current in discovery order
	// and returns the ones to push, in push order.
	Select(current NodeType, candidates []Candidate[NodeType]) []Candidate[NodeType]

	// Less reports whether a should be expanded before b. It is only
	// consulted when both entries have the same FCost.
	Less(a, b FrontierEntry[NodeType]) bool
}

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
	State         State

	// Reopened counts closed nodes put back on the frontier after a cheaper
	// path to them was found.
	Reopened int
	// FetchErrors counts neighbor fetches that failed and were treated as
	// dead ends.
	FetchErrors int
	Elapsed     time.Duration
}

// Options defines parameters for the search.
type Options[NodeType comparable] struct {
	NumberOfWorkers int
	Strategy        ExpansionStrategy[NodeType]
	Logger          logger.Logger
}

// Option is a function that modifies Options.
type Option[NodeType comparable] func(*Options[NodeType])

// WithWorkers specifies how many goroutines evaluate edge costs and
// heuristic estimates of a node's neighbors. Values below 2 evaluate inline.
func WithWorkers[NodeType comparable](numberOfWorkers int) Option[NodeType] {
	return func(options *Options[NodeType]) { options.NumberOfWorkers = numberOfWorkers }
}

// WithStrategy replaces the default InsertionOrder strategy.
func WithStrategy[NodeType comparable](strategy ExpansionStrategy[NodeType]) Option[NodeType] {
	return func(options *Options[NodeType]) { options.Strategy = strategy }
}

func WithLogger[NodeType comparable](l logger.Logger) Option[NodeType] {
	return func(options *Options[NodeType]) { options.Logger = l }
}

// Engine runs time-bounded best-first searches over a GraphSource.
// An Engine holds no per-search state and may run several searches
// concurrently as long as its collaborators allow it.
type Engine[NodeType comparable] struct {
	graph     GraphSource[NodeType]
	cost      EdgeCost[NodeType]
	heuristic Heuristic[NodeType]
	options   Options[NodeType]
}

// NewEngine wires the collaborators of a search. A nil heuristic means
// ZeroHeuristic, which turns the engine into a uniform-cost search.
func NewEngine[NodeType comparable](
	graph GraphSource[NodeType],
	cost EdgeCost[NodeType],
	heuristic Heuristic[NodeType],
	options ...Option[NodeType],
) *Engine[NodeType] {
	engineOptions := Options[NodeType]{
		NumberOfWorkers: 1,
		Strategy:        InsertionOrder[NodeType]{},
		Logger:          logger.NewNoopLogger(),
	}
	for _, option := range options {
		option(&engineOptions)
	}
	if heuristic == nil {
		heuristic = ZeroHeuristic[NodeType]{}
	}
	if cost == nil {
		cost = NewUniformCost[NodeType](1)
	}

	return &Engine[NodeType]{
		graph:     graph,
		cost:      cost,
		heuristic: heuristic,
		options:   engineOptions,
	}
}
