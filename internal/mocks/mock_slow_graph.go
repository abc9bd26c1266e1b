package mocks

import (
	"context"
	"time"

	"github.com/pdrpinto/wikisearch"
)

// slowGraphSource is a proxy to the actual graph except neighbor fetches are
// delayed by neighborsDelay. This allows simulating a search that runs out of
// time in the middle of an expansion.
type slowGraphSource[NodeType comparable] struct {
	neighborsDelay time.Duration
	wikisearch.GraphSource[NodeType]
}

// NewMockSlowGraphSource returns a wrapper of a graph that adds artificial
// delays to neighbor fetches. The delay is cut short when ctx is done.
func NewMockSlowGraphSource[NodeType comparable](graph wikisearch.GraphSource[NodeType], neighborsDelay time.Duration) wikisearch.GraphSource[NodeType] {
	return &slowGraphSource[NodeType]{
		neighborsDelay: neighborsDelay,
		GraphSource:    graph,
	}
}

func (m *slowGraphSource[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	timer := time.NewTimer(m.neighborsDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return m.GraphSource.Neighbors(ctx, node)
}
