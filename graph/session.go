package graph

import (
	"context"

	"github.com/pdrpinto/wikisearch"
)

// nopSession adapts a source without sessions to wikisearch.GraphSession.
type nopSession[NodeType comparable] struct {
	wikisearch.GraphSource[NodeType]
}

func (nopSession[NodeType]) Close() error { return nil }

// openSession opens a session on source when it supports them.
func openSession[NodeType comparable](ctx context.Context, source wikisearch.GraphSource[NodeType]) (wikisearch.GraphSession[NodeType], error) {
	if sessioner, ok := source.(wikisearch.Sessioner[NodeType]); ok {
		return sessioner.Session(ctx)
	}
	return nopSession[NodeType]{source}, nil
}
