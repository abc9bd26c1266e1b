package internal

import (
	"errors"
)

// ErrBrokenPredecessorChain is returned when the predecessor links do not lead
// back to the start within the allowed number of steps.
var ErrBrokenPredecessorChain = errors.New("predecessor chain does not reach the start node")

// ReconstructPath rebuilds the path ending at current by following
// predecessor links back to start. It never walks more than maxLength nodes,
// so a corrupt (cyclic) chain is reported instead of looping.
func ReconstructPath[NodeType comparable](
	predecessor func(NodeType) (NodeType, bool),
	current NodeType,
	start NodeType,
	maxLength int,
) ([]NodeType, error) {
	path := []NodeType{current}
	for current != start {
		if len(path) > maxLength {
			return nil, ErrBrokenPredecessorChain
		}
		previousNode, exists := predecessor(current)
		if !exists {
			return nil, ErrBrokenPredecessorChain
		}

		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
