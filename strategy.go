package wikisearch

import (
	"slices"
)

// InsertionOrder is the default strategy: no filtering, and equal-priority
// entries are expanded in the order they were pushed.
type InsertionOrder[NodeType comparable] struct{}

func (InsertionOrder[NodeType]) Select(_ NodeType, candidates []Candidate[NodeType]) []Candidate[NodeType] {
	return candidates
}

func (InsertionOrder[NodeType]) Less(a, b FrontierEntry[NodeType]) bool {
	return a.Sequence < b.Sequence
}

// MostRecentFirst expands the most recently discovered entry first among
// equal-priority entries, giving depth-first flavour to plateaus.
type MostRecentFirst[NodeType comparable] struct{}

func (MostRecentFirst[NodeType]) Select(_ NodeType, candidates []Candidate[NodeType]) []Candidate[NodeType] {
	return candidates
}

func (MostRecentFirst[NodeType]) Less(a, b FrontierEntry[NodeType]) bool {
	return a.Sequence > b.Sequence
}

// LowestCostFirst prefers, among equal-priority entries, the one closer to the
// source (lower accumulated cost), then insertion order.
type LowestCostFirst[NodeType comparable] struct{}

func (LowestCostFirst[NodeType]) Select(_ NodeType, candidates []Candidate[NodeType]) []Candidate[NodeType] {
	return candidates
}

func (LowestCostFirst[NodeType]) Less(a, b FrontierEntry[NodeType]) bool {
	if a.GScore != b.GScore {
		return a.GScore < b.GScore
	}
	return a.Sequence < b.Sequence
}

// BoundedBranching keeps at most MaxBranching candidates per expansion, the
// ones with the lowest FCost, and delegates tie-breaking to Inner.
// Bounding the branching factor trades completeness for a smaller frontier.
type BoundedBranching[NodeType comparable] struct {
	MaxBranching int
	Inner        ExpansionStrategy[NodeType]
}

func (s BoundedBranching[NodeType]) inner() ExpansionStrategy[NodeType] {
	if s.Inner == nil {
		return InsertionOrder[NodeType]{}
	}
	return s.Inner
}

func (s BoundedBranching[NodeType]) Select(current NodeType, candidates []Candidate[NodeType]) []Candidate[NodeType] {
	selected := s.inner().Select(current, candidates)
	if s.MaxBranching <= 0 || len(selected) <= s.MaxBranching {
		return selected
	}

	best := slices.Clone(selected)
	slices.SortStableFunc(best, func(a, b Candidate[NodeType]) int {
		switch {
		case a.FCost < b.FCost:
			return -1
		case a.FCost > b.FCost:
			return 1
		default:
			return 0
		}
	})
	return best[:s.MaxBranching]
}

func (s BoundedBranching[NodeType]) Less(a, b FrontierEntry[NodeType]) bool {
	return s.inner().Less(a, b)
}
