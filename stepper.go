package wikisearch

import (
	"context"
	"time"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current       NodeType
	Open          map[NodeType]bool
	Closed        map[NodeType]bool
	CameFrom      map[NodeType]NodeType
	Done          bool
	Found         bool
	State         State
	Path          []NodeType
	ExpandedNodes int
	StepIndex     int
}

// Stepper drives one search an expansion at a time, for tracing and
// debugging. It follows exactly the same rules as Engine.Run, deadline
// included.
type Stepper[NodeType comparable] struct {
	search    *search[NodeType]
	stepCount int
}

// NewStepper resolves both keys and seeds the frontier. The returned Stepper
// holds the graph session until Close is called, even when an error is
// returned alongside it.
func NewStepper[NodeType comparable](
	ctx context.Context,
	engine *Engine[NodeType],
	source NodeType,
	destination NodeType,
	timeLimit time.Duration,
) (*Stepper[NodeType], error) {
	s, err := engine.start(ctx, source, destination, timeLimit)
	return &Stepper[NodeType]{search: s}, err
}

// Close releases the graph session and the deadline timer.
func (s *Stepper[NodeType]) Close() {
	s.search.close()
}

// Result returns the result accumulated so far.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	return s.search.result
}

// Step advances the search by one node expansion and returns a snapshot.
// Stale frontier entries are skipped without counting as a step.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if !s.search.result.State.Terminal() {
		s.stepCount++
		for {
			progressed, err := s.search.step()
			if err != nil {
				return s.snapshot(), err
			}
			if progressed {
				break
			}
		}
	}
	return s.snapshot(), nil
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	open := make(map[NodeType]bool, s.search.openSet.Len())
	for _, item := range s.search.openSet.items {
		open[item.Node] = true
	}
	closed := make(map[NodeType]bool)
	cameFrom := make(map[NodeType]NodeType)
	for node, record := range s.search.records {
		if record.closed {
			closed[node] = true
		}
		if record.hasPredecessor {
			cameFrom[node] = record.predecessor
		}
	}

	result := s.search.result
	return StepSnapshot[NodeType]{
		Current:       s.search.current,
		Open:          open,
		Closed:        closed,
		CameFrom:      cameFrom,
		Done:          result.State.Terminal(),
		Found:         result.Found,
		State:         result.State,
		Path:          append([]NodeType(nil), result.Path...),
		ExpandedNodes: result.ExpandedNodes,
		StepIndex:     s.stepCount,
	}
}
