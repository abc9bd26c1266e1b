package wikisearch

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch/internal"
)

// nodeRecord is the closed-set entry of a node: the best accumulated cost
// seen so far and the edge that produced it. A closed record is re-opened
// when a strictly cheaper path shows up, which only happens under an
// inadmissible heuristic.
type nodeRecord[NodeType comparable] struct {
	gScore         float64
	edgeCost       float64
	predecessor    NodeType
	hasPredecessor bool
	closed         bool
	expanded       bool
}

// search is the state of one run. It is owned by a single goroutine.
type search[NodeType comparable] struct {
	engine *Engine[NodeType]
	graph  GraphSource[NodeType]

	session GraphSession[NodeType]
	span    trace.Span
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool

	source      NodeType
	destination NodeType
	started     time.Time
	deadline    time.Time

	openSet  priorityQueue[NodeType]
	records  map[NodeType]*nodeRecord[NodeType]
	sequence uint64
	current  NodeType

	result Result[NodeType]
}

// Run searches for a path from source to destination, giving up once
// timeLimit has elapsed. Resolving both keys happens before the clock starts.
//
// Timing out and exhausting the reachable graph are not errors: they are
// reported through Result.State with an empty path. Errors are returned for
// unknown keys (*UnknownNodeError), contract violations of the cost or
// heuristic (*ContractViolationError) and cancellation of ctx.
func (e *Engine[NodeType]) Run(
	ctx context.Context,
	source NodeType,
	destination NodeType,
	timeLimit time.Duration,
) (Result[NodeType], error) {
	s, err := e.start(ctx, source, destination, timeLimit)
	defer s.close()
	if err != nil {
		return s.result, err
	}

	for !s.result.State.Terminal() {
		if _, err := s.step(); err != nil {
			return s.result, err
		}
	}

	e.options.Logger.DebugWithContext(ctx, "search finished",
		zap.String("state", s.result.State.String()),
		zap.Int("expanded", s.result.ExpandedNodes),
		zap.Duration("elapsed", s.result.Elapsed),
	)
	return s.result, nil
}

// start opens the graph session, resolves both keys and seeds the frontier.
// The returned search is never nil and must be closed.
func (e *Engine[NodeType]) start(
	ctx context.Context,
	source NodeType,
	destination NodeType,
	timeLimit time.Duration,
) (*search[NodeType], error) {
	s := &search[NodeType]{
		engine:  e,
		graph:   e.graph,
		parent:  ctx,
		records: make(map[NodeType]*nodeRecord[NodeType]),
		openSet: priorityQueue[NodeType]{strategy: e.options.Strategy},
		result:  Result[NodeType]{State: StateReady},
	}
	ctx, s.span = tracer.Start(ctx, "wikisearch.Run")

	if timeLimit < 0 {
		s.finish(StateAborted)
		return s, fmt.Errorf("%w: %s", ErrInvalidTimeLimit, timeLimit)
	}

	if sessioner, ok := e.graph.(Sessioner[NodeType]); ok {
		session, err := sessioner.Session(ctx)
		if err != nil {
			s.finish(StateAborted)
			return s, fmt.Errorf("open graph session: %w", err)
		}
		s.session = session
		s.graph = session
	}

	var err error
	if s.source, err = s.resolve(ctx, "source", source); err != nil {
		return s, err
	}
	if s.destination, err = s.resolve(ctx, "destination", destination); err != nil {
		return s, err
	}

	s.started = time.Now()
	s.deadline = s.started.Add(timeLimit)
	s.ctx, s.cancel = context.WithDeadline(ctx, s.deadline)

	estimate := e.heuristic.Estimate(s.source, s.destination)
	if !validWeight(estimate) {
		s.finish(StateAborted)
		return s, &ContractViolationError{Collaborator: "heuristic", From: s.source, To: s.destination, Value: estimate}
	}

	heap.Init(&s.openSet)
	s.records[s.source] = &nodeRecord[NodeType]{}
	s.sequence++
	heap.Push(&s.openSet, &priorityQueueItem[NodeType]{FrontierEntry: FrontierEntry[NodeType]{
		Node:     s.source,
		GScore:   0,
		FCost:    estimate,
		Sequence: s.sequence,
	}})
	s.result.State = StateExpanding

	return s, nil
}

func (s *search[NodeType]) resolve(ctx context.Context, role string, key NodeType) (NodeType, error) {
	node, err := s.graph.Resolve(ctx, key)
	if err == nil {
		return node, nil
	}
	if errors.Is(err, ErrNodeNotFound) {
		s.finish(StateNodeNotFound)
		return node, &UnknownNodeError{Role: role, Key: key, Err: err}
	}
	s.finish(StateAborted)
	return node, fmt.Errorf("resolve %s node %v: %w", role, key, err)
}

// step pops one entry from the frontier. It reports whether the pop did
// anything other than discard a stale entry.
func (s *search[NodeType]) step() (bool, error) {
	if s.result.State.Terminal() {
		return false, nil
	}
	if s.expired() {
		return true, s.stop()
	}
	if s.openSet.Len() == 0 {
		s.finish(StateExhausted)
		return true, nil
	}

	item := heap.Pop(&s.openSet).(*priorityQueueItem[NodeType])
	record := s.records[item.Node]
	if record.closed || item.GScore > record.gScore {
		return false, nil
	}

	s.current = item.Node
	if item.Node == s.destination {
		return true, s.complete()
	}

	record.closed = true
	if !record.expanded {
		record.expanded = true
		s.result.ExpandedNodes++
	}
	s.engine.options.Logger.Debug("expanding node",
		zap.Any("node", item.Node),
		zap.Float64("g", item.GScore),
		zap.Float64("f", item.FCost),
	)

	neighbors, err := s.graph.Neighbors(s.ctx, item.Node)
	if s.expired() {
		return true, s.stop()
	}
	if err != nil {
		s.result.FetchErrors++
		s.engine.options.Logger.WarnWithContext(s.ctx, "treating node as a dead end",
			zap.Error(&GraphFetchError{Node: item.Node, Err: err}),
		)
		return true, nil
	}

	tasks := make([]expandTask[NodeType], 0, len(neighbors))
	for _, neighbor := range neighbors {
		tasks = append(tasks, expandTask[NodeType]{
			FromNode:      item.Node,
			Neighbor:      neighbor,
			CurrentGScore: item.GScore,
			GoalNode:      s.destination,
		})
	}
	proposals, err := s.engine.evaluate(s.ctx, tasks)
	if err != nil {
		s.finish(StateAborted)
		return true, err
	}
	if s.expired() {
		return true, s.stop()
	}

	s.relax(item.Node, proposals)
	return true, nil
}

// relax pushes every proposal that improves on the recorded cost of its node,
// after letting the strategy filter and order them.
func (s *search[NodeType]) relax(from NodeType, proposals []Candidate[NodeType]) {
	improved := make([]Candidate[NodeType], 0, len(proposals))
	index := make(map[NodeType]int, len(proposals))
	for _, proposal := range proposals {
		if !s.improves(proposal) {
			continue
		}
		if i, seen := index[proposal.Node]; seen {
			if proposal.GScore < improved[i].GScore {
				improved[i] = proposal
			}
			continue
		}
		index[proposal.Node] = len(improved)
		improved = append(improved, proposal)
	}
	if len(improved) == 0 {
		return
	}

	offered := make([]Candidate[NodeType], len(improved))
	copy(offered, improved)
	for _, selected := range s.engine.options.Strategy.Select(from, offered) {
		i, ok := index[selected.Node]
		if !ok {
			continue
		}
		// The engine's own values win over whatever the strategy returned.
		candidate := improved[i]
		if !s.improves(candidate) {
			continue
		}
		s.push(from, candidate)
	}
}

func (s *search[NodeType]) improves(candidate Candidate[NodeType]) bool {
	record, ok := s.records[candidate.Node]
	return !ok || candidate.GScore < record.gScore
}

func (s *search[NodeType]) push(predecessor NodeType, candidate Candidate[NodeType]) {
	record, ok := s.records[candidate.Node]
	if !ok {
		record = &nodeRecord[NodeType]{}
		s.records[candidate.Node] = record
	}
	if record.closed {
		record.closed = false
		s.result.Reopened++
	}
	record.gScore = candidate.GScore
	record.edgeCost = candidate.EdgeCost
	record.predecessor = predecessor
	record.hasPredecessor = true

	s.sequence++
	heap.Push(&s.openSet, &priorityQueueItem[NodeType]{FrontierEntry: FrontierEntry[NodeType]{
		Node:           candidate.Node,
		Predecessor:    predecessor,
		HasPredecessor: true,
		GScore:         candidate.GScore,
		FCost:          candidate.FCost,
		Sequence:       s.sequence,
	}})
}

func (s *search[NodeType]) predecessor(node NodeType) (NodeType, bool) {
	record, ok := s.records[node]
	if !ok || !record.hasPredecessor {
		var zero NodeType
		return zero, false
	}
	return record.predecessor, true
}

func (s *search[NodeType]) complete() error {
	path, err := internal.ReconstructPath(s.predecessor, s.destination, s.source, len(s.records))
	if err != nil {
		s.finish(StateAborted)
		return fmt.Errorf("reconstruct path to %v: %w", s.destination, err)
	}

	totalCost := 0.0
	for _, node := range path[1:] {
		totalCost += s.records[node].edgeCost
	}
	s.result.Path = path
	s.result.TotalCost = totalCost
	s.finish(StateFound)
	return nil
}

func (s *search[NodeType]) expired() bool {
	return !time.Now().Before(s.deadline) || s.ctx.Err() != nil
}

// stop ends the run once the clock has run out. A caller that cancelled its
// own context gets the context error back.
func (s *search[NodeType]) stop() error {
	if err := s.parent.Err(); err != nil {
		s.finish(StateAborted)
		return err
	}
	s.finish(StateTimedOut)
	return nil
}

func (s *search[NodeType]) finish(state State) {
	s.result.State = state
	s.result.Found = state == StateFound
	if !s.started.IsZero() {
		s.result.Elapsed = time.Since(s.started)
		searchDurationHistogram.Observe(s.result.Elapsed.Seconds())
	}

	searchRunsCounter.WithLabelValues(state.String()).Inc()
	expandedNodesHistogram.Observe(float64(s.result.ExpandedNodes))
	s.span.SetAttributes(
		attribute.String("state", state.String()),
		attribute.Int("expanded_nodes", s.result.ExpandedNodes),
		attribute.Int("path_length", len(s.result.Path)),
	)
}

// close releases everything the run acquired. It is safe to call twice.
func (s *search[NodeType]) close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.cancel != nil {
		s.cancel()
	}
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			s.engine.options.Logger.Warn("failed to close graph session", zap.Error(err))
		}
	}
	s.span.End()
}
