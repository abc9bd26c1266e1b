package wikisearch

import (
	"context"
	"math"

	"github.com/sourcegraph/conc/pool"
)

// expandTask is one neighbor of the node being expanded, handed to a worker.
type expandTask[NodeType comparable] struct {
	FromNode      NodeType
	Neighbor      NodeType
	CurrentGScore float64
	GoalNode      NodeType
}

// evaluate computes the candidate g and f of every neighbor. Workers only
// compute; the caller alone relaxes the frontier and closed set, so proposals
// are written by index and keep the neighbor order.
func (e *Engine[NodeType]) evaluate(ctx context.Context, tasks []expandTask[NodeType]) ([]Candidate[NodeType], error) {
	proposals := make([]Candidate[NodeType], len(tasks))
	work := func(i int) error {
		proposal, err := e.propose(tasks[i])
		if err != nil {
			return err
		}
		proposals[i] = proposal
		return nil
	}

	if e.options.NumberOfWorkers < 2 || len(tasks) < 2 {
		for i := range tasks {
			if err := work(i); err != nil {
				return nil, err
			}
		}
		return proposals, nil
	}

	workers := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(e.options.NumberOfWorkers)
	for i := range tasks {
		workers.Go(func(context.Context) error { return work(i) })
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (e *Engine[NodeType]) propose(task expandTask[NodeType]) (Candidate[NodeType], error) {
	edgeCost := e.cost.Cost(task.FromNode, task.Neighbor)
	if !validWeight(edgeCost) {
		return Candidate[NodeType]{}, &ContractViolationError{
			Collaborator: "edge cost",
			From:         task.FromNode,
			To:           task.Neighbor,
			Value:        edgeCost,
		}
	}
	estimate := e.heuristic.Estimate(task.Neighbor, task.GoalNode)
	if !validWeight(estimate) {
		return Candidate[NodeType]{}, &ContractViolationError{
			Collaborator: "heuristic",
			From:         task.Neighbor,
			To:           task.GoalNode,
			Value:        estimate,
		}
	}

	tentativeG := task.CurrentGScore + edgeCost
	return Candidate[NodeType]{
		Node:     task.Neighbor,
		EdgeCost: edgeCost,
		GScore:   tentativeG,
		FCost:    tentativeG + estimate,
	}, nil
}

func validWeight(value float64) bool {
	return value >= 0 && !math.IsInf(value, 0) && !math.IsNaN(value)
}
