package wikisearch_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/graph/memory"
	"github.com/pdrpinto/wikisearch/internal/mocks"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

const testTimeLimit = time.Minute

func diamond() *memory.Source {
	return memory.New(map[string][]string{
		"A": {"B", "D"},
		"B": {"C"},
		"D": {"C"},
	})
}

// requireValidPath checks the path runs from source to destination without
// repeating a node and that its cost is the sum of its edges.
func requireValidPath[NodeType comparable](t *testing.T, result wikisearch.Result[NodeType], source, destination NodeType, cost wikisearch.EdgeCost[NodeType]) {
	t.Helper()
	require.True(t, result.Found)
	require.Equal(t, wikisearch.StateFound, result.State)
	require.NotEmpty(t, result.Path)
	require.Equal(t, source, result.Path[0])
	require.Equal(t, destination, result.Path[len(result.Path)-1])

	seen := make(map[NodeType]bool, len(result.Path))
	total := 0.0
	for i, node := range result.Path {
		require.False(t, seen[node], "node %v repeated in %v", node, result.Path)
		seen[node] = true
		if i > 0 {
			total += cost.Cost(result.Path[i-1], node)
		}
	}
	require.InDelta(t, total, result.TotalCost, 1e-9)
}

func TestRunDiamond(t *testing.T) {
	engine := wikisearch.NewEngine[string](diamond(), nil, nil)

	result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
	require.NoError(t, err)
	requireValidPath[string](t, result, "A", "C", wikisearch.NewUniformCost[string](1))
	require.Equal(t, []string{"A", "B", "C"}, result.Path)
	require.InDelta(t, 2, result.TotalCost, 1e-9)
	require.Equal(t, 3, result.ExpandedNodes)
	require.LessOrEqual(t, result.ExpandedNodes, 4)
	require.Zero(t, result.Reopened)
	require.Zero(t, result.FetchErrors)
}

func TestRunSourceIsDestination(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	graph := mocks.NewMockGraphSource[string](mockController)
	graph.EXPECT().Resolve(gomock.Any(), "A").Return("A", nil).Times(2)
	// no Neighbors call is expected

	engine := wikisearch.NewEngine[string](graph, nil, nil)
	result, err := engine.Run(context.Background(), "A", "A", testTimeLimit)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, []string{"A"}, result.Path)
	require.Zero(t, result.TotalCost)
	require.LessOrEqual(t, result.ExpandedNodes, 1)
}

func TestRunDisconnected(t *testing.T) {
	graph := memory.New(map[string][]string{
		"A": {"B"},
		"B": {"A", "E"},
		"C": {"D"},
	})
	engine := wikisearch.NewEngine[string](graph, nil, nil)

	result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
	require.NoError(t, err)
	require.False(t, result.Found)
	require.Equal(t, wikisearch.StateExhausted, result.State)
	require.Empty(t, result.Path)
	require.Zero(t, result.TotalCost)
	// A, B and E are reachable from A
	require.Equal(t, 3, result.ExpandedNodes)
}

func TestRunZeroTimeLimit(t *testing.T) {
	engine := wikisearch.NewEngine[string](diamond(), nil, nil)

	start := time.Now()
	result, err := engine.Run(context.Background(), "A", "C", 0)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, wikisearch.StateTimedOut, result.State)
	require.False(t, result.Found)
	require.Empty(t, result.Path)
	require.Zero(t, result.TotalCost)
	require.Zero(t, result.ExpandedNodes)
}

func TestRunNegativeTimeLimit(t *testing.T) {
	engine := wikisearch.NewEngine[string](diamond(), nil, nil)

	result, err := engine.Run(context.Background(), "A", "C", -time.Second)
	require.ErrorIs(t, err, wikisearch.ErrInvalidTimeLimit)
	require.Equal(t, wikisearch.StateAborted, result.State)
}

func TestRunUnknownNodes(t *testing.T) {
	engine := wikisearch.NewEngine[string](diamond(), nil, nil)

	tests := []struct {
		name        string
		source      string
		destination string
		role        string
	}{
		{name: "source", source: "Z", destination: "C", role: "source"},
		{name: "destination", source: "A", destination: "Z", role: "destination"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := engine.Run(context.Background(), test.source, test.destination, testTimeLimit)
			require.ErrorIs(t, err, wikisearch.ErrNodeNotFound)

			var unknown *wikisearch.UnknownNodeError
			require.ErrorAs(t, err, &unknown)
			require.Equal(t, test.role, unknown.Role)
			require.Equal(t, "Z", unknown.Key)

			require.Equal(t, wikisearch.StateNodeNotFound, result.State)
			require.Zero(t, result.ExpandedNodes)
			require.Empty(t, result.Path)
		})
	}
}

func TestRunResolveFailure(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	graph := mocks.NewMockGraphSource[string](mockController)
	graph.EXPECT().Resolve(gomock.Any(), "A").Return("", errors.New("connection refused"))

	engine := wikisearch.NewEngine[string](graph, nil, nil)
	result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
	require.ErrorContains(t, err, "connection refused")
	require.NotErrorIs(t, err, wikisearch.ErrNodeNotFound)
	require.Equal(t, wikisearch.StateAborted, result.State)
}

func TestRunIsOptimalWithAdmissibleHeuristics(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		graph, w := randomGraph(r, 40, 4)
		source, destination := r.Intn(40), r.Intn(40)

		expected := shortestDistances(graph, w, source, false)[destination]
		toDestination := shortestDistances(graph, w, destination, true)

		heuristics := map[string]wikisearch.Heuristic[int]{
			"zero": wikisearch.ZeroHeuristic[int]{},
			"half_distance": wikisearch.HeuristicFunc[int](func(current, _ int) float64 {
				if math.IsInf(toDestination[current], 1) {
					return 0
				}
				return toDestination[current] / 2
			}),
		}
		for name, h := range heuristics {
			var results []wikisearch.Result[int]
			for _, workers := range []int{1, 4} {
				engine := wikisearch.NewEngine[int](graph, w, h, wikisearch.WithWorkers[int](workers))
				result, err := engine.Run(context.Background(), source, destination, testTimeLimit)
				require.NoError(t, err, "seed %d, %s", seed, name)

				if math.IsInf(expected, 1) {
					require.Equal(t, wikisearch.StateExhausted, result.State, "seed %d, %s", seed, name)
					require.Empty(t, result.Path)
				} else {
					requireValidPath[int](t, result, source, destination, w)
					require.InDelta(t, expected, result.TotalCost, 1e-9, "seed %d, %s", seed, name)
				}
				results = append(results, result)
			}

			require.Equal(t, results[0].Path, results[1].Path, "seed %d, %s", seed, name)
			require.Equal(t, results[0].ExpandedNodes, results[1].ExpandedNodes, "seed %d, %s", seed, name)
			require.Equal(t, results[0].State, results[1].State, "seed %d, %s", seed, name)
		}
	}
}

func TestRunReopensUnderInadmissibleHeuristic(t *testing.T) {
	graph := mapGraph[string]{
		"S": {"A", "C"},
		"A": {"C"},
		"C": {"D"},
		"D": {"G"},
		"G": nil,
	}
	w := weights[string]{
		{"S", "C"}: 5,
	}
	estimates := map[string]float64{"A": 10, "D": 20}
	h := wikisearch.HeuristicFunc[string](func(current, _ string) float64 {
		return estimates[current]
	})

	engine := wikisearch.NewEngine[string](graph, w, h)
	result, err := engine.Run(context.Background(), "S", "G", testTimeLimit)
	require.NoError(t, err)
	requireValidPath[string](t, result, "S", "G", w)
	require.Equal(t, []string{"S", "A", "C", "D", "G"}, result.Path)
	require.InDelta(t, 4, result.TotalCost, 1e-9)
	require.Equal(t, 1, result.Reopened)
	// S, C, A and D; C counts once although it was expanded twice
	require.Equal(t, 4, result.ExpandedNodes)
}

func TestRunContractViolations(t *testing.T) {
	graph := diamond()

	tests := []struct {
		name         string
		cost         wikisearch.EdgeCost[string]
		heuristic    wikisearch.Heuristic[string]
		collaborator string
	}{
		{
			name:         "negative_cost",
			cost:         wikisearch.EdgeCostFunc[string](func(_, to string) float64 { return map[string]float64{"D": -1}[to] }),
			collaborator: "edge cost",
		},
		{
			name:         "infinite_cost",
			cost:         wikisearch.EdgeCostFunc[string](func(_, _ string) float64 { return math.Inf(1) }),
			collaborator: "edge cost",
		},
		{
			name:         "nan_heuristic",
			heuristic:    wikisearch.HeuristicFunc[string](func(current, _ string) float64 { return map[string]float64{"B": math.NaN()}[current] }),
			collaborator: "heuristic",
		},
		{
			name:         "negative_source_estimate",
			heuristic:    wikisearch.HeuristicFunc[string](func(_, _ string) float64 { return -3 }),
			collaborator: "heuristic",
		},
	}
	for _, test := range tests {
		for _, workers := range []int{1, 4} {
			t.Run(test.name, func(t *testing.T) {
				engine := wikisearch.NewEngine[string](graph, test.cost, test.heuristic, wikisearch.WithWorkers[string](workers))
				result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
				require.ErrorIs(t, err, wikisearch.ErrContractViolation)

				var violation *wikisearch.ContractViolationError
				require.ErrorAs(t, err, &violation)
				require.Equal(t, test.collaborator, violation.Collaborator)
				require.Equal(t, wikisearch.StateAborted, result.State)
				require.False(t, result.Found)
			})
		}
	}
}

func TestRunDegradesOnFetchErrors(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	inner := memory.New(map[string][]string{
		"A": {"B", "D"},
		"B": {"C"},
		"D": {"E"},
		"E": {"C"},
	})
	graph := mocks.NewMockGraphSource[string](mockController)
	graph.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(inner.Resolve).AnyTimes()
	graph.EXPECT().Neighbors(gomock.Any(), "B").Return(nil, errors.New("i/o timeout"))
	graph.EXPECT().Neighbors(gomock.Any(), gomock.Not("B")).DoAndReturn(inner.Neighbors).AnyTimes()

	observerLogger, logs := observer.New(zap.WarnLevel)
	engine := wikisearch.NewEngine[string](graph, nil, nil,
		wikisearch.WithLogger[string](&logger.ZapLogger{Logger: zap.New(observerLogger)}),
	)

	result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "D", "E", "C"}, result.Path)
	require.Equal(t, 1, result.FetchErrors)
	require.Equal(t, 4, result.ExpandedNodes)

	require.Equal(t, 1, logs.Len())
	var fetchErr *wikisearch.GraphFetchError
	require.ErrorAs(t, logs.All()[0].Context[0].Interface.(error), &fetchErr)
	require.Equal(t, "B", fetchErr.Node)
}

func TestRunTimesOutDuringFetch(t *testing.T) {
	graph := mocks.NewMockSlowGraphSource[string](diamond(), time.Second)
	engine := wikisearch.NewEngine[string](graph, nil, nil)

	start := time.Now()
	result, err := engine.Run(context.Background(), "A", "C", 20*time.Millisecond)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.Equal(t, wikisearch.StateTimedOut, result.State)
	require.Equal(t, 1, result.ExpandedNodes)
	require.Zero(t, result.FetchErrors)
	require.Empty(t, result.Path)
}

func TestRunCancelledContext(t *testing.T) {
	engine := wikisearch.NewEngine[string](diamond(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := engine.Run(ctx, "A", "C", testTimeLimit)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, wikisearch.StateAborted, result.State)
	require.Empty(t, result.Path)
}

func TestRunClosesSessionOnEveryExit(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		timeLimit   time.Duration
		cost        wikisearch.EdgeCost[string]
		state       wikisearch.State
	}{
		{name: "found", destination: "C", timeLimit: testTimeLimit, state: wikisearch.StateFound},
		{name: "exhausted", destination: "X", timeLimit: testTimeLimit, state: wikisearch.StateExhausted},
		{name: "node_not_found", destination: "Z", timeLimit: testTimeLimit, state: wikisearch.StateNodeNotFound},
		{name: "timed_out", destination: "C", timeLimit: 0, state: wikisearch.StateTimedOut},
		{
			name:        "contract_violation",
			destination: "C",
			timeLimit:   testTimeLimit,
			cost:        wikisearch.EdgeCostFunc[string](func(_, _ string) float64 { return -1 }),
			state:       wikisearch.StateAborted,
		},
	}

	inner := memory.New(map[string][]string{
		"A": {"B", "D"},
		"B": {"C"},
		"D": {"C"},
		"X": nil,
	})
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockController := gomock.NewController(t)
			defer mockController.Finish()

			session := mocks.NewMockGraphSession[string](mockController)
			session.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(inner.Resolve).AnyTimes()
			session.EXPECT().Neighbors(gomock.Any(), gomock.Any()).DoAndReturn(inner.Neighbors).AnyTimes()
			session.EXPECT().Close().Return(nil).Times(1)

			graph := sessionGraph{
				MockGraphSource: mocks.NewMockGraphSource[string](mockController),
				MockSessioner:   mocks.NewMockSessioner[string](mockController),
			}
			graph.MockSessioner.EXPECT().Session(gomock.Any()).Return(session, nil).Times(1)

			engine := wikisearch.NewEngine[string](graph, test.cost, nil)
			result, _ := engine.Run(context.Background(), "A", test.destination, test.timeLimit)
			require.Equal(t, test.state, result.State)
		})
	}

	t.Run("session_error", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()

		graph := sessionGraph{
			MockGraphSource: mocks.NewMockGraphSource[string](mockController),
			MockSessioner:   mocks.NewMockSessioner[string](mockController),
		}
		graph.MockSessioner.EXPECT().Session(gomock.Any()).Return(nil, errors.New("too many connections"))

		engine := wikisearch.NewEngine[string](graph, nil, nil)
		result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
		require.ErrorContains(t, err, "too many connections")
		require.Equal(t, wikisearch.StateAborted, result.State)
	})

	t.Run("close_error_is_only_logged", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()

		session := mocks.NewMockGraphSession[string](mockController)
		session.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(inner.Resolve).AnyTimes()
		session.EXPECT().Neighbors(gomock.Any(), gomock.Any()).DoAndReturn(inner.Neighbors).AnyTimes()
		session.EXPECT().Close().Return(errors.New("broken pipe"))

		graph := sessionGraph{
			MockGraphSource: mocks.NewMockGraphSource[string](mockController),
			MockSessioner:   mocks.NewMockSessioner[string](mockController),
		}
		graph.MockSessioner.EXPECT().Session(gomock.Any()).Return(session, nil)

		observerLogger, logs := observer.New(zap.WarnLevel)
		engine := wikisearch.NewEngine[string](graph, nil, nil,
			wikisearch.WithLogger[string](&logger.ZapLogger{Logger: zap.New(observerLogger)}),
		)
		result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
		require.NoError(t, err)
		require.True(t, result.Found)
		require.Equal(t, 1, logs.FilterMessage("failed to close graph session").Len())
	})
}

func TestRunIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	graph, w := randomGraph(r, 60, 3)
	engine := wikisearch.NewEngine[int](graph, w, nil, wikisearch.WithWorkers[int](3))

	first, err := engine.Run(context.Background(), 0, 59, testTimeLimit)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := engine.Run(context.Background(), 0, 59, testTimeLimit)
		require.NoError(t, err)
		require.Equal(t, first.Path, again.Path)
		require.Equal(t, first.TotalCost, again.TotalCost)
		require.Equal(t, first.ExpandedNodes, again.ExpandedNodes)
		require.Equal(t, first.State, again.State)
	}
}

func TestRunStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy wikisearch.ExpansionStrategy[string]
		graph    map[string][]string
		state    wikisearch.State
		path     []string
		expanded int
	}{
		{
			name:     "insertion_order",
			strategy: wikisearch.InsertionOrder[string]{},
			graph:    map[string][]string{"A": {"B", "D"}, "B": {"C"}, "D": {"C"}},
			state:    wikisearch.StateFound,
			path:     []string{"A", "B", "C"},
			expanded: 3,
		},
		{
			name:     "most_recent_first",
			strategy: wikisearch.MostRecentFirst[string]{},
			graph:    map[string][]string{"A": {"B", "D"}, "B": {"C"}, "D": {"C"}},
			state:    wikisearch.StateFound,
			path:     []string{"A", "D", "C"},
			expanded: 3,
		},
		{
			name:     "lowest_cost_first",
			strategy: wikisearch.LowestCostFirst[string]{},
			graph:    map[string][]string{"A": {"B", "D"}, "B": {"C"}, "D": {"C"}},
			state:    wikisearch.StateFound,
			path:     []string{"A", "B", "C"},
			expanded: 3,
		},
		{
			name:     "bounded_branching_prunes",
			strategy: wikisearch.BoundedBranching[string]{MaxBranching: 1},
			graph:    map[string][]string{"A": {"B", "D"}, "B": nil, "D": {"C"}},
			state:    wikisearch.StateExhausted,
			expanded: 2,
		},
		{
			name:     "unbounded_branching",
			strategy: wikisearch.BoundedBranching[string]{},
			graph:    map[string][]string{"A": {"B", "D"}, "B": nil, "D": {"C"}},
			state:    wikisearch.StateFound,
			path:     []string{"A", "D", "C"},
			expanded: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			engine := wikisearch.NewEngine[string](memory.New(test.graph), nil, nil, wikisearch.WithStrategy(test.strategy))
			result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
			require.NoError(t, err)
			require.Equal(t, test.state, result.State)
			require.Equal(t, test.path, result.Path)
			require.Equal(t, test.expanded, result.ExpandedNodes)
		})
	}
}

// forgingStrategy returns candidates the engine never offered and tampers
// with the ones it did.
type forgingStrategy struct {
	wikisearch.InsertionOrder[string]
}

func (forgingStrategy) Select(_ string, candidates []wikisearch.Candidate[string]) []wikisearch.Candidate[string] {
	selected := []wikisearch.Candidate[string]{{Node: "C", GScore: 0, FCost: 0}}
	for _, candidate := range candidates {
		candidate.GScore, candidate.FCost, candidate.EdgeCost = -10, -10, -10
		selected = append(selected, candidate, candidate)
	}
	return selected
}

func TestRunIgnoresForgedCandidates(t *testing.T) {
	graph := memory.New(map[string][]string{
		"A": {"B"},
		"B": {"C"},
	})
	engine := wikisearch.NewEngine[string](graph, nil, nil, wikisearch.WithStrategy[string](forgingStrategy{}))

	result, err := engine.Run(context.Background(), "A", "C", testTimeLimit)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, result.Path)
	require.InDelta(t, 2, result.TotalCost, 1e-9)
}
