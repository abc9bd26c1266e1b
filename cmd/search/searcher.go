package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/graph"
	"github.com/pdrpinto/wikisearch/graph/badger"
	"github.com/pdrpinto/wikisearch/graph/memory"
	"github.com/pdrpinto/wikisearch/graph/mongo"
	"github.com/pdrpinto/wikisearch/graph/sqlite"
	"github.com/pdrpinto/wikisearch/heuristic"
	"github.com/pdrpinto/wikisearch/internal/config"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

// Searcher owns the datastore, caches and heuristic model of the command and
// the engine wired on top of them.
type Searcher struct {
	engine  *wikisearch.Engine[string]
	logger  logger.Logger
	closers []func()
}

// NewSearcher opens everything cfg describes. Close must be called even when
// no search is run.
func NewSearcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Searcher, error) {
	s := &Searcher{logger: log}

	source, err := s.openGraph(ctx, cfg.Datastore)
	if err != nil {
		s.Close()
		return nil, err
	}

	h, err := s.newHeuristic(cfg.Heuristic)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.engine = wikisearch.NewEngine[string](
		source,
		wikisearch.NewUniformCost[string](1),
		h,
		wikisearch.WithWorkers[string](cfg.Search.Workers),
		wikisearch.WithStrategy(newStrategy(cfg.Search)),
		wikisearch.WithLogger[string](log),
	)
	return s, nil
}

// Close releases resources in the reverse order they were acquired.
func (s *Searcher) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Search runs one search.
func (s *Searcher) Search(ctx context.Context, source, destination string, timeLimit time.Duration) (wikisearch.Result[string], error) {
	return s.engine.Run(ctx, source, destination, timeLimit)
}

// Trace runs one search expansion by expansion, logging every step.
func (s *Searcher) Trace(ctx context.Context, source, destination string, timeLimit time.Duration) (wikisearch.Result[string], error) {
	stepper, err := wikisearch.NewStepper(ctx, s.engine, source, destination, timeLimit)
	defer stepper.Close()
	if err != nil {
		return stepper.Result(), err
	}

	for {
		snapshot, err := stepper.Step()
		if err != nil {
			return stepper.Result(), err
		}
		s.logger.Info("step",
			zap.Int("step", snapshot.StepIndex),
			zap.String("current", snapshot.Current),
			zap.Int("open", len(snapshot.Open)),
			zap.Int("closed", len(snapshot.Closed)),
			zap.String("state", snapshot.State.String()),
		)
		if snapshot.Done {
			return stepper.Result(), nil
		}
	}
}

func (s *Searcher) openGraph(ctx context.Context, cfg config.DatastoreConfig) (wikisearch.GraphSource[string], error) {
	var source wikisearch.GraphSource[string]
	switch cfg.Engine {
	case "memory":
		ds, err := memory.Load(cfg.URI)
		if err != nil {
			return nil, err
		}
		source = ds
	case "sqlite":
		ds, err := sqlite.New(cfg.URI, sqlite.Config{Logger: s.logger})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, ds.Close)
		if err := ds.Migrate(ctx); err != nil {
			return nil, err
		}
		source = ds
	case "badger":
		ds, err := badger.Open(badger.Config{
			Path:     cfg.URI,
			InMemory: cfg.URI == "",
			Logger:   s.logger,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() {
			if err := ds.Close(); err != nil {
				s.logger.Warn("failed to close badger datastore", zap.Error(err))
			}
		})
		source = ds
	case "mongo":
		ds, err := mongo.New(ctx, cfg.URI, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() {
			if err := ds.Close(context.Background()); err != nil {
				s.logger.Warn("failed to close mongo datastore", zap.Error(err))
			}
		})
		source = ds
	default:
		return nil, fmt.Errorf("storage engine '%s' is unsupported", cfg.Engine)
	}
	s.logger.Info(fmt.Sprintf("using '%s' storage engine", cfg.Engine))

	if cfg.MaxRetries > 0 {
		source = graph.NewRetryingSource(source, graph.RetryConfig{MaxRetries: cfg.MaxRetries}, s.logger)
	}
	if cfg.MaxCacheSize > 0 {
		cached, err := graph.NewCachedSource(source, graph.CacheConfig{
			MaxSize: int64(cfg.MaxCacheSize),
			TTL:     cfg.CacheTTL,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, cached.Close)
		source = cached
	}
	return source, nil
}

func (s *Searcher) newHeuristic(cfg config.HeuristicConfig) (wikisearch.Heuristic[string], error) {
	if cfg.Kind != "nn" {
		return wikisearch.ZeroHeuristic[string]{}, nil
	}

	vectors, err := heuristic.LoadVectors(cfg.VectorsPath)
	if err != nil {
		return nil, err
	}
	embedder, err := heuristic.NewEmbedder(vectors, int64(cfg.CacheSize))
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, embedder.Close)

	model, err := heuristic.LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	nn, err := heuristic.NewNN(embedder, model,
		heuristic.WithDefaultEstimate(cfg.DefaultEstimate),
		heuristic.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	return nn, nil
}

func newStrategy(cfg config.SearchConfig) wikisearch.ExpansionStrategy[string] {
	var strategy wikisearch.ExpansionStrategy[string]
	switch cfg.Strategy {
	case "lowest-cost":
		strategy = wikisearch.LowestCostFirst[string]{}
	case "most-recent":
		strategy = wikisearch.MostRecentFirst[string]{}
	default:
		strategy = wikisearch.InsertionOrder[string]{}
	}
	if cfg.MaxBranching > 0 {
		strategy = wikisearch.BoundedBranching[string]{MaxBranching: cfg.MaxBranching, Inner: strategy}
	}
	return strategy
}
