// Package config contains the configuration of the wikisearch command.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	DefaultTimeLimit    = 60 * time.Second
	DefaultMaxCacheSize = 100000
	DefaultCacheTTL     = 10 * time.Minute
)

var (
	datastoreEngines = []string{"memory", "sqlite", "badger", "mongo"}
	strategies       = []string{"default", "lowest-cost", "most-recent"}
	heuristicKinds   = []string{"zero", "nn"}
	logFormats       = []string{"text", "json"}
	logLevels        = []string{"none", "debug", "info", "warn", "error", "panic", "fatal"}
)

type LogConfig struct {
	// Format is "text" or "json".
	Format string
	Level  string
}

// DatastoreConfig selects and tunes the graph backend.
type DatastoreConfig struct {
	// Engine is one of memory, sqlite, badger or mongo.
	Engine string
	// URI is a YAML file path (memory), a DSN (sqlite), a directory
	// (badger) or a connection string (mongo).
	URI string

	// Database and Collection are only used by the mongo engine.
	Database   string
	Collection string

	// MaxCacheSize bounds the number of neighbor lists kept in memory.
	// Zero disables the cache.
	MaxCacheSize int
	CacheTTL     time.Duration
	// MaxRetries is the number of retries of a failed neighbor fetch.
	MaxRetries uint64
}

type SearchConfig struct {
	TimeLimit time.Duration
	Workers   int
	// Strategy is one of default, lowest-cost or most-recent.
	Strategy string
	// MaxBranching caps the neighbors pushed per expansion. Zero means no cap.
	MaxBranching int
}

type HeuristicConfig struct {
	// Kind is "zero" or "nn".
	Kind string

	ModelPath   string
	VectorsPath string
	// DefaultEstimate is used when a title has no embedding.
	DefaultEstimate float64
	CacheSize       int
}

type Config struct {
	Log       LogConfig
	Datastore DatastoreConfig
	Search    SearchConfig
	Heuristic HeuristicConfig
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Datastore: DatastoreConfig{
			Engine:       "sqlite",
			URI:          "wikisearch.db",
			Database:     "wikisearch",
			Collection:   "pages",
			MaxCacheSize: DefaultMaxCacheSize,
			CacheTTL:     DefaultCacheTTL,
			MaxRetries:   3,
		},
		Search: SearchConfig{
			TimeLimit: DefaultTimeLimit,
			Workers:   1,
			Strategy:  "default",
		},
		Heuristic: HeuristicConfig{
			Kind:      "zero",
			CacheSize: DefaultMaxCacheSize,
		},
	}
}

// Verify reports the first invalid setting.
func (cfg *Config) Verify() error {
	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("config 'log.format' must be one of %v, got '%s'", logFormats, cfg.Log.Format)
	}
	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("config 'log.level' must be one of %v, got '%s'", logLevels, cfg.Log.Level)
	}

	if !slices.Contains(datastoreEngines, cfg.Datastore.Engine) {
		return fmt.Errorf("config 'datastore.engine' must be one of %v, got '%s'", datastoreEngines, cfg.Datastore.Engine)
	}
	if cfg.Datastore.URI == "" && cfg.Datastore.Engine != "badger" {
		return errors.New("config 'datastore.uri' must be set")
	}
	if cfg.Datastore.Engine == "mongo" && (cfg.Datastore.Database == "" || cfg.Datastore.Collection == "") {
		return errors.New("config 'datastore.database' and 'datastore.collection' must be set for the mongo engine")
	}
	if cfg.Datastore.MaxCacheSize < 0 {
		return errors.New("config 'datastore.maxCacheSize' must not be negative")
	}

	if cfg.Search.TimeLimit < 0 {
		return errors.New("config 'search.timeLimit' must not be negative")
	}
	if cfg.Search.Workers < 1 {
		return errors.New("config 'search.workers' must be at least 1")
	}
	if !slices.Contains(strategies, cfg.Search.Strategy) {
		return fmt.Errorf("config 'search.strategy' must be one of %v, got '%s'", strategies, cfg.Search.Strategy)
	}
	if cfg.Search.MaxBranching < 0 {
		return errors.New("config 'search.maxBranching' must not be negative")
	}

	if !slices.Contains(heuristicKinds, cfg.Heuristic.Kind) {
		return fmt.Errorf("config 'heuristic.kind' must be one of %v, got '%s'", heuristicKinds, cfg.Heuristic.Kind)
	}
	if cfg.Heuristic.Kind == "nn" && (cfg.Heuristic.ModelPath == "" || cfg.Heuristic.VectorsPath == "") {
		return errors.New("config 'heuristic.modelPath' and 'heuristic.vectorsPath' must be set for the nn heuristic")
	}
	if cfg.Heuristic.DefaultEstimate < 0 {
		return errors.New("config 'heuristic.defaultEstimate' must not be negative")
	}

	return nil
}
