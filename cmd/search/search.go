// Package search contains the command that runs a single path search.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/internal/config"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

const (
	sourceFlag      = "source"
	destinationFlag = "dest"
	traceFlag       = "trace"
)

// NewSearchCommand returns the command that searches for a path between two pages.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for a path between two pages",
		Long:  "Search for a path of links from a source page to a destination page within a time limit.",
		RunE:  run,
		Args:  cobra.NoArgs,
	}

	defaultConfig := config.DefaultConfig()
	flags := cmd.Flags()

	flags.StringP(sourceFlag, "s", "", "the title of the page to start from")
	flags.StringP(destinationFlag, "d", "", "the title of the page to reach")
	_ = cmd.MarkFlagRequired(sourceFlag)
	_ = cmd.MarkFlagRequired(destinationFlag)

	flags.DurationP("time-limit", "t", defaultConfig.Search.TimeLimit, "how long the search may run, resolution of both pages excluded")

	flags.Bool(traceFlag, false, "log every expansion of the search")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in. For production we recommend 'json' format")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use ('none', 'debug', 'info', 'warn', 'error', 'panic', 'fatal')")

	flags.String("datastore-engine", defaultConfig.Datastore.Engine, "the graph datastore engine ('memory', 'sqlite', 'badger', 'mongo')")

	flags.String("datastore-uri", defaultConfig.Datastore.URI, "the connection uri of the datastore: a YAML file (memory), a database file (sqlite), a directory (badger, empty for in-memory) or a connection string (mongo)")

	flags.String("datastore-database", defaultConfig.Datastore.Database, "the mongo database holding the pages")

	flags.String("datastore-collection", defaultConfig.Datastore.Collection, "the mongo collection holding the pages")

	flags.Int("datastore-max-cache-size", defaultConfig.Datastore.MaxCacheSize, "the maximum number of neighbor lists to cache. 0 disables the cache")

	flags.Duration("datastore-cache-ttl", defaultConfig.Datastore.CacheTTL, "the time to live of cached neighbor lists. 0 keeps them until evicted")

	flags.Uint64("datastore-max-retries", defaultConfig.Datastore.MaxRetries, "the number of retries of a failed datastore call. 0 disables retries")

	flags.Int("search-workers", defaultConfig.Search.Workers, "the number of goroutines evaluating the neighbors of an expanded page")

	flags.String("search-strategy", defaultConfig.Search.Strategy, "the tie-break among equally promising pages ('default', 'lowest-cost', 'most-recent')")

	flags.Int("search-max-branching", defaultConfig.Search.MaxBranching, "the maximum number of neighbors kept per expansion. 0 keeps them all")

	flags.String("heuristic-kind", defaultConfig.Heuristic.Kind, "the distance heuristic ('zero', 'nn')")

	flags.String("heuristic-model-path", defaultConfig.Heuristic.ModelPath, "the YAML file of the trained distance model")

	flags.String("heuristic-vectors-path", defaultConfig.Heuristic.VectorsPath, "the word vectors file, in word2vec text format")

	flags.Float64("heuristic-default-estimate", defaultConfig.Heuristic.DefaultEstimate, "the estimate used for pages whose title has no embedding")

	flags.Int("heuristic-cache-size", defaultConfig.Heuristic.CacheSize, "the maximum number of title embeddings to cache")

	cmd.PreRun = bindSearchFlagsFunc(flags)

	return cmd
}

// ReadConfig returns the wikisearch configuration based on the values provided in the 'config.yaml' file.
// The 'config.yaml' file is loaded from '/etc/wikisearch', '$HOME/.wikisearch', or the current working directory. If no configuration
// file is present, the default values are returned.
func ReadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := ReadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Verify(); err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	source, _ := cmd.Flags().GetString(sourceFlag)
	destination, _ := cmd.Flags().GetString(destinationFlag)
	trace, _ := cmd.Flags().GetBool(traceFlag)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	searcher, err := NewSearcher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer searcher.Close()

	log.Info("starting search",
		zap.String("source", source),
		zap.String("destination", destination),
		zap.String("engine", cfg.Datastore.Engine),
		zap.String("heuristic", cfg.Heuristic.Kind),
		zap.Duration("time_limit", cfg.Search.TimeLimit),
	)

	var result wikisearch.Result[string]
	if trace {
		result, err = searcher.Trace(ctx, source, destination, cfg.Search.TimeLimit)
	} else {
		result, err = searcher.Search(ctx, source, destination, cfg.Search.TimeLimit)
	}
	if err != nil {
		return err
	}

	log.Info("search finished",
		zap.String("state", result.State.String()),
		zap.Int("expanded", result.ExpandedNodes),
		zap.Int("reopened", result.Reopened),
		zap.Int("fetch_errors", result.FetchErrors),
		zap.Duration("elapsed", result.Elapsed),
	)
	PrintResult(cmd.OutOrStdout(), result)
	return nil
}

// PrintResult writes the path, its length and the number of pages developed,
// or only the latter when no path was found.
func PrintResult(out io.Writer, result wikisearch.Result[string]) {
	if !result.Found {
		fmt.Fprintf(out, "Path not found. Number of nodes developed: %d\n", result.ExpandedNodes)
		return
	}
	fmt.Fprintf(out, "Path: %s\n", strings.Join(result.Path, " -> "))
	fmt.Fprintf(out, "Distance: %s\n", strconv.FormatFloat(result.TotalCost, 'f', -1, 64))
	fmt.Fprintf(out, "Number of nodes developed: %d\n", result.ExpandedNodes)
}
