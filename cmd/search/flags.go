package search

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdrpinto/wikisearch/cmd/util"
)

// bindSearchFlagsFunc binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindSearchFlagsFunc(flags *pflag.FlagSet) func(*cobra.Command, []string) {
	return func(command *cobra.Command, args []string) {
		util.MustBindPFlag("log.format", flags.Lookup("log-format"))
		util.MustBindEnv("log.format", "WIKISEARCH_LOG_FORMAT")

		util.MustBindPFlag("log.level", flags.Lookup("log-level"))
		util.MustBindEnv("log.level", "WIKISEARCH_LOG_LEVEL")

		util.MustBindPFlag("datastore.engine", flags.Lookup("datastore-engine"))
		util.MustBindEnv("datastore.engine", "WIKISEARCH_DATASTORE_ENGINE")

		util.MustBindPFlag("datastore.uri", flags.Lookup("datastore-uri"))
		util.MustBindEnv("datastore.uri", "WIKISEARCH_DATASTORE_URI")

		util.MustBindPFlag("datastore.database", flags.Lookup("datastore-database"))
		util.MustBindEnv("datastore.database", "WIKISEARCH_DATASTORE_DATABASE")

		util.MustBindPFlag("datastore.collection", flags.Lookup("datastore-collection"))
		util.MustBindEnv("datastore.collection", "WIKISEARCH_DATASTORE_COLLECTION")

		util.MustBindPFlag("datastore.maxCacheSize", flags.Lookup("datastore-max-cache-size"))
		util.MustBindEnv("datastore.maxCacheSize", "WIKISEARCH_DATASTORE_MAX_CACHE_SIZE", "WIKISEARCH_DATASTORE_MAXCACHESIZE")

		util.MustBindPFlag("datastore.cacheTTL", flags.Lookup("datastore-cache-ttl"))
		util.MustBindEnv("datastore.cacheTTL", "WIKISEARCH_DATASTORE_CACHE_TTL", "WIKISEARCH_DATASTORE_CACHETTL")

		util.MustBindPFlag("datastore.maxRetries", flags.Lookup("datastore-max-retries"))
		util.MustBindEnv("datastore.maxRetries", "WIKISEARCH_DATASTORE_MAX_RETRIES", "WIKISEARCH_DATASTORE_MAXRETRIES")

		util.MustBindPFlag("search.timeLimit", flags.Lookup("time-limit"))
		util.MustBindEnv("search.timeLimit", "WIKISEARCH_SEARCH_TIME_LIMIT", "WIKISEARCH_SEARCH_TIMELIMIT")

		util.MustBindPFlag("search.workers", flags.Lookup("search-workers"))
		util.MustBindEnv("search.workers", "WIKISEARCH_SEARCH_WORKERS")

		util.MustBindPFlag("search.strategy", flags.Lookup("search-strategy"))
		util.MustBindEnv("search.strategy", "WIKISEARCH_SEARCH_STRATEGY")

		util.MustBindPFlag("search.maxBranching", flags.Lookup("search-max-branching"))
		util.MustBindEnv("search.maxBranching", "WIKISEARCH_SEARCH_MAX_BRANCHING", "WIKISEARCH_SEARCH_MAXBRANCHING")

		util.MustBindPFlag("heuristic.kind", flags.Lookup("heuristic-kind"))
		util.MustBindEnv("heuristic.kind", "WIKISEARCH_HEURISTIC_KIND")

		util.MustBindPFlag("heuristic.modelPath", flags.Lookup("heuristic-model-path"))
		util.MustBindEnv("heuristic.modelPath", "WIKISEARCH_HEURISTIC_MODEL_PATH", "WIKISEARCH_HEURISTIC_MODELPATH")

		util.MustBindPFlag("heuristic.vectorsPath", flags.Lookup("heuristic-vectors-path"))
		util.MustBindEnv("heuristic.vectorsPath", "WIKISEARCH_HEURISTIC_VECTORS_PATH", "WIKISEARCH_HEURISTIC_VECTORSPATH")

		util.MustBindPFlag("heuristic.defaultEstimate", flags.Lookup("heuristic-default-estimate"))
		util.MustBindEnv("heuristic.defaultEstimate", "WIKISEARCH_HEURISTIC_DEFAULT_ESTIMATE", "WIKISEARCH_HEURISTIC_DEFAULTESTIMATE")

		util.MustBindPFlag("heuristic.cacheSize", flags.Lookup("heuristic-cache-size"))
		util.MustBindEnv("heuristic.cacheSize", "WIKISEARCH_HEURISTIC_CACHE_SIZE", "WIKISEARCH_HEURISTIC_CACHESIZE")
	}
}
