// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with WIKISEARCH, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("WIKISEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/wikisearch", "$HOME/.wikisearch", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	return &cobra.Command{
		Use:   "wikisearch",
		Short: "Find a short path of links between two Wikipedia pages",
		Long: `Find a short path of links between two Wikipedia pages.

wikisearch runs a time-bounded best-first search over a page graph stored in
SQLite, BadgerDB, MongoDB or a YAML file, optionally guided by a learned
distance heuristic.`,
		SilenceUsage: true,
	}
}
