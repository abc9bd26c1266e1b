package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/wikisearch/internal/build"
)

// NewVersionCommand returns the command to get the wikisearch version
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Return the wikisearch version",
		Long:  "Return the wikisearch version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}

	return cmd
}

// print out the built version
func version(cmd *cobra.Command, _ []string) error {
	cmd.Printf("wikisearch Version %s Date %s commit id %s\n", build.Version, build.Date, build.Commit)
	return nil
}
