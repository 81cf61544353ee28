package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "latest-tag",
	Short: "Find the latest semantic-version tag of a git repository",
	Long: `latest-tag inspects the tags of the current git repository, selects the
latest one under semantic-versioning rules and publishes it as a latest_tag
output for the CI pipeline.

On the release branch only stable tags are considered; on any other branch
prerelease tags are included as well.`,
}

func Execute() error {
	return rootCmd.Execute()
}
