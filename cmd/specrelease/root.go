package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "specrelease",
		Short:         "Refresh an OpenAPI client, regenerate, validate, and optionally release it",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("repo-root", ".", "path to the client repository root")
	persistent.String("config", "", "config file (default <repo-root>/.specrelease.yml)")
	persistent.String("api-url", "", "OpenAPI source URL")
	persistent.String("api-key", "", "API key for running example tasks (defaults to the configured env var, JINA_API_KEY)")
	persistent.Bool("skip-examples", false, "skip running the example validations")
	persistent.Bool("commit", false, "stage and commit all changes")
	persistent.Bool("push", false, "push current branch to origin (requires --commit)")
	persistent.Bool("release", false, "create GitHub release/tag via gh (implies --commit and --push)")
	persistent.String("tag", "", "release tag/version to use (e.g. v0.0.4)")
	persistent.String("commit-message", "", "custom commit message")
	persistent.String("summary-file", "", "optional output file for the final summary")
	persistent.String("format", "markdown", "summary format (markdown|json)")
	persistent.BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newPlanCmd())

	return cmd
}
