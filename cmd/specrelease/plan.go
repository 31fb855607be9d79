package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/specrelease/internal/runner"
	"github.com/bgricker/specrelease/internal/workflow"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the commands a run would execute without running them",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	commands, err := workflow.New(workflow.Options{Config: cfg}).Plan()
	if err != nil {
		return err
	}
	for i, c := range commands {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, runner.Quote(c.Args))
	}
	return nil
}
