package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/specrelease/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	strings := []struct {
		name string
		dst  *config.StringFlag
	}{
		{"repo-root", &values.RepoRoot},
		{"api-url", &values.APIURL},
		{"api-key", &values.APIKey},
		{"tag", &values.Tag},
		{"commit-message", &values.CommitMessage},
		{"summary-file", &values.SummaryFile},
		{"format", &values.Format},
	}
	for _, f := range strings {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.StringFlag{Value: v, Set: true}
	}

	bools := []struct {
		name string
		dst  *config.BoolFlag
	}{
		{"skip-examples", &values.SkipExamples},
		{"commit", &values.Commit},
		{"push", &values.Push},
		{"release", &values.Release},
		{"verbose", &values.Verbose},
	}
	for _, f := range bools {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetBool(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
