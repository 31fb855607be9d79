package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/bgricker/specrelease/internal/config"
	"github.com/bgricker/specrelease/internal/output"
	"github.com/bgricker/specrelease/internal/report"
	"github.com/bgricker/specrelease/internal/runner"
	"github.com/bgricker/specrelease/internal/workflow"
)

// newExecutor builds the command executor for a run. Tests swap it out.
var newExecutor = func(cfg config.Config, console *output.Console) workflow.Executor {
	return runner.New(runner.Options{Console: console, TailLines: cfg.TailLines})
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Refresh the OpenAPI document, regenerate, validate, and optionally publish",
		Args:  cobra.NoArgs,
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	console := output.NewConsole(cmd.OutOrStdout())
	driver := workflow.New(workflow.Options{
		Config:   cfg,
		Executor: newExecutor(cfg, console),
	})

	start := time.Now()
	summary, err := driver.Run(cmd.Context())
	if err != nil {
		log.Debugf("run %s stopped after %d commands", summary.RunID, len(summary.Steps))
		output.NewConsole(cmd.ErrOrStderr()).Status(false, "workflow failed")
		return err
	}

	rendered, err := renderSummary(cfg.Format, summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", rendered)

	if cfg.SummaryFile != "" {
		path, err := output.WriteFile(cfg.Path(cfg.SummaryFile), rendered)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote summary to %s\n", path)
	}

	output.NewConsole(cmd.ErrOrStderr()).Status(true,
		fmt.Sprintf("workflow completed in %ss", output.FormatSeconds(time.Since(start).Round(10*time.Millisecond).Seconds())))
	return nil
}

func renderSummary(format string, summary report.Summary) (string, error) {
	switch strings.ToLower(format) {
	case config.FormatJSON:
		var buf bytes.Buffer
		if err := output.NewJSON(&buf).Render(summary); err != nil {
			return "", err
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	default:
		return output.Markdown(summary), nil
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}

	root := "."
	if flags.RepoRoot.Set {
		root = flags.RepoRoot.Value
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(root, configPath)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)
	if err := config.Resolve(&cfg, os.Getenv); err != nil {
		return config.Config{}, err
	}

	configureLogging(cmd, cfg.Verbose)
	return cfg, nil
}

func configureLogging(cmd *cobra.Command, verbose bool) {
	log.SetOutput(cmd.ErrOrStderr())
	if verbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Linfo)
	}
}
