package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qiniu/x/log"

	"github.com/bgricker/specrelease/internal/config"
	"github.com/bgricker/specrelease/internal/discovery"
	"github.com/bgricker/specrelease/internal/openapi"
	"github.com/bgricker/specrelease/internal/report"
	"github.com/bgricker/specrelease/internal/runner"
	"github.com/bgricker/specrelease/internal/version"
)

// Executor runs external commands. *runner.Runner is the production
// implementation.
type Executor interface {
	Run(ctx context.Context, c runner.Command) (report.StepResult, error)
	Capture(ctx context.Context, dir string, args ...string) (string, error)
}

// Options configure a Driver.
type Options struct {
	Config   config.Config
	Executor Executor
	Now      func() time.Time
	RunID    func() string
}

// Driver sequences one refresh/regenerate/validate/release run. Every stage
// must succeed before the next one starts.
type Driver struct {
	cfg   config.Config
	exec  Executor
	now   func() time.Time
	runID func() string

	summary report.Summary
}

// New creates a driver for a resolved configuration.
func New(opts Options) *Driver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RunID == nil {
		opts.RunID = uuid.NewString
	}
	return &Driver{cfg: opts.Config, exec: opts.Executor, now: opts.Now, runID: opts.RunID}
}

// Run executes the workflow. The returned summary holds everything recorded
// up to the point of failure; on error no later stage has run.
func (d *Driver) Run(ctx context.Context) (report.Summary, error) {
	if err := config.Normalize(&d.cfg); err != nil {
		return d.summary, err
	}
	cfg := d.cfg

	files, err := discovery.Require(cfg.RepoRoot, cfg.BuildFile, cfg.SpecFile)
	if err != nil {
		return d.summary, err
	}
	buildFile, specFile := files[0], files[1]

	d.summary = report.Summary{
		RunID:      d.runID(),
		Project:    cfg.Project,
		Started:    d.now().UTC(),
		Repository: cfg.RepoRoot,
		Source:     cfg.APIURL,
		SpecFile:   discovery.Rel(cfg.RepoRoot, specFile),
		Renames:    []report.Rename{},
		Steps:      []report.StepResult{},
	}

	if err := d.fetch(ctx, specFile); err != nil {
		return d.summary, err
	}
	if err := d.transform(specFile); err != nil {
		return d.summary, err
	}
	if err := d.build(ctx); err != nil {
		return d.summary, err
	}
	if !cfg.SkipExamples {
		if err := d.validate(ctx); err != nil {
			return d.summary, err
		}
	} else {
		log.Infof("skipping example validation")
	}
	if cfg.Commit {
		if err := d.publish(ctx, buildFile); err != nil {
			return d.summary, err
		}
	}
	if err := d.finish(ctx); err != nil {
		return d.summary, err
	}
	return d.summary, nil
}

func (d *Driver) fetch(ctx context.Context, specFile string) error {
	current, err := openapi.Load(specFile)
	if err != nil {
		return err
	}
	d.summary.OldSpecVersion = current.Version()
	log.Infof("fetching %s (stored spec version %s)", d.cfg.APIURL, d.summary.OldSpecVersion)
	return d.step(ctx, d.fetchCommand(specFile))
}

func (d *Driver) transform(specFile string) error {
	doc, err := openapi.Load(specFile)
	if err != nil {
		return err
	}
	d.summary.NewSpecVersion = doc.Version()
	d.summary.Renames = doc.DedupeOperationIDs()
	if err := doc.Save(specFile); err != nil {
		return err
	}
	log.Infof("spec version %s -> %s, %d duplicate operationId fixes",
		d.summary.OldSpecVersion, d.summary.NewSpecVersion, len(d.summary.Renames))

	removed, err := discovery.RemoveIfExists(d.cfg.Path(d.cfg.OrphanSpecFile))
	if err != nil {
		return err
	}
	if removed {
		log.Debugf("removed generator artifact %s", d.cfg.OrphanSpecFile)
	}
	return nil
}

func (d *Driver) build(ctx context.Context) error {
	for _, c := range d.buildCommands() {
		if err := d.step(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) validate(ctx context.Context) error {
	if d.cfg.APIKey == "" {
		return config.Errorf("Examples require API key. Provide --api-key or set %s, or pass --skip-examples.", d.cfg.APIKeyEnv)
	}
	for _, ex := range d.cfg.Examples {
		log.Infof("running %s example", ex.Name)
		result, err := d.exec.Run(ctx, d.exampleCommand(ex))
		d.record(result)
		if err != nil {
			return fmt.Errorf("%s example: %w", ex.Name, err)
		}
		d.summary.Examples = append(d.summary.Examples, report.ExampleGroup{
			Name:       ex.Name,
			Highlights: append([]string{}, result.Highlights...),
		})
	}
	return nil
}

func (d *Driver) publish(ctx context.Context, buildFile string) error {
	cfg := d.cfg
	rel := &d.summary.Release
	rel.Committed = true

	current, err := version.ReadProjectVersion(buildFile)
	if err != nil {
		return err
	}
	tag := cfg.Tag
	if cfg.Release && tag == "" {
		if tag, err = version.BumpPatch(current); err != nil {
			return err
		}
	}
	if tag != "" && current != tag {
		if rel.VersionUpdated, err = version.UpdateProjectVersion(buildFile, tag); err != nil {
			return err
		}
		log.Infof("project version %s -> %s", current, tag)
	}

	if err := d.step(ctx, d.gitCommand("add", "-A")); err != nil {
		return err
	}
	message := cfg.CommitMessage
	if message == "" {
		message = CommitMessage(cfg.SourceLabel, tag)
	}
	if err := d.step(ctx, d.gitCommand("commit", "-m", message)); err != nil {
		return err
	}

	if cfg.Push {
		branch, err := d.exec.Capture(ctx, cfg.RepoRoot, "git", "branch", "--show-current")
		if err != nil {
			return err
		}
		if err := d.step(ctx, d.gitCommand("push", "origin", branch)); err != nil {
			return err
		}
	}

	if cfg.Release {
		rel.Tag = tag
		notes := ReleaseNotes(NotesInput{
			Source:         cfg.APIURL,
			OldSpecVersion: d.summary.OldSpecVersion,
			NewSpecVersion: d.summary.NewSpecVersion,
			Renames:        len(d.summary.Renames),
			Tag:            tag,
			Examples:       exampleNames(cfg.Examples),
		})
		result, err := d.exec.Run(ctx, d.releaseCommand(tag, notes))
		d.record(result)
		if err != nil {
			return err
		}
		rel.URL = releaseURL(result.Tail)
		log.Infof("published release %s %s", tag, rel.URL)
	}
	return nil
}

func (d *Driver) finish(ctx context.Context) error {
	d.summary.Finished = d.now().UTC()
	status, err := d.exec.Capture(ctx, d.cfg.RepoRoot, "git", "status", "--short", "--branch")
	if err != nil {
		return err
	}
	d.summary.WorkingTree = status
	if d.cfg.Commit {
		head, err := d.exec.Capture(ctx, d.cfg.RepoRoot, "git", "rev-parse", "HEAD")
		if err != nil {
			return err
		}
		d.summary.Release.Commit = head
	}
	return nil
}

// step runs a required command and records its result.
func (d *Driver) step(ctx context.Context, c runner.Command) error {
	result, err := d.exec.Run(ctx, c)
	d.record(result)
	return err
}

// record appends a result to the run log. Commands that never started
// produce no entry.
func (d *Driver) record(result report.StepResult) {
	if result.Command == "" {
		return
	}
	d.summary.Steps = append(d.summary.Steps, result)
}

func exampleNames(examples []config.Example) []string {
	names := make([]string, len(examples))
	for i, ex := range examples {
		names[i] = ex.Name
	}
	return names
}
