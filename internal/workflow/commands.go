package workflow

import (
	"github.com/bgricker/specrelease/internal/config"
	"github.com/bgricker/specrelease/internal/runner"
	"github.com/bgricker/specrelease/internal/version"
)

const gradlew = "./gradlew"

func (d *Driver) fetchCommand(specFile string) runner.Command {
	return runner.Command{
		Args: []string{"curl", "-fsSL", d.cfg.APIURL, "-o", specFile},
		Dir:  d.cfg.RepoRoot,
	}
}

func (d *Driver) buildCommands() []runner.Command {
	return []runner.Command{
		d.gradleCommand("clean"),
		d.gradleCommand(":openApiGenerate", ":fixGeneratedCode", "--rerun-tasks"),
		d.gradleCommand("build"),
	}
}

func (d *Driver) exampleCommand(ex config.Example) runner.Command {
	c := d.gradleCommand(ex.Task)
	c.Env = map[string]string{d.cfg.APIKeyEnv: d.cfg.APIKey}
	c.Highlights = append([]string{}, ex.Highlights...)
	return c
}

func (d *Driver) gradleCommand(tasks ...string) runner.Command {
	args := append([]string{gradlew}, tasks...)
	return runner.Command{
		Args: append(args, "--console=plain"),
		Dir:  d.cfg.RepoRoot,
	}
}

func (d *Driver) gitCommand(args ...string) runner.Command {
	return runner.Command{
		Args: append([]string{"git"}, args...),
		Dir:  d.cfg.RepoRoot,
	}
}

func (d *Driver) releaseCommand(tag, notes string) runner.Command {
	return runner.Command{
		Args: []string{"gh", "release", "create", tag, "--title", d.cfg.Project + " " + tag, "--notes", notes},
		Dir:  d.cfg.RepoRoot,
	}
}

// Plan lists the commands a run with the current flags would execute, in
// order. Values only known at run time appear as placeholders. Nothing is
// executed and no file is written.
func (d *Driver) Plan() ([]runner.Command, error) {
	cfg := d.cfg
	if err := config.Normalize(&cfg); err != nil {
		return nil, err
	}
	p := &Driver{cfg: cfg}

	specFile := cfg.Path(cfg.SpecFile)
	plan := []runner.Command{p.fetchCommand(specFile)}
	plan = append(plan, p.buildCommands()...)

	if !cfg.SkipExamples {
		if p.cfg.APIKey != "" {
			p.cfg.APIKey = "<redacted>"
		} else {
			p.cfg.APIKey = "<missing>"
		}
		for _, ex := range cfg.Examples {
			plan = append(plan, p.exampleCommand(ex))
		}
	}

	if !cfg.Commit {
		return plan, nil
	}

	tag := cfg.Tag
	if cfg.Release && tag == "" {
		tag = "<next-patch>"
		if current, err := version.ReadProjectVersion(cfg.Path(cfg.BuildFile)); err == nil {
			if bumped, err := version.BumpPatch(current); err == nil {
				tag = bumped
			}
		}
	}
	message := cfg.CommitMessage
	if message == "" {
		message = CommitMessage(cfg.SourceLabel, tag)
	}
	plan = append(plan, p.gitCommand("add", "-A"), p.gitCommand("commit", "-m", message))
	if cfg.Push {
		plan = append(plan, p.gitCommand("push", "origin", "<current-branch>"))
	}
	if cfg.Release {
		plan = append(plan, p.releaseCommand(tag, "<release-notes>"))
	}
	return plan, nil
}
