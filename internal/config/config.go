package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/specrelease/internal/version"
)

// FileName is the optional per-repository configuration file.
const FileName = ".specrelease.yml"

const (
	// FormatMarkdown renders the summary as markdown.
	FormatMarkdown = "markdown"
	// FormatJSON renders the summary as indented JSON.
	FormatJSON = "json"
)

// Config is the run context resolved once at start from defaults, the
// config file, and CLI flags. It is not modified after Resolve.
type Config struct {
	RepoRoot string `yaml:"-"`

	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"-"`
	APIKeyEnv string `yaml:"api_key_env"`

	Project     string `yaml:"project"`
	SourceLabel string `yaml:"source_label"`

	BuildFile      string `yaml:"build_file"`
	SpecFile       string `yaml:"spec_file"`
	OrphanSpecFile string `yaml:"orphan_spec_file"`

	Examples  []Example `yaml:"examples"`
	TailLines int       `yaml:"tail_lines"`

	SkipExamples bool `yaml:"skip_examples"`
	Commit       bool `yaml:"-"`
	Push         bool `yaml:"-"`
	Release      bool `yaml:"-"`

	Tag           string `yaml:"-"`
	CommitMessage string `yaml:"-"`
	SummaryFile   string `yaml:"summary_file"`

	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// Example is one validation target run after the build.
type Example struct {
	Name       string   `yaml:"name"`
	Task       string   `yaml:"task"`
	Highlights []string `yaml:"highlights"`
}

// Default returns the baseline configuration for the jina4j client.
func Default() Config {
	return Config{
		RepoRoot:       ".",
		APIURL:         "https://api.jina.ai/openapi.json",
		APIKeyEnv:      "JINA_API_KEY",
		Project:        "jina4j",
		SourceLabel:    "Jina",
		BuildFile:      "build.gradle.kts",
		SpecFile:       filepath.Join("openapi", "jina-openapi.json"),
		OrphanSpecFile: filepath.Join("openapi", "openapi.json"),
		Examples: []Example{
			{
				Name:       "Embedding",
				Task:       ":examples:runEmbeddingExample",
				Highlights: []string{`Model used:`, `Total tokens:`, `Number of embedding results:`},
			},
			{
				Name:       "MultiVector",
				Task:       ":examples:runMultiVectorExample",
				Highlights: []string{`Model used:`, `Usage:`},
			},
			{
				Name:       "Reranking",
				Task:       ":examples:runRerankingExample",
				Highlights: []string{`^Model:`, `^Usage:`, `^Index=`},
			},
		},
		TailLines: 140,
		Format:    FormatMarkdown,
	}
}

// Load reads the config file at path. When path is empty the default file in
// root is tried and a missing file is ignored; an explicit path must exist.
func Load(root, path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.APIURL != "" {
		out.APIURL = override.APIURL
	}
	if override.APIKeyEnv != "" {
		out.APIKeyEnv = override.APIKeyEnv
	}
	if override.Project != "" {
		out.Project = override.Project
	}
	if override.SourceLabel != "" {
		out.SourceLabel = override.SourceLabel
	}
	if override.BuildFile != "" {
		out.BuildFile = override.BuildFile
	}
	if override.SpecFile != "" {
		out.SpecFile = override.SpecFile
	}
	if override.OrphanSpecFile != "" {
		out.OrphanSpecFile = override.OrphanSpecFile
	}
	if len(override.Examples) > 0 {
		out.Examples = append([]Example{}, override.Examples...)
	}
	if override.TailLines > 0 {
		out.TailLines = override.TailLines
	}
	if override.SummaryFile != "" {
		out.SummaryFile = override.SummaryFile
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.SkipExamples {
		out.SkipExamples = true
	}
	if override.Verbose {
		out.Verbose = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.RepoRoot.Set {
		cfg.RepoRoot = flags.RepoRoot.Value
	}
	if flags.APIURL.Set {
		cfg.APIURL = flags.APIURL.Value
	}
	if flags.APIKey.Set {
		cfg.APIKey = flags.APIKey.Value
	}
	if flags.Tag.Set {
		cfg.Tag = flags.Tag.Value
	}
	if flags.CommitMessage.Set {
		cfg.CommitMessage = flags.CommitMessage.Value
	}
	if flags.SummaryFile.Set {
		cfg.SummaryFile = flags.SummaryFile.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.SkipExamples.Set {
		cfg.SkipExamples = flags.SkipExamples.Value
	}
	if flags.Commit.Set {
		cfg.Commit = flags.Commit.Value
	}
	if flags.Push.Set {
		cfg.Push = flags.Push.Value
	}
	if flags.Release.Set {
		cfg.Release = flags.Release.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// Resolve finalizes cfg: the repository root becomes absolute, the API key
// falls back to the configured environment variable, and flag combinations
// are validated.
func Resolve(cfg *Config, getenv func(string) string) error {
	root, err := filepath.Abs(cfg.RepoRoot)
	if err != nil {
		return fmt.Errorf("resolve repository root %q: %w", cfg.RepoRoot, err)
	}
	cfg.RepoRoot = root

	if cfg.APIKey == "" && cfg.APIKeyEnv != "" && getenv != nil {
		cfg.APIKey = getenv(cfg.APIKeyEnv)
	}

	switch cfg.Format {
	case FormatMarkdown, FormatJSON:
	default:
		return Errorf("unsupported format %q", cfg.Format)
	}

	return Normalize(cfg)
}

// Normalize applies flag implications and rejects invalid combinations:
// --release implies --commit and --push, and --push requires --commit.
func Normalize(cfg *Config) error {
	if cfg.Release {
		cfg.Commit = true
		cfg.Push = true
	}
	if cfg.Push && !cfg.Commit {
		return Errorf("--push requires --commit")
	}
	if cfg.Tag != "" && !version.ValidTag(cfg.Tag) {
		return Errorf("--tag must be semantic version format, for example v0.0.4")
	}
	return nil
}

// Path resolves rel against the repository root.
func (c Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.RepoRoot, rel)
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	RepoRoot      StringFlag
	APIURL        StringFlag
	APIKey        StringFlag
	Tag           StringFlag
	CommitMessage StringFlag
	SummaryFile   StringFlag
	Format        StringFlag
	SkipExamples  BoolFlag
	Commit        BoolFlag
	Push          BoolFlag
	Release       BoolFlag
	Verbose       BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
