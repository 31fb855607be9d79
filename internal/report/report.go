package report

import "time"

// StepResult captures the outcome of a single external command.
type StepResult struct {
	Command    string   `json:"command"`
	Args       []string `json:"args,omitempty"`
	ExitCode   int      `json:"exit_code"`
	Duration   float64  `json:"duration"`
	Tail       []string `json:"tail,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// Passed reports whether the command exited with status zero.
func (s StepResult) Passed() bool {
	return s.ExitCode == 0
}

// Rename records a duplicate operationId that was rewritten.
type Rename struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

// ExampleGroup holds the highlight lines captured from one example run.
type ExampleGroup struct {
	Name       string   `json:"name"`
	Highlights []string `json:"highlights"`
}

// Release describes the git and release side of a run.
type Release struct {
	Committed      bool   `json:"committed"`
	Commit         string `json:"commit,omitempty"`
	VersionUpdated bool   `json:"version_updated"`
	Tag            string `json:"tag,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Summary aggregates a complete workflow run.
type Summary struct {
	RunID          string         `json:"run_id"`
	Project        string         `json:"project"`
	Started        time.Time      `json:"started"`
	Finished       time.Time      `json:"finished"`
	Repository     string         `json:"repository"`
	Source         string         `json:"source"`
	SpecFile       string         `json:"spec_file"`
	OldSpecVersion string         `json:"old_spec_version"`
	NewSpecVersion string         `json:"new_spec_version"`
	Renames        []Rename       `json:"renames"`
	Steps          []StepResult   `json:"steps"`
	Examples       []ExampleGroup `json:"examples,omitempty"`
	Release        Release        `json:"release"`
	WorkingTree    string         `json:"working_tree"`
}
