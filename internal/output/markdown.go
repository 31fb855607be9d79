package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/bgricker/specrelease/internal/report"
)

const timestampLayout = "2006-01-02T15:04:05.000000-07:00"

// MarkdownRenderer renders a run summary as a markdown document.
type MarkdownRenderer struct {
	out io.Writer
}

// NewMarkdown creates a MarkdownRenderer writing to out.
func NewMarkdown(out io.Writer) *MarkdownRenderer {
	return &MarkdownRenderer{out: out}
}

// Render writes the summary followed by a newline.
func (m *MarkdownRenderer) Render(summary report.Summary) error {
	_, err := io.WriteString(m.out, Markdown(summary)+"\n")
	return err
}

// Markdown builds the summary document. Sections always appear in the same
// order; the git section is present only when a commit was made.
func Markdown(s report.Summary) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("## %s OpenAPI Workflow Summary", titleCase(s.Project))
	add("- Started (UTC): %s", formatTimestamp(s.Started))
	add("- Finished (UTC): %s", formatTimestamp(s.Finished))
	add("- Repository: %s", s.Repository)
	add("- OpenAPI source: %s", s.Source)
	add("- Updated file: `%s`", s.SpecFile)
	add("- Spec version: `%s` -> `%s`", s.OldSpecVersion, s.NewSpecVersion)

	if len(s.Renames) > 0 {
		add("- Duplicate operationId fixes: %d", len(s.Renames))
		for _, r := range s.Renames {
			add("  - `%s %s`: `%s` -> `%s`", r.Method, r.Path, r.Old, r.New)
		}
	} else {
		add("- Duplicate operationId fixes: none")
	}

	add("\n### Command Results")
	for _, step := range s.Steps {
		lines = append(lines, FormatStep(step))
	}

	if len(s.Examples) > 0 {
		add("\n### Example Highlights")
		for _, group := range s.Examples {
			lines = append(lines, formatHighlights(group.Name, group.Highlights)...)
		}
	}

	if s.Release.Committed {
		add("\n### Git/Release")
		add("- Commit: `%s`", s.Release.Commit)
		add("- Version file updated: %s", yesNo(s.Release.VersionUpdated))
		if s.Release.Tag != "" {
			add("- Tag: `%s`", s.Release.Tag)
		}
		if s.Release.URL != "" {
			add("- Release URL: %s", s.Release.URL)
		}
	}

	add("\n### Working Tree")
	if s.WorkingTree != "" {
		add("```text")
		add("%s", s.WorkingTree)
		add("```")
	} else {
		add("- clean")
	}

	return strings.Join(lines, "\n")
}

// FormatStep renders one command result line. Pass or fail is decided by the
// exit code alone.
func FormatStep(step report.StepResult) string {
	status := "FAIL"
	if step.Passed() {
		status = "PASS"
	}
	return fmt.Sprintf("- `%s` -> %s (%ss)", step.Command, status, FormatSeconds(step.Duration))
}

// FormatSeconds renders a duration in seconds, always with a fractional part.
func FormatSeconds(seconds float64) string {
	s := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatHighlights(title string, lines []string) []string {
	rendered := []string{fmt.Sprintf("- %s:", title)}
	if len(lines) == 0 {
		return append(rendered, "  - (no matching highlight lines captured)")
	}
	for _, line := range lines {
		rendered = append(rendered, "  - "+line)
	}
	return rendered
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
