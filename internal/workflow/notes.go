package workflow

import (
	"fmt"
	"strings"
	"unicode"
)

// NotesInput is what the release notes are built from.
type NotesInput struct {
	Source         string
	OldSpecVersion string
	NewSpecVersion string
	Renames        int
	Tag            string
	Examples       []string
}

// ReleaseNotes renders the plain-text bullet list published with a release.
func ReleaseNotes(in NotesInput) string {
	lines := []string{
		fmt.Sprintf("- Refreshed OpenAPI from %s (%s -> %s)", in.Source, in.OldSpecVersion, in.NewSpecVersion),
		"- Regenerated client code and applied post-generation fixes via `fixGeneratedCode`",
		fmt.Sprintf("- Ran clean build and %s", validationLabel(in.Examples)),
	}
	if in.Renames > 0 {
		lines = append(lines, fmt.Sprintf("- Auto-resolved %d duplicate operationId entries before generation", in.Renames))
	}
	if in.Tag != "" {
		lines = append(lines, fmt.Sprintf("- Version/tag: %s", in.Tag))
	}
	return strings.Join(lines, "\n")
}

func validationLabel(examples []string) string {
	if len(examples) == 0 {
		return "example validations"
	}
	names := make([]string, len(examples))
	for i, name := range examples {
		names[i] = kebab(name)
	}
	return strings.Join(names, "/") + " example validations"
}

// kebab turns "MultiVector" into "multi-vector".
func kebab(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '-' {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CommitMessage returns the default commit message for a run.
func CommitMessage(label, tag string) string {
	if tag != "" {
		return fmt.Sprintf("Regenerate client for latest %s OpenAPI and bump to %s", label, tag)
	}
	return fmt.Sprintf("Regenerate client for latest %s OpenAPI", label)
}

// releaseURL returns the first line of the release command's output that
// looks like a URL.
func releaseURL(tail []string) string {
	for _, line := range tail {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "https://") {
			return line
		}
	}
	return ""
}
