package version

import "fmt"

// ParseError reports a build file without a version declaration.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Could not find project version in %s", e.Path)
}

// UsageError reports a version that cannot be bumped automatically.
type UsageError struct {
	Version string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Cannot auto-bump version '%s'. Use --tag with an explicit semantic version like v0.0.4", e.Version)
}
