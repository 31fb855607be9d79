package version

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var (
	declRegex = regexp.MustCompile(`(?m)^version\s*=\s*"([^"]+)"`)
	tagRegex  = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)
)

// ReadProjectVersion returns the value of the first `version = "..."`
// declaration in the build file at path.
func ReadProjectVersion(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	match := declRegex.FindSubmatch(content)
	if match == nil {
		return "", &ParseError{Path: path}
	}
	return string(match[1]), nil
}

// UpdateProjectVersion rewrites the first version declaration in path to v.
// It reports whether the file changed; an unchanged file is not rewritten.
func UpdateProjectVersion(path, v string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	loc := declRegex.FindIndex(content)
	if loc == nil {
		return false, &ParseError{Path: path}
	}
	replacement := []byte(`version = "` + v + `"`)
	if string(content[loc[0]:loc[1]]) == string(replacement) {
		return false, nil
	}
	updated := make([]byte, 0, len(content)+len(replacement))
	updated = append(updated, content[:loc[0]]...)
	updated = append(updated, replacement...)
	updated = append(updated, content[loc[1]:]...)
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// BumpPatch increments the patch component of a MAJOR.MINOR.PATCH version,
// with or without a leading "v", and always returns the "v"-prefixed form.
func BumpPatch(v string) (string, error) {
	match := tagRegex.FindStringSubmatch(v)
	if match == nil {
		return "", &UsageError{Version: v}
	}
	major, _ := strconv.Atoi(match[1])
	minor, _ := strconv.Atoi(match[2])
	patch, err := strconv.Atoi(match[3])
	if err != nil {
		return "", &UsageError{Version: v}
	}
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch+1), nil
}

// ValidTag reports whether tag is a semantic version, optionally "v"-prefixed.
func ValidTag(tag string) bool {
	return tagRegex.MatchString(tag)
}
