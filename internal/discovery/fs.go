package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgricker/specrelease/internal/config"
)

// Require checks that every path exists as a regular file under root and
// returns their absolute forms in the order given. A missing file is a
// configuration error.
func Require(root string, paths ...string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	for _, input := range paths {
		cleaned := input
		if !filepath.IsAbs(cleaned) {
			cleaned = filepath.Join(root, cleaned)
		}
		info, err := os.Stat(cleaned)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, config.Errorf("Required file not found: %s", cleaned)
			}
			return nil, fmt.Errorf("stat %q: %w", cleaned, err)
		}
		if info.IsDir() {
			return nil, config.Errorf("Required file %s is a directory", cleaned)
		}
		resolved = append(resolved, cleaned)
	}
	return resolved, nil
}

// RemoveIfExists deletes path when present and reports whether it did.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("remove %s: %w", path, err)
}

// Rel renders path relative to root for display, falling back to the
// cleaned path when it lies outside root.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return filepath.ToSlash(rel)
}
