package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists a rendered summary to path, creating parent directories
// as needed. It returns the absolute path written.
func WriteFile(path, content string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve summary path %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create summary directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write summary %s: %w", abs, err)
	}
	return abs, nil
}
