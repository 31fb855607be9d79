package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bgricker/specrelease/internal/config"
)

func TestRequireResolvesInOrder(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "build.gradle.kts"))
	mustWrite(t, filepath.Join(root, "openapi", "jina-openapi.json"))

	got, err := Require(root, "build.gradle.kts", filepath.Join("openapi", "jina-openapi.json"))
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	want := []string{
		filepath.Join(root, "build.gradle.kts"),
		filepath.Join(root, "openapi", "jina-openapi.json"),
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Require = %v, want %v", got, want)
	}
}

func TestRequireMissing(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "build.gradle.kts"))

	_, err := Require(root, "build.gradle.kts", "openapi/jina-openapi.json")
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRequireDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "openapi"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Require(root, "openapi"); err == nil {
		t.Fatalf("expected error for directory")
	}
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")
	mustWrite(t, path)

	removed, err := RemoveIfExists(path)
	if err != nil || !removed {
		t.Fatalf("first remove = %v, %v", removed, err)
	}
	removed, err = RemoveIfExists(path)
	if err != nil || removed {
		t.Fatalf("second remove = %v, %v", removed, err)
	}
}

func TestRel(t *testing.T) {
	root := t.TempDir()
	if got := Rel(root, filepath.Join(root, "openapi", "x.json")); got != "openapi/x.json" {
		t.Fatalf("Rel inside root = %q", got)
	}
	outside := filepath.Join(filepath.Dir(root), "elsewhere.json")
	if got := Rel(root, outside); got != outside {
		t.Fatalf("Rel outside root = %q, want %q", got, outside)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}
