package version

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const buildFile = `plugins {
    ` + "`java-library`" + `
}

group = "com.github.PAIR-Systems-Inc"
version = "0.0.3"

// version = "9.9.9" stays untouched
`

func writeBuildFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.gradle.kts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write build file: %v", err)
	}
	return path
}

func TestBumpPatch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"v1.2.3", "v1.2.4"},
		{"1.2.3", "v1.2.4"},
		{"0.0.9", "v0.0.10"},
		{"v10.20.99", "v10.20.100"},
	}
	for _, c := range cases {
		got, err := BumpPatch(c.in)
		if err != nil {
			t.Fatalf("BumpPatch(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("BumpPatch(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBumpPatchRejectsNonSemver(t *testing.T) {
	for _, in := range []string{"1.2", "v1", "1.2.3-rc1", "", "x1.2.3"} {
		_, err := BumpPatch(in)
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("BumpPatch(%q) error = %v, want UsageError", in, err)
		}
		if !strings.Contains(err.Error(), "--tag") {
			t.Fatalf("usage error should name --tag, got %q", err.Error())
		}
	}
}

func TestValidTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"v0.0.4", true},
		{"0.0.4", true},
		{"v0.0", false},
		{"release-1", false},
		{"v1.2.3 ", false},
	}
	for _, tt := range tests {
		if got := ValidTag(tt.tag); got != tt.want {
			t.Fatalf("ValidTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestReadProjectVersion(t *testing.T) {
	path := writeBuildFile(t, buildFile)
	got, err := ReadProjectVersion(path)
	if err != nil {
		t.Fatalf("ReadProjectVersion: %v", err)
	}
	if got != "0.0.3" {
		t.Fatalf("version = %q, want 0.0.3", got)
	}
}

func TestReadProjectVersionMissing(t *testing.T) {
	path := writeBuildFile(t, "group = \"x\"\n  version = \"1.0.0\"\n")
	_, err := ReadProjectVersion(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestUpdateProjectVersionReplacesFirstMatchOnly(t *testing.T) {
	path := writeBuildFile(t, buildFile)
	changed, err := UpdateProjectVersion(path, "v0.0.4")
	if err != nil {
		t.Fatalf("UpdateProjectVersion: %v", err)
	}
	if !changed {
		t.Fatalf("expected change")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := strings.Replace(buildFile, `version = "0.0.3"`, `version = "v0.0.4"`, 1)
	if string(data) != want {
		t.Fatalf("unexpected content:\n%s", data)
	}
}

func TestUpdateProjectVersionNoop(t *testing.T) {
	content := strings.Replace(buildFile, `version = "0.0.3"`, `version = "v0.0.4"`, 1)
	path := writeBuildFile(t, content)
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	changed, err := UpdateProjectVersion(path, "v0.0.4")
	if err != nil {
		t.Fatalf("UpdateProjectVersion: %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != content {
		t.Fatalf("file modified on no-op update")
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("file rewritten on no-op update")
	}
}

func TestUpdateProjectVersionSpacingNormalized(t *testing.T) {
	path := writeBuildFile(t, "version=\"1.0.0\"\n")
	changed, err := UpdateProjectVersion(path, "1.0.0")
	if err != nil {
		t.Fatalf("UpdateProjectVersion: %v", err)
	}
	if !changed {
		t.Fatalf("expected spacing rewrite to count as a change")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "version = \"1.0.0\"\n" {
		t.Fatalf("unexpected content %q", data)
	}
}
