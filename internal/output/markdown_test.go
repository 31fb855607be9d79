package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bgricker/specrelease/internal/report"
)

func sampleSummary() report.Summary {
	start := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	return report.Summary{
		RunID:          "run-1",
		Project:        "jina4j",
		Started:        start,
		Finished:       start.Add(95 * time.Second),
		Repository:     "/src/jina4j",
		Source:         "https://api.jina.ai/openapi.json",
		SpecFile:       "openapi/jina-openapi.json",
		OldSpecVersion: "0.1.0",
		NewSpecVersion: "0.2.0",
		Renames: []report.Rename{
			{Path: "/v1/embeddings", Method: "POST", Old: "embed_get", New: "embed_post"},
		},
		Steps: []report.StepResult{
			{Command: "./gradlew clean --console=plain", ExitCode: 0, Duration: 3.5},
			{Command: "./gradlew build --console=plain", ExitCode: 1, Duration: 12},
		},
		Examples: []report.ExampleGroup{
			{Name: "Embedding", Highlights: []string{"Model used: jina-embeddings-v3"}},
			{Name: "Reranking"},
		},
		Release: report.Release{
			Committed:      true,
			Commit:         "abc123",
			VersionUpdated: true,
			Tag:            "v0.0.4",
			URL:            "https://github.com/org/jina4j/releases/tag/v0.0.4",
		},
		WorkingTree: "## main...origin/main",
	}
}

func TestMarkdownFull(t *testing.T) {
	got := Markdown(sampleSummary())
	want := strings.Join([]string{
		"## Jina4j OpenAPI Workflow Summary",
		"- Started (UTC): 2026-10-18T09:30:00.000000+00:00",
		"- Finished (UTC): 2026-10-18T09:31:35.000000+00:00",
		"- Repository: /src/jina4j",
		"- OpenAPI source: https://api.jina.ai/openapi.json",
		"- Updated file: `openapi/jina-openapi.json`",
		"- Spec version: `0.1.0` -> `0.2.0`",
		"- Duplicate operationId fixes: 1",
		"  - `POST /v1/embeddings`: `embed_get` -> `embed_post`",
		"",
		"### Command Results",
		"- `./gradlew clean --console=plain` -> PASS (3.5s)",
		"- `./gradlew build --console=plain` -> FAIL (12.0s)",
		"",
		"### Example Highlights",
		"- Embedding:",
		"  - Model used: jina-embeddings-v3",
		"- Reranking:",
		"  - (no matching highlight lines captured)",
		"",
		"### Git/Release",
		"- Commit: `abc123`",
		"- Version file updated: yes",
		"- Tag: `v0.0.4`",
		"- Release URL: https://github.com/org/jina4j/releases/tag/v0.0.4",
		"",
		"### Working Tree",
		"```text",
		"## main...origin/main",
		"```",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected markdown:\n--- want\n%s\n--- got\n%s", want, got)
	}
}

func TestMarkdownMinimal(t *testing.T) {
	s := sampleSummary()
	s.Renames = nil
	s.Examples = nil
	s.Release = report.Release{}
	s.WorkingTree = ""

	out := Markdown(s)
	if !strings.Contains(out, "- Duplicate operationId fixes: none") {
		t.Fatalf("expected no-fix line, got %q", out)
	}
	if strings.Contains(out, "### Example Highlights") || strings.Contains(out, "### Git/Release") {
		t.Fatalf("unexpected optional sections in %q", out)
	}
	if !strings.HasSuffix(out, "### Working Tree\n- clean") {
		t.Fatalf("expected clean working tree, got %q", out)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{0: "0.0", 1.25: "1.25", 2: "2.0", 0.1: "0.1"}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkdownRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewMarkdown(buf).Render(sampleSummary()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "```\n") {
		t.Fatalf("expected trailing newline, got %q", buf.String())
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "summary.md")
	abs, err := WriteFile(path, "hello")
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if abs != path {
		t.Fatalf("abs = %q, want %q", abs, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("content = %q", data)
	}
}
