package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleResult() Result {
	return Result{
		Title:   "T",
		URL:     "http://u",
		Summary: "S",
	}
}

func TestExportTxt(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(dir, sampleResult(), "txt")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	want := "Title: T\nURL: http://u\n\nSummary:\nS\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(dir, sampleResult(), "md")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	want := "# T\n\n**URL:** [http://u](http://u)\n\n## Summary\n\nS\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(dir, sampleResult(), "json")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}

	var got Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}
	if got != sampleResult() {
		t.Errorf("Round trip changed values: %+v", got)
	}
}

func TestExportJSONPreservesNonASCII(t *testing.T) {
	dir := t.TempDir()
	res := Result{Title: "Café & Crème", URL: "http://u", Summary: "Déjà vu"}
	path, err := Export(dir, res, "json")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "Café") || !strings.Contains(string(data), "Déjà") {
		t.Errorf("Non-ASCII was escaped: %s", data)
	}
	if strings.Contains(string(data), `é`) {
		t.Errorf("Found unicode escapes in %s", data)
	}
	// ensure_ascii=False also means & must survive unescaped
	if !strings.Contains(string(data), "Café & Crème") {
		t.Errorf("HTML escaping mangled the title: %s", data)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := Export(dir, sampleResult(), "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got: %v", err)
	}
	// Nothing is written for an unsupported format, not even the dir.
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("Expected output dir to be untouched")
	}
}

func TestExportCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := Export(dir, sampleResult(), "txt"); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "T.txt")); err != nil {
		t.Errorf("Expected exported file: %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title  string
		format string
		want   string
	}{
		{"Breaking News Today", "txt", "Breaking_News_Today.txt"},
		{"a/b/c", "md", "a_b_c.md"},
		{"", "json", "article.json"},
		{strings.Repeat("x", 60), "txt", strings.Repeat("x", 40) + ".txt"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, tt.format); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.title, tt.format, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, f := range []string{"txt", "md", "json"} {
		if !Supported(f) {
			t.Errorf("Expected %q to be supported", f)
		}
	}
	if Supported("pdf") {
		t.Error("Expected pdf to be unsupported")
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	Console(&buf, sampleResult())
	want := "\n--- T ---\nS\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}
