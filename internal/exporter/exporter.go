package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Result is one article's export payload.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// ErrUnsupportedFormat is returned for export formats other than txt, md
// and json.
var ErrUnsupportedFormat = errors.New("exporter: unsupported export format")

// Supported reports whether format is a known export format.
func Supported(format string) bool {
	switch format {
	case "txt", "md", "json":
		return true
	}
	return false
}

const maxFilenameLen = 40

// Filename derives the export file name from the article title: spaces and
// path separators become underscores, the result is truncated to 40
// characters, and an empty title falls back to "article".
func Filename(title, format string) string {
	name := title
	if name == "" {
		name = "article"
	}
	name = strings.NewReplacer(" ", "_", "/", "_").Replace(name)
	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = string(runes[:maxFilenameLen])
	}
	return name + "." + format
}

// Export renders res in the given format and writes it under dir, creating
// dir when absent. It returns the path of the written file.
func Export(dir string, res Result, format string) (string, error) {
	data, err := render(res, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("exporter: failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, Filename(res.Title, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("exporter: failed to write %s: %w", path, err)
	}
	return path, nil
}

func render(res Result, format string) ([]byte, error) {
	switch format {
	case "txt":
		return []byte(fmt.Sprintf("Title: %s\nURL: %s\n\nSummary:\n%s\n", res.Title, res.URL, res.Summary)), nil
	case "md":
		return []byte(fmt.Sprintf("# %s\n\n**URL:** [%s](%s)\n\n## Summary\n\n%s\n", res.Title, res.URL, res.URL, res.Summary)), nil
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("exporter: failed to encode JSON: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Console writes the on-screen block printed for every processed article,
// exported or not.
func Console(w io.Writer, res Result) {
	fmt.Fprintf(w, "\n--- %s ---\n%s\n", res.Title, res.Summary)
}
