package config

import (
	"os"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config_test_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Model != "facebook/bart-large-cnn" {
		t.Errorf("Expected default model, got %q", cfg.Model)
	}
	if cfg.ExportFormat != "txt" {
		t.Errorf("Expected default format txt, got %q", cfg.ExportFormat)
	}
	if cfg.MaxLength != 150 || cfg.MinLength != 50 || cfg.ChunkSize != 500 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.FeedLimit != 10 {
		t.Errorf("Expected default feed limit 10, got %d", cfg.FeedLimit)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTempConfig(t, `
model: google/pegasus-xsum
output_dir: ./summaries
export_format: md
max_length: 200
chunk_size: 800
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Model != "google/pegasus-xsum" {
		t.Errorf("Expected model from file, got %q", cfg.Model)
	}
	if cfg.OutputDir != "./summaries" {
		t.Errorf("Expected output dir from file, got %q", cfg.OutputDir)
	}
	if cfg.ExportFormat != "md" {
		t.Errorf("Expected format md, got %q", cfg.ExportFormat)
	}
	if cfg.MaxLength != 200 || cfg.ChunkSize != 800 {
		t.Errorf("Expected overridden lengths, got %+v", cfg)
	}
	if cfg.MinLength != 50 {
		t.Errorf("Expected default min_length to fill in, got %d", cfg.MinLength)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("NEWSUM_TEST_TOKEN", "secret-token")
	path := writeTempConfig(t, `
api_token: ${NEWSUM_TEST_TOKEN}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.APIToken != "secret-token" {
		t.Errorf("Expected expanded token, got %q", cfg.APIToken)
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	path := writeTempConfig(t, `
export_format: pdf
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "export format") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadLengthBoundsValidated(t *testing.T) {
	path := writeTempConfig(t, `
max_length: 40
min_length: 60
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error when min_length exceeds max_length")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestValidateAfterOverride(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	cfg.ChunkSize = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected validation error for negative chunk size")
	}
}
