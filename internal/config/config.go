package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every knob of the tool. All fields have defaults; a YAML
// config file is optional and command-line flags override it.
type Config struct {
	Model        string `yaml:"model"`
	OutputDir    string `yaml:"output_dir"`
	ExportFormat string `yaml:"export_format"`
	MaxLength    int    `yaml:"max_length"`
	MinLength    int    `yaml:"min_length"`
	ChunkSize    int    `yaml:"chunk_size"`
	APIToken     string `yaml:"api_token"`
	Schedule     string `yaml:"schedule"`
	FeedLimit    int    `yaml:"feed_limit"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = "facebook/bart-large-cnn"
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = "txt"
	}
	if cfg.MaxLength == 0 {
		cfg.MaxLength = 150
	}
	if cfg.MinLength == 0 {
		cfg.MinLength = 50
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 500
	}
	if cfg.FeedLimit == 0 {
		cfg.FeedLimit = 10
	}
	if cfg.APIToken == "" {
		cfg.APIToken = os.Getenv("HF_API_TOKEN")
	}
}

func validate(cfg *Config) error {
	if cfg.Model == "" {
		return fmt.Errorf("config: model is required")
	}
	switch cfg.ExportFormat {
	case "txt", "md", "json":
	default:
		return fmt.Errorf("config: unsupported export format %q (supported: txt, md, json)", cfg.ExportFormat)
	}
	if cfg.MaxLength <= 0 {
		return fmt.Errorf("config: max_length must be positive")
	}
	if cfg.MinLength <= 0 {
		return fmt.Errorf("config: min_length must be positive")
	}
	if cfg.MinLength > cfg.MaxLength {
		return fmt.Errorf("config: min_length %d exceeds max_length %d", cfg.MinLength, cfg.MaxLength)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk_size must be positive")
	}
	if cfg.FeedLimit < 0 {
		return fmt.Errorf("config: feed_limit must not be negative")
	}
	return nil
}

// Validate re-checks the configuration; main runs it again after applying
// flag overrides on top of the loaded file.
func (c *Config) Validate() error {
	return validate(c)
}

// Load builds the configuration: .env (when present), then the optional
// YAML file at path with environment variables expanded, then defaults,
// then validation. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
