package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "vibescan.config.yml"

	envProjectDir  = "VIBESCAN_PROJECT_DIR"
	envDeep        = "VIBESCAN_DEEP"
	envFormat      = "VIBESCAN_FORMAT"
	envOutput      = "VIBESCAN_OUTPUT"
	envScanners    = "VIBESCAN_SCANNERS"
	envMergeFile   = "VIBESCAN_MERGE_FILE"
	envSummaryFile = "VIBESCAN_SUMMARY_FILE"
	envTimeout     = "VIBESCAN_TIMEOUT"
)

// Loader merges configuration coming from files, environment variables, and CLI flags.
type Loader struct {
	ConfigPath string
}

// RuntimeConfig contains the fully merged settings required by sub-commands.
type RuntimeConfig struct {
	ProjectDir  string
	Deep        bool
	Format      string
	Output      string
	Scanners    []string
	MergeFile   string
	SummaryFile string
	Timeout     time.Duration
}

// Overrides captures values coming from env vars or CLI flags.
type Overrides struct {
	ProjectDir  string
	Deep        *bool
	Format      string
	Output      string
	Scanners    []string
	MergeFile   string
	SummaryFile string
	Timeout     time.Duration
	TimeoutSet  bool
}

// DefaultRuntimeConfig returns the baseline configuration when no overrides are provided.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Format:  "text",
		Timeout: 2 * time.Minute,
	}
}

// Load resolves the final runtime configuration. Precedence from lowest to
// highest: defaults, config file, environment, explicit overrides.
func (l Loader) Load(override Overrides) (RuntimeConfig, error) {
	// .env values only fill unset environment variables.
	_ = godotenv.Load()

	cfg := DefaultRuntimeConfig()
	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	if fileExists(path) {
		fileOv, err := loadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg.apply(fileOv)
	}

	cfg.apply(overridesFromEnv())
	cfg.apply(override)

	return cfg, nil
}

// Validate ensures the merged config is runnable.
func (c RuntimeConfig) Validate() error {
	switch c.Format {
	case "text", "json", "ndjson":
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or ndjson)", c.Format)
	}

	if c.Timeout < time.Second {
		return errors.New("timeout must be at least one second")
	}

	if c.ProjectDir != "" {
		info, err := os.Stat(c.ProjectDir)
		if err != nil {
			return fmt.Errorf("project directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("project directory %s is not a directory", c.ProjectDir)
		}
	}

	return nil
}

func (c *RuntimeConfig) apply(src Overrides) {
	if src.ProjectDir != "" {
		c.ProjectDir = src.ProjectDir
	}
	if src.Deep != nil {
		c.Deep = *src.Deep
	}
	if src.Format != "" {
		c.Format = src.Format
	}
	if src.Output != "" {
		c.Output = src.Output
	}
	if len(src.Scanners) > 0 {
		c.Scanners = cleanList(src.Scanners)
	}
	if src.MergeFile != "" {
		c.MergeFile = src.MergeFile
	}
	if src.SummaryFile != "" {
		c.SummaryFile = src.SummaryFile
	}
	if src.TimeoutSet {
		c.Timeout = src.Timeout
	}
}

func loadFromFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, err
	}

	type rawConfig struct {
		ProjectDir  string      `yaml:"projectDir"`
		Deep        *bool       `yaml:"deep"`
		Format      string      `yaml:"format"`
		Output      string      `yaml:"output"`
		Scanners    scannerList `yaml:"scanners"`
		MergeFile   string      `yaml:"mergeFile"`
		SummaryFile string      `yaml:"summaryFile"`
		Timeout     string      `yaml:"timeout"`
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Overrides{}, err
	}

	over := Overrides{
		ProjectDir:  raw.ProjectDir,
		Deep:        raw.Deep,
		Format:      raw.Format,
		Output:      raw.Output,
		Scanners:    raw.Scanners,
		MergeFile:   raw.MergeFile,
		SummaryFile: raw.SummaryFile,
	}

	if raw.Timeout != "" {
		parsed, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Overrides{}, fmt.Errorf("invalid timeout in %s: %w", path, err)
		}
		over.Timeout = parsed
		over.TimeoutSet = true
	}

	return over, nil
}

func overridesFromEnv() Overrides {
	ov := Overrides{}

	if value := os.Getenv(envProjectDir); value != "" {
		ov.ProjectDir = value
	}

	if value := os.Getenv(envDeep); value != "" {
		parsed := strings.EqualFold(value, "true") || value == "1"
		ov.Deep = &parsed
	}

	if value := os.Getenv(envFormat); value != "" {
		ov.Format = value
	}

	if value := os.Getenv(envOutput); value != "" {
		ov.Output = value
	}

	if value := os.Getenv(envScanners); value != "" {
		ov.Scanners = ParseScannerList(value)
	}

	if value := os.Getenv(envMergeFile); value != "" {
		ov.MergeFile = value
	}

	if value := os.Getenv(envSummaryFile); value != "" {
		ov.SummaryFile = value
	}

	if value := os.Getenv(envTimeout); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			ov.Timeout = parsed
			ov.TimeoutSet = true
		} else if seconds, err := strconv.Atoi(value); err == nil {
			ov.Timeout = time.Duration(seconds) * time.Second
			ov.TimeoutSet = true
		}
	}

	return ov
}

// ParseScannerList turns comma or newline separated input into scanner names.
func ParseScannerList(input string) []string {
	if input == "" {
		return nil
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' '
	})
	return cleanList(parts)
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		candidate := strings.TrimSpace(v)
		if candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// scannerList enables YAML fields that can be specified as a scalar or sequence.
type scannerList []string

func (s *scannerList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var out []string
		for _, node := range value.Content {
			out = append(out, strings.TrimSpace(node.Value))
		}
		*s = cleanList(out)
	case yaml.ScalarNode:
		*s = ParseScannerList(value.Value)
	default:
		return fmt.Errorf("unsupported YAML type for scanners")
	}
	return nil
}
