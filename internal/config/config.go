// Package config provides unified configuration for the formatbench tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/formatbench/formatbench/internal/errors"
)

// Format names accepted in the formats list.
const (
	FormatParquet  = "parquet"
	FormatAvro     = "avro"
	FormatProtobuf = "protobuf"
)

// AllFormats lists every supported format in benchmark order.
var AllFormats = []string{FormatParquet, FormatAvro, FormatProtobuf}

// Config holds the unified configuration for all benchmark phases.
type Config struct {
	// DataDir is the base directory for data files and results
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Formats is the non-empty subset of formats to benchmark
	Formats []string `json:"formats" yaml:"formats"`

	// Dataset configuration
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`

	// Read phase configuration
	Read ReadConfig `json:"read" yaml:"read"`

	// Results persistence configuration
	Results ResultsConfig `json:"results" yaml:"results"`
}

// DatasetConfig holds the synthetic dataset parameters.
type DatasetConfig struct {
	// TargetSizeGB is the logical dataset size to generate; the record count
	// is derived from it unless Records is set
	TargetSizeGB float64 `json:"target_size_gb" yaml:"target_size_gb"`

	// Records overrides TargetSizeGB with an exact record count when > 0
	Records int64 `json:"records" yaml:"records"`

	// BatchSize is the number of records per generated batch
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Seed is the generator seed; nil seeds from the clock (non-reproducible)
	Seed *int64 `json:"seed" yaml:"seed"`

	// DateAnchor is the RFC 3339 upper bound of the order-date window. It is
	// a fixed constant rather than the wall clock so equal seeds always
	// produce equal datasets.
	DateAnchor string `json:"date_anchor" yaml:"date_anchor"`

	// WindowDays is the size of the historical order-date window
	WindowDays int `json:"window_days" yaml:"window_days"`
}

// ReadConfig holds read phase configuration.
type ReadConfig struct {
	// Runs is how many times each read operation is repeated
	Runs int `json:"runs" yaml:"runs"`

	// FilterCategory is the category value for the filtered-read operation
	FilterCategory string `json:"filter_category" yaml:"filter_category"`
}

// ResultsConfig holds result persistence configuration.
type ResultsConfig struct {
	// Dir is the directory for result JSON files
	Dir string `json:"dir" yaml:"dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/formatbench",
		Formats: append([]string(nil), AllFormats...),
		Dataset: DatasetConfig{
			TargetSizeGB: 10,
			Records:      0,
			BatchSize:    100_000,
			Seed:         nil,
			DateAnchor:   "2026-01-01T00:00:00Z",
			WindowDays:   730,
		},
		Read: ReadConfig{
			Runs:           3,
			FilterCategory: "Electronics",
		},
		Results: ResultsConfig{
			Dir: "",
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/formatbench"
	}

	if c.Results.Dir == "" {
		c.Results.Dir = filepath.Join(c.DataDir, "results")
	}
}

// DataFilePath returns the path of the data file for a format extension.
// Every format writes a distinct file under DataDir.
func (c *Config) DataFilePath(ext string) string {
	return filepath.Join(c.DataDir, "orders"+ext)
}

// WriteResultsPath returns the path of the persisted write-phase results.
func (c *Config) WriteResultsPath() string {
	return filepath.Join(c.Results.Dir, "write_results.json")
}

// ReadResultsPath returns the path of the persisted read-phase results.
func (c *Config) ReadResultsPath() string {
	return filepath.Join(c.Results.Dir, "read_results.json")
}

// Validate validates the configuration. It runs before any phase touches the
// filesystem.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.NewConfigurationError(errors.CodeInvalidPath, "data_dir is required")
	}

	if len(c.Formats) == 0 {
		return errors.NewConfigurationError(errors.CodeUnknownFormat, "formats must name at least one format")
	}
	for _, f := range c.Formats {
		if !IsValidFormat(f) {
			return errors.NewConfigurationError(errors.CodeUnknownFormat,
				fmt.Sprintf("unknown format %q (must be one of %s)", f, strings.Join(AllFormats, ", ")))
		}
	}

	if c.Dataset.Records < 0 {
		return errors.NewConfigurationError(errors.CodeInvalidSize,
			fmt.Sprintf("dataset.records must not be negative, got %d", c.Dataset.Records))
	}
	if c.Dataset.Records == 0 && c.Dataset.TargetSizeGB <= 0 {
		return errors.NewConfigurationError(errors.CodeInvalidSize,
			fmt.Sprintf("dataset.target_size_gb must be positive, got %g", c.Dataset.TargetSizeGB))
	}
	if c.Dataset.BatchSize <= 0 {
		return errors.NewConfigurationError(errors.CodeInvalidBatchSize,
			fmt.Sprintf("dataset.batch_size must be positive, got %d", c.Dataset.BatchSize))
	}
	if _, err := time.Parse(time.RFC3339, c.Dataset.DateAnchor); err != nil {
		return errors.NewConfigurationError(errors.CodeInvalidPath,
			fmt.Sprintf("dataset.date_anchor is not RFC 3339: %v", err))
	}
	if c.Dataset.WindowDays <= 0 {
		return errors.NewConfigurationError(errors.CodeInvalidSize,
			fmt.Sprintf("dataset.window_days must be positive, got %d", c.Dataset.WindowDays))
	}

	if c.Read.Runs <= 0 {
		return errors.NewConfigurationError(errors.CodeInvalidRuns,
			fmt.Sprintf("read.runs must be positive, got %d", c.Read.Runs))
	}
	if c.Read.FilterCategory == "" {
		return errors.NewConfigurationError(errors.CodeUnknownField, "read.filter_category is required")
	}

	return nil
}

// IsValidFormat reports whether name is a supported format.
func IsValidFormat(name string) bool {
	for _, f := range AllFormats {
		if f == name {
			return true
		}
	}
	return false
}

// Anchor returns the parsed order-date window anchor. Validate must have
// accepted the configuration first.
func (c *Config) Anchor() time.Time {
	t, err := time.Parse(time.RFC3339, c.Dataset.DateAnchor)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the FORMATBENCH_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("FORMATBENCH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FORMATBENCH_FORMATS"); v != "" {
		cfg.Formats = splitFormats(v)
	}

	// Dataset configuration
	if v := os.Getenv("FORMATBENCH_TARGET_SIZE_GB"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Dataset.TargetSizeGB = f
		}
	}
	if v := os.Getenv("FORMATBENCH_RECORDS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Dataset.Records = n
		}
	}
	if v := os.Getenv("FORMATBENCH_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.BatchSize = n
		}
	}
	if v := os.Getenv("FORMATBENCH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Dataset.Seed = &n
		}
	}
	if v := os.Getenv("FORMATBENCH_DATE_ANCHOR"); v != "" {
		cfg.Dataset.DateAnchor = v
	}

	// Read configuration
	if v := os.Getenv("FORMATBENCH_READ_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Read.Runs = n
		}
	}
	if v := os.Getenv("FORMATBENCH_FILTER_CATEGORY"); v != "" {
		cfg.Read.FilterCategory = v
	}

	// Results configuration
	if v := os.Getenv("FORMATBENCH_RESULTS_DIR"); v != "" {
		cfg.Results.Dir = v
	}
}

// EnsureDirectories creates all required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.DataDir,
		c.Results.Dir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func splitFormats(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
