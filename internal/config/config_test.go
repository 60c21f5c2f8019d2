package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formatbench/formatbench/internal/errors"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"parquet", "avro", "protobuf"}, cfg.Formats)
	assert.Equal(t, 100_000, cfg.Dataset.BatchSize)
	assert.Equal(t, 3, cfg.Read.Runs)
	assert.Nil(t, cfg.Dataset.Seed)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"empty formats", func(c *Config) { c.Formats = nil }, errors.CodeUnknownFormat},
		{"unknown format", func(c *Config) { c.Formats = []string{"parquet", "orc"} }, errors.CodeUnknownFormat},
		{"negative records", func(c *Config) { c.Dataset.Records = -1 }, errors.CodeInvalidSize},
		{"zero size", func(c *Config) { c.Dataset.TargetSizeGB = 0 }, errors.CodeInvalidSize},
		{"zero batch", func(c *Config) { c.Dataset.BatchSize = 0 }, errors.CodeInvalidBatchSize},
		{"bad anchor", func(c *Config) { c.Dataset.DateAnchor = "yesterday" }, errors.CodeInvalidPath},
		{"zero window", func(c *Config) { c.Dataset.WindowDays = 0 }, errors.CodeInvalidSize},
		{"zero runs", func(c *Config) { c.Read.Runs = 0 }, errors.CodeInvalidRuns},
		{"empty filter", func(c *Config) { c.Read.FilterCategory = "" }, errors.CodeUnknownField},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, errors.CodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.KindConfiguration, errors.GetKind(err))
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestValidate_RecordsOverrideSkipsSizeCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dataset.TargetSizeGB = 0
	cfg.Dataset.Records = 1000
	assert.NoError(t, cfg.Validate())
}

func TestResolve_DefaultsResultsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/bench"
	cfg.Resolve()

	assert.Equal(t, filepath.Join("/tmp/bench", "results"), cfg.Results.Dir)
	assert.Equal(t, filepath.Join("/tmp/bench", "orders.parquet"), cfg.DataFilePath(".parquet"))
	assert.Equal(t, filepath.Join("/tmp/bench", "results", "write_results.json"), cfg.WriteResultsPath())
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	body := `
data_dir: /var/data/bench
formats: [parquet, protobuf]
dataset:
  records: 5000
  batch_size: 500
  seed: 42
read:
  runs: 5
  filter_category: Books
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/data/bench", cfg.DataDir)
	assert.Equal(t, []string{"parquet", "protobuf"}, cfg.Formats)
	assert.Equal(t, int64(5000), cfg.Dataset.Records)
	assert.Equal(t, 500, cfg.Dataset.BatchSize)
	require.NotNil(t, cfg.Dataset.Seed)
	assert.Equal(t, int64(42), *cfg.Dataset.Seed)
	assert.Equal(t, 5, cfg.Read.Runs)
	assert.Equal(t, "Books", cfg.Read.FilterCategory)
	// Untouched fields keep defaults.
	assert.Equal(t, 730, cfg.Dataset.WindowDays)
}

func TestLoadFromFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.json")
	body := `{"data_dir": "/var/data/bench", "read": {"runs": 7, "filter_category": "Toys"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Read.Runs)
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FORMATBENCH_DATA_DIR", "/env/data")
	t.Setenv("FORMATBENCH_FORMATS", "avro, protobuf")
	t.Setenv("FORMATBENCH_RECORDS", "2500")
	t.Setenv("FORMATBENCH_SEED", "7")
	t.Setenv("FORMATBENCH_READ_RUNS", "9")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	assert.Equal(t, "/env/data", cfg.DataDir)
	assert.Equal(t, []string{"avro", "protobuf"}, cfg.Formats)
	assert.Equal(t, int64(2500), cfg.Dataset.Records)
	require.NotNil(t, cfg.Dataset.Seed)
	assert.Equal(t, int64(7), *cfg.Dataset.Seed)
	assert.Equal(t, 9, cfg.Read.Runs)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "bench")
	cfg.Resolve()

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.DataDir)
	assert.DirExists(t, cfg.Results.Dir)
}
