// Package commands implements CLI command handlers for formatbench.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/report"
	"github.com/formatbench/formatbench/internal/results"
)

// benchFlags holds the configuration flags shared by the benchmark commands.
// A flag overrides the config file and environment only when it was set
// explicitly on the command line.
type benchFlags struct {
	configPath     string
	dataDir        string
	formats        []string
	targetSizeGB   float64
	records        int64
	batchSize      int
	seed           int64
	dateAnchor     string
	windowDays     int
	runs           int
	filterCategory string
	resultsDir     string
}

func (bf *benchFlags) registerBase(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&bf.configPath, "config", "c", "", "config file (YAML or JSON)")
	cmd.Flags().StringVar(&bf.dataDir, "data-dir", "", "directory for generated data files")
	cmd.Flags().StringVar(&bf.resultsDir, "results-dir", "", "directory for result JSON files")
}

func (bf *benchFlags) registerFormats(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&bf.formats, "formats", nil, "formats to benchmark (parquet, avro, protobuf)")
}

func (bf *benchFlags) registerDataset(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&bf.targetSizeGB, "size-gb", 0, "logical dataset size in GB (record count is derived)")
	cmd.Flags().Int64Var(&bf.records, "records", 0, "exact record count (overrides --size-gb)")
	cmd.Flags().IntVar(&bf.batchSize, "batch-size", 0, "records per generated batch")
	cmd.Flags().Int64Var(&bf.seed, "seed", 0, "generator seed (defaults to the clock)")
	cmd.Flags().StringVar(&bf.dateAnchor, "date-anchor", "", "RFC 3339 upper bound of the order-date window")
	cmd.Flags().IntVar(&bf.windowDays, "window-days", 0, "size of the order-date window in days")
}

func (bf *benchFlags) registerRead(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bf.runs, "runs", 0, "repetitions of each read operation")
	cmd.Flags().StringVar(&bf.filterCategory, "filter-category", "", "category value for the filtered read")
}

// config assembles the effective configuration: defaults, then the config
// file, then environment variables, then explicit flags.
func (bf *benchFlags) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if bf.configPath != "" {
		loaded, err := config.LoadFromFile(bf.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	f := cmd.Flags()
	if f.Changed("data-dir") {
		cfg.DataDir = bf.dataDir
	}
	if f.Changed("formats") {
		cfg.Formats = bf.formats
	}
	if f.Changed("size-gb") {
		cfg.Dataset.TargetSizeGB = bf.targetSizeGB
	}
	if f.Changed("records") {
		cfg.Dataset.Records = bf.records
	}
	if f.Changed("batch-size") {
		cfg.Dataset.BatchSize = bf.batchSize
	}
	if f.Changed("seed") {
		seed := bf.seed
		cfg.Dataset.Seed = &seed
	}
	if f.Changed("date-anchor") {
		cfg.Dataset.DateAnchor = bf.dateAnchor
	}
	if f.Changed("window-days") {
		cfg.Dataset.WindowDays = bf.windowDays
	}
	if f.Changed("runs") {
		cfg.Read.Runs = bf.runs
	}
	if f.Changed("filter-category") {
		cfg.Read.FilterCategory = bf.filterCategory
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger from the root --verbose and --quiet
// flags. Progress goes to stderr so report output on stdout stays clean.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, err := cmd.Root().PersistentFlags().GetBool("verbose"); err == nil && v {
		level = slog.LevelDebug
	}
	if q, err := cmd.Root().PersistentFlags().GetBool("quiet"); err == nil && q {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// countWriteFailures reports how many write results carry a failure.
func countWriteFailures(set *results.WriteSet) int {
	failed := 0
	for i := range set.Results {
		if !set.Results[i].OK() {
			failed++
		}
	}
	return failed
}

// countReadFailures reports how many read results failed, either at the
// phase level or by an operation failing every run.
func countReadFailures(set *results.ReadSet) int {
	failed := 0
	for i := range set.Results {
		res := &set.Results[i]
		if res.Failure != nil {
			failed++
			continue
		}
		for _, op := range res.Ops() {
			if !op.OK() {
				failed++
				break
			}
		}
	}
	return failed
}

// loadWriteSetIfPresent loads persisted write results, returning nil without
// error when the file does not exist.
func loadWriteSetIfPresent(path string) (*results.WriteSet, error) {
	set, err := results.LoadWriteSet(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return set, err
}

// loadReadSetIfPresent loads persisted read results, returning nil without
// error when the file does not exist.
func loadReadSetIfPresent(path string) (*results.ReadSet, error) {
	set, err := results.LoadReadSet(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return set, err
}

// renderReport renders the comparison report to stdout, or to a markdown
// file when output names one.
func renderReport(cmd *cobra.Command, rep *report.Reporter, output string) error {
	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), rep.Render())
		return nil
	}
	if err := os.WriteFile(output, []byte(rep.RenderMarkdown()), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
	return nil
}
