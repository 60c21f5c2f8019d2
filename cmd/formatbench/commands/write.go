package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/formatbench/formatbench/internal/bench"
	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/formats"
	"github.com/formatbench/formatbench/internal/results"
)

// writeExecutor runs the write phase and returns its results.
type writeExecutor func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*results.WriteSet, error)

// WriteCommand holds configuration and dependencies for the write command.
type WriteCommand struct {
	flags benchFlags

	executeWrite writeExecutor
}

// NewWriteCommand creates the write command.
func NewWriteCommand() *cobra.Command {
	return newWriteCommandWithDeps(executeWrite)
}

// newWriteCommandWithDeps creates the write command with injected
// dependencies for testing.
func newWriteCommandWithDeps(exec writeExecutor) *cobra.Command {
	wc := &WriteCommand{executeWrite: exec}

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Generate the dataset and time each format's write path",
		Long: `Write streams one deterministic synthetic order dataset through every
configured format, timing the write path and measuring the file each format
produces, then persists the per-format results as JSON.`,
		Args: cobra.NoArgs,
		RunE: wc.run,
	}

	wc.flags.registerBase(cmd)
	wc.flags.registerFormats(cmd)
	wc.flags.registerDataset(cmd)

	return cmd
}

func (wc *WriteCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := wc.flags.config(cmd)
	if err != nil {
		return err
	}

	set, err := wc.executeWrite(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	path := cfg.WriteResultsPath()
	if err := results.SaveWriteSet(path, set); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Write results saved to %s\n", path)

	if failed := countWriteFailures(set); failed > 0 {
		return fmt.Errorf("write phase: %d of %d formats failed", failed, len(set.Results))
	}
	return nil
}

func executeWrite(ctx context.Context, cfg *config.Config, log *slog.Logger) (*results.WriteSet, error) {
	handlers, err := formats.ForNames(cfg.Formats)
	if err != nil {
		return nil, err
	}
	return bench.NewWriteRunner(cfg, handlers, log).Run(ctx)
}
