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

// readExecutor runs the read phase and returns its results.
type readExecutor func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*results.ReadSet, error)

// ReadCommand holds configuration and dependencies for the read command.
type ReadCommand struct {
	flags benchFlags

	executeRead readExecutor
}

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	return newReadCommandWithDeps(executeRead)
}

// newReadCommandWithDeps creates the read command with injected dependencies
// for testing.
func newReadCommandWithDeps(exec readExecutor) *cobra.Command {
	rc := &ReadCommand{executeRead: exec}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Time full scans, filtered counts and grouped sums per format",
		Long: `Read times three operations against the data files the write phase left
behind: a full scan, a filtered count over the category column, and a
per-country sum of order totals. Each operation runs several times on a
fresh handle and the per-format results are persisted as JSON.`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	rc.flags.registerBase(cmd)
	rc.flags.registerFormats(cmd)
	rc.flags.registerRead(cmd)

	return cmd
}

func (rc *ReadCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.flags.config(cmd)
	if err != nil {
		return err
	}

	set, err := rc.executeRead(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	path := cfg.ReadResultsPath()
	if err := results.SaveReadSet(path, set); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Read results saved to %s\n", path)

	if failed := countReadFailures(set); failed > 0 {
		return fmt.Errorf("read phase: %d of %d formats failed", failed, len(set.Results))
	}
	return nil
}

func executeRead(ctx context.Context, cfg *config.Config, log *slog.Logger) (*results.ReadSet, error) {
	handlers, err := formats.ForNames(cfg.Formats)
	if err != nil {
		return nil, err
	}
	return bench.NewReadRunner(cfg, handlers, log).Run(ctx)
}
