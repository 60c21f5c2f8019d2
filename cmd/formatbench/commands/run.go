package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formatbench/formatbench/internal/report"
	"github.com/formatbench/formatbench/internal/results"
)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	flags  benchFlags
	output string

	executeWrite writeExecutor
	executeRead  readExecutor
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(executeWrite, executeRead)
}

// newRunCommandWithDeps creates the run command with injected dependencies
// for testing.
func newRunCommandWithDeps(write writeExecutor, read readExecutor) *cobra.Command {
	rc := &RunCommand{executeWrite: write, executeRead: read}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the write phase, the read phase and the report",
		Long: `Run executes the full benchmark: it writes the dataset in every configured
format, times the read operations against the files just written, persists
both result sets and renders the comparison report. A format failing one
phase does not stop the others; the report shows the gap.`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	rc.flags.registerBase(cmd)
	rc.flags.registerFormats(cmd)
	rc.flags.registerDataset(cmd)
	rc.flags.registerRead(cmd)
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "write the report to a markdown file instead of stdout")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.flags.config(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)
	ctx := cmd.Context()

	writeSet, err := rc.executeWrite(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := results.SaveWriteSet(cfg.WriteResultsPath(), writeSet); err != nil {
		return err
	}

	readSet, err := rc.executeRead(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := results.SaveReadSet(cfg.ReadResultsPath(), readSet); err != nil {
		return err
	}

	if err := renderReport(cmd, report.New(writeSet, readSet), rc.output); err != nil {
		return err
	}

	if failed := countWriteFailures(writeSet) + countReadFailures(readSet); failed > 0 {
		return fmt.Errorf("benchmark finished with %d failed format phases", failed)
	}
	return nil
}
