package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formatbench/formatbench/internal/report"
)

// ReportCommand holds configuration for the report command.
type ReportCommand struct {
	flags benchFlags

	writeResults string
	readResults  string
	output       string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	rc := &ReportCommand{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a comparison report from persisted results",
		Long: `Report loads the persisted write and read results and renders a comparison
table. Either phase may be missing; the report covers whatever is there.
Without --output the report is printed to stdout, with it the report is
written to a markdown file.`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	rc.flags.registerBase(cmd)
	cmd.Flags().StringVar(&rc.writeResults, "write-results", "", "write results file (default <results-dir>/write_results.json)")
	cmd.Flags().StringVar(&rc.readResults, "read-results", "", "read results file (default <results-dir>/read_results.json)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "write the report to a markdown file instead of stdout")

	return cmd
}

func (rc *ReportCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.flags.config(cmd)
	if err != nil {
		return err
	}

	writePath := rc.writeResults
	if writePath == "" {
		writePath = cfg.WriteResultsPath()
	}
	readPath := rc.readResults
	if readPath == "" {
		readPath = cfg.ReadResultsPath()
	}

	writeSet, err := loadWriteSetIfPresent(writePath)
	if err != nil {
		return err
	}
	readSet, err := loadReadSetIfPresent(readPath)
	if err != nil {
		return err
	}
	if writeSet == nil && readSet == nil {
		return fmt.Errorf("no results at %s or %s; run the write and read phases first", writePath, readPath)
	}

	return renderReport(cmd, report.New(writeSet, readSet), rc.output)
}
