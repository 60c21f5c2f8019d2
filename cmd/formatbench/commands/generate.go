package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/datagen"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/internal/formats"
)

// GenerateCommand holds configuration for the generate command.
type GenerateCommand struct {
	records    int64
	batchSize  int
	seed       int64
	format     string
	output     string
	dateAnchor string
	windowDays int
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	gc := &GenerateCommand{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a standalone data file in one format",
		Long: `Generate writes a deterministic synthetic order dataset to a single file
without timing anything. The same seed always produces the same records, so
the output is suitable as a test fixture or for inspecting exactly what the
benchmark writes.`,
		Args: cobra.NoArgs,
		RunE: gc.run,
	}

	defaults := config.DefaultConfig()
	cmd.Flags().Int64Var(&gc.records, "records", 10_000, "number of records to generate")
	cmd.Flags().IntVar(&gc.batchSize, "batch-size", 10_000, "records per generated batch")
	cmd.Flags().Int64Var(&gc.seed, "seed", 42, "generator seed")
	cmd.Flags().StringVar(&gc.format, "format", config.FormatParquet, "output format (parquet, avro or protobuf)")
	cmd.Flags().StringVarP(&gc.output, "output", "o", "", "output path (default orders.<ext> in the working directory)")
	cmd.Flags().StringVar(&gc.dateAnchor, "date-anchor", defaults.Dataset.DateAnchor, "RFC 3339 upper bound of the order-date window")
	cmd.Flags().IntVar(&gc.windowDays, "window-days", defaults.Dataset.WindowDays, "size of the order-date window in days")

	return cmd
}

func (gc *GenerateCommand) run(cmd *cobra.Command, _ []string) error {
	handler, err := formats.ForName(gc.format)
	if err != nil {
		return err
	}
	if gc.records < 0 {
		return errors.NewConfigurationError(errors.CodeInvalidSize,
			fmt.Sprintf("records must not be negative, got %d", gc.records))
	}
	anchor, err := time.Parse(time.RFC3339, gc.dateAnchor)
	if err != nil {
		return errors.NewConfigurationError(errors.CodeInvalidPath,
			fmt.Sprintf("date anchor is not RFC 3339: %v", err))
	}

	gen, err := datagen.New(datagen.Options{
		Seed:       &gc.seed,
		BatchSize:  gc.batchSize,
		Anchor:     anchor,
		WindowDays: gc.windowDays,
	})
	if err != nil {
		return err
	}

	output := gc.output
	if output == "" {
		output = "orders" + handler.Extension()
	}

	w, err := handler.OpenWriter(output)
	if err != nil {
		return err
	}
	stream := gen.Stream(gc.records)
	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		if err := w.WriteBatch(batch); err != nil {
			w.Close()
			os.Remove(output)
			return err
		}
	}
	if err := w.Close(); err != nil {
		os.Remove(output)
		return err
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s %s records to %s (%s)\n",
		humanize.Comma(gc.records), handler.Name(), output, humanize.IBytes(uint64(info.Size())))
	return nil
}
