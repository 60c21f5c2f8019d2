// Package integration provides end-to-end pipeline tests for formatbench.
package integration

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/formatbench/formatbench/internal/bench"
	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/datagen"
	"github.com/formatbench/formatbench/internal/formats"
	"github.com/formatbench/formatbench/internal/report"
	"github.com/formatbench/formatbench/internal/results"
	"github.com/formatbench/formatbench/pkg/types"
)

const (
	pipelineSeed    int64 = 42
	pipelineRecords int64 = 2_000
)

// pipelineConfig returns a small fully deterministic benchmark configuration
// rooted in a fresh temp directory.
func pipelineConfig(t *testing.T) *config.Config {
	t.Helper()

	seed := pipelineSeed
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Dataset.Records = pipelineRecords
	cfg.Dataset.BatchSize = 500
	cfg.Dataset.Seed = &seed
	cfg.Read.Runs = 2
	cfg.Resolve()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}
	return cfg
}

// expectedCounts recomputes the filtered count and country sums straight from
// the generator, bypassing every format.
func expectedCounts(t *testing.T, cfg *config.Config) (int64, map[string]float64) {
	t.Helper()

	gen, err := datagen.New(datagen.Options{
		Seed:       cfg.Dataset.Seed,
		BatchSize:  cfg.Dataset.BatchSize,
		Anchor:     cfg.Anchor(),
		WindowDays: cfg.Dataset.WindowDays,
	})
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	var matches int64
	sums := make(map[string]float64)
	stream := gen.Stream(cfg.Dataset.Records)
	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		for i := range batch {
			if batch[i].Category == cfg.Read.FilterCategory {
				matches++
			}
			sums[batch[i].ShippingCountry] += batch[i].TotalAmount
		}
	}
	return matches, sums
}

func TestPipeline_WriteReadReport(t *testing.T) {
	cfg := pipelineConfig(t)
	ctx := context.Background()

	handlers, err := formats.ForNames(cfg.Formats)
	if err != nil {
		t.Fatalf("failed to resolve handlers: %v", err)
	}

	writeSet, err := bench.NewWriteRunner(cfg, handlers, nil).Run(ctx)
	if err != nil {
		t.Fatalf("write phase failed: %v", err)
	}
	if len(writeSet.Results) != len(handlers) {
		t.Fatalf("expected %d write results, got %d", len(handlers), len(writeSet.Results))
	}
	for _, res := range writeSet.Results {
		if !res.OK() {
			t.Fatalf("format %s failed to write: %s", res.Format, res.Failure.Message)
		}
		if res.Records != pipelineRecords {
			t.Errorf("format %s wrote %d records, want %d", res.Format, res.Records, pipelineRecords)
		}
		if res.Batches != 4 {
			t.Errorf("format %s wrote %d batches, want 4", res.Format, res.Batches)
		}
		if res.Seconds <= 0 {
			t.Errorf("format %s reported non-positive write time %v", res.Format, res.Seconds)
		}
		info, err := os.Stat(res.Path)
		if err != nil {
			t.Fatalf("format %s left no data file: %v", res.Format, err)
		}
		if info.Size() != res.FileSizeBytes {
			t.Errorf("format %s reported size %d, file has %d", res.Format, res.FileSizeBytes, info.Size())
		}
	}

	readSet, err := bench.NewReadRunner(cfg, handlers, nil).Run(ctx)
	if err != nil {
		t.Fatalf("read phase failed: %v", err)
	}

	wantMatches, wantSums := expectedCounts(t, cfg)
	for _, res := range readSet.Results {
		if res.Failure != nil {
			t.Fatalf("format %s failed to read: %s", res.Format, res.Failure.Message)
		}
		if res.FullScan == nil || res.FilteredCount == nil || res.GroupedSum == nil {
			t.Fatalf("format %s is missing operation stats", res.Format)
		}
		if len(res.FullScan.RunSeconds) != cfg.Read.Runs {
			t.Errorf("format %s took %d full-scan samples, want %d",
				res.Format, len(res.FullScan.RunSeconds), cfg.Read.Runs)
		}
		if res.FullScan.Records != pipelineRecords {
			t.Errorf("format %s scanned %d records, want %d", res.Format, res.FullScan.Records, pipelineRecords)
		}
		if res.FilteredCount.Records != wantMatches {
			t.Errorf("format %s counted %d %s orders, generator produced %d",
				res.Format, res.FilteredCount.Records, cfg.Read.FilterCategory, wantMatches)
		}
		if res.GroupedSum.Groups != len(wantSums) {
			t.Errorf("format %s summed %d countries, generator produced %d",
				res.Format, res.GroupedSum.Groups, len(wantSums))
		}
	}

	// Persisted results survive a save/load round trip.
	if err := results.SaveWriteSet(cfg.WriteResultsPath(), writeSet); err != nil {
		t.Fatalf("failed to save write results: %v", err)
	}
	if err := results.SaveReadSet(cfg.ReadResultsPath(), readSet); err != nil {
		t.Fatalf("failed to save read results: %v", err)
	}
	loadedWrite, err := results.LoadWriteSet(cfg.WriteResultsPath())
	if err != nil {
		t.Fatalf("failed to load write results: %v", err)
	}
	loadedRead, err := results.LoadReadSet(cfg.ReadResultsPath())
	if err != nil {
		t.Fatalf("failed to load read results: %v", err)
	}

	rendered := report.New(loadedWrite, loadedRead).Render()
	for _, want := range []string{"FORMAT BENCHMARK REPORT", "Write Phase", "Read Phase", "parquet", "avro", "protobuf"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("report is missing %q:\n%s", want, rendered)
		}
	}
}

func TestPipeline_FormatsAgreeOnEveryAnswer(t *testing.T) {
	cfg := pipelineConfig(t)
	ctx := context.Background()

	handlers, err := formats.ForNames(cfg.Formats)
	if err != nil {
		t.Fatalf("failed to resolve handlers: %v", err)
	}
	if _, err := bench.NewWriteRunner(cfg, handlers, nil).Run(ctx); err != nil {
		t.Fatalf("write phase failed: %v", err)
	}

	// Every format read back record for record must yield the same orders in
	// the same order.
	var reference []types.Order
	for _, h := range handlers {
		reader, err := h.OpenReader(cfg.DataFilePath(h.Extension()))
		if err != nil {
			t.Fatalf("format %s failed to open: %v", h.Name(), err)
		}
		scanner, err := reader.Records()
		if err != nil {
			t.Fatalf("format %s failed to scan: %v", h.Name(), err)
		}
		var orders []types.Order
		for scanner.Next() {
			orders = append(orders, *scanner.Order())
		}
		if err := scanner.Err(); err != nil {
			t.Fatalf("format %s scan failed: %v", h.Name(), err)
		}
		scanner.Close()
		reader.Close()

		if reference == nil {
			reference = orders
			continue
		}
		if len(orders) != len(reference) {
			t.Fatalf("format %s read %d records, first format read %d", h.Name(), len(orders), len(reference))
		}
		for i := range orders {
			if orders[i] != reference[i] {
				t.Fatalf("format %s record %d differs:\n got %+v\nwant %+v", h.Name(), i, orders[i], reference[i])
			}
		}
	}
}

func TestPipeline_SameSeedSameDataset(t *testing.T) {
	first := pipelineConfig(t)
	second := pipelineConfig(t)
	ctx := context.Background()

	handlers, err := formats.ForNames(first.Formats)
	if err != nil {
		t.Fatalf("failed to resolve handlers: %v", err)
	}
	firstSet, err := bench.NewWriteRunner(first, handlers, nil).Run(ctx)
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	secondSet, err := bench.NewWriteRunner(second, handlers, nil).Run(ctx)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	// Equal seeds produce byte-for-byte equal protobuf files; the container
	// formats embed markers so only their sizes are compared.
	for i := range firstSet.Results {
		a, b := firstSet.Results[i], secondSet.Results[i]
		if !a.OK() || !b.OK() {
			t.Fatalf("format %s failed to write", a.Format)
		}
		if a.FileSizeBytes != b.FileSizeBytes {
			t.Errorf("format %s sizes differ across runs: %d vs %d", a.Format, a.FileSizeBytes, b.FileSizeBytes)
		}
	}

	pbA, err := os.ReadFile(first.DataFilePath(".pb"))
	if err != nil {
		t.Fatalf("failed to read first protobuf file: %v", err)
	}
	pbB, err := os.ReadFile(second.DataFilePath(".pb"))
	if err != nil {
		t.Fatalf("failed to read second protobuf file: %v", err)
	}
	if !bytes.Equal(pbA, pbB) {
		t.Error("protobuf files differ for the same seed")
	}
}
