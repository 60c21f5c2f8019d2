package bench

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/formats"
	"github.com/formatbench/formatbench/internal/results"
	"github.com/formatbench/formatbench/pkg/types"
)

// ReadRunner executes the read phase: per format, N runs of full scan,
// filtered count and grouped sum over the previously written data file.
type ReadRunner struct {
	cfg      *config.Config
	handlers []formats.Handler
	log      *slog.Logger
}

// NewReadRunner wires a read runner from resolved configuration and the
// handlers to benchmark.
func NewReadRunner(cfg *config.Config, handlers []formats.Handler, logger *slog.Logger) *ReadRunner {
	return &ReadRunner{cfg: cfg, handlers: handlers, log: ensureLogger(logger)}
}

// Run times the three read operations over each format's data file. Every
// run opens a fresh reader; each operation is timed independently and its
// reported mean covers successful samples only. A missing data file fails
// that format alone.
func (r *ReadRunner) Run(ctx context.Context) (*results.ReadSet, error) {
	set := &results.ReadSet{
		GeneratedAt:    time.Now().UTC(),
		Runs:           r.cfg.Read.Runs,
		FilterCategory: r.cfg.Read.FilterCategory,
	}

	r.log.Info("read phase started",
		"formats", strings.Join(r.cfg.Formats, ","),
		"runs", r.cfg.Read.Runs,
		"filter_category", r.cfg.Read.FilterCategory)

	for _, h := range r.handlers {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		set.Results = append(set.Results, r.readFormat(ctx, h))
	}

	r.log.Info("read phase finished", "formats", len(set.Results))
	return set, nil
}

func (r *ReadRunner) readFormat(ctx context.Context, h formats.Handler) results.ReadResult {
	path := r.cfg.DataFilePath(h.Extension())
	res := results.ReadResult{Format: h.Name(), Path: path, Runs: r.cfg.Read.Runs}
	log := r.log.With("format", h.Name(), "phase", results.PhaseRead)

	fullScan := &results.OpStats{Operation: results.OpFullScan}
	filtered := &results.OpStats{Operation: results.OpFilteredCount}
	grouped := &results.OpStats{Operation: results.OpGroupedSum}
	var heap heapSampler

	for run := 1; run <= r.cfg.Read.Runs; run++ {
		if ctx.Err() != nil {
			break
		}

		reader, err := h.OpenReader(path)
		if err != nil {
			res.Failure = newFailure(h.Name(), results.PhaseRead, "", run, err)
			log.Error("open failed", "run", run, "error", err)
			break
		}

		r.timeOp(log, fullScan, h.Name(), run, func() error {
			n, err := countRecords(reader)
			if err != nil {
				return err
			}
			fullScan.Records = n
			return nil
		})

		r.timeOp(log, filtered, h.Name(), run, func() error {
			n, err := reader.CountMatching(types.FieldCategory, r.cfg.Read.FilterCategory)
			if err != nil {
				return err
			}
			filtered.Records = n
			return nil
		})

		r.timeOp(log, grouped, h.Name(), run, func() error {
			sums, err := reader.SumByGroup(types.FieldShippingCountry, types.FieldTotalAmount)
			if err != nil {
				return err
			}
			grouped.Groups = len(sums)
			return nil
		})

		heap.Sample()
		if err := reader.Close(); err != nil {
			log.Warn("reader close failed", "run", run, "error", err)
		}
	}

	// A format that never got past open keeps nil operation stats; the
	// phase-level failure is the whole story.
	if fullScan.OK() || len(fullScan.Failures) > 0 {
		res.FullScan = fullScan
		res.FilteredCount = filtered
		res.GroupedSum = grouped
	}
	res.PeakHeapBytes = heap.Peak()

	if res.Failure == nil {
		log.Info("format done",
			"full_scan_mean", fullScan.MeanSeconds,
			"filtered_count_mean", filtered.MeanSeconds,
			"grouped_sum_mean", grouped.MeanSeconds,
			"peak_heap_mib", res.PeakHeapBytes>>20)
	}
	return res
}

// timeOp times one operation run, recording a sample on success and a gap on
// failure. A failed operation blocks neither the remaining operations of the
// run nor later runs.
func (r *ReadRunner) timeOp(log *slog.Logger, stats *results.OpStats, format string, run int, op func() error) {
	start := time.Now()
	err := op()
	elapsed := time.Since(start)
	if err != nil {
		stats.Failures = append(stats.Failures,
			*newFailure(format, results.PhaseRead, stats.Operation, run, err))
		log.Error("operation failed", "operation", stats.Operation, "run", run, "error", err)
		return
	}
	stats.AddSample(elapsed.Seconds())
	log.Info("operation", "operation", stats.Operation, "run", run, "seconds", elapsed.Seconds())
}

// countRecords consumes a full scan, counting rows.
func countRecords(reader formats.RecordReader) (int64, error) {
	s, err := reader.Records()
	if err != nil {
		return 0, err
	}
	defer s.Close()

	var n int64
	for s.Next() {
		n++
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
