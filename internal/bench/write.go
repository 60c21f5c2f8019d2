package bench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/datagen"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/internal/formats"
	"github.com/formatbench/formatbench/internal/results"
)

// WriteRunner executes the write phase: every configured format writes the
// same logical dataset to its own file while timing and size are measured.
type WriteRunner struct {
	cfg      *config.Config
	handlers []formats.Handler
	log      *slog.Logger
}

// NewWriteRunner wires a write runner from resolved configuration and the
// handlers to benchmark.
func NewWriteRunner(cfg *config.Config, handlers []formats.Handler, logger *slog.Logger) *WriteRunner {
	return &WriteRunner{cfg: cfg, handlers: handlers, log: ensureLogger(logger)}
}

// Run writes one data file per handler. The generator restarts with the same
// seed for each format, so every format serializes an identical record
// sequence. A handler failure marks that format's result and the remaining
// formats still run; only generator misconfiguration or process-wide
// resource exhaustion aborts the phase.
func (r *WriteRunner) Run(ctx context.Context) (*results.WriteSet, error) {
	records := r.cfg.Dataset.Records
	if records <= 0 {
		records = datagen.EstimateRecords(r.cfg.Dataset.TargetSizeGB)
	}
	seed := time.Now().UnixNano()
	if r.cfg.Dataset.Seed != nil {
		seed = *r.cfg.Dataset.Seed
	}

	// Best effort; when the directory cannot exist every handler open
	// reports the real failure against its own format.
	if err := os.MkdirAll(r.cfg.DataDir, 0755); err != nil {
		r.log.Warn("data directory not created", "dir", r.cfg.DataDir, "error", err)
	}

	set := &results.WriteSet{
		GeneratedAt: time.Now().UTC(),
		Seed:        seed,
		Records:     records,
		BatchSize:   r.cfg.Dataset.BatchSize,
	}

	r.log.Info("write phase started",
		"formats", strings.Join(r.cfg.Formats, ","),
		"records", records,
		"batch_size", r.cfg.Dataset.BatchSize,
		"seed", seed)

	for _, h := range r.handlers {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		gen, err := datagen.New(datagen.Options{
			Seed:       &seed,
			BatchSize:  r.cfg.Dataset.BatchSize,
			Anchor:     r.cfg.Anchor(),
			WindowDays: r.cfg.Dataset.WindowDays,
		})
		if err != nil {
			return set, err
		}
		res, err := r.writeFormat(h, gen, records)
		set.Results = append(set.Results, res)
		if err != nil {
			return set, err
		}
	}

	r.log.Info("write phase finished", "formats", len(set.Results))
	return set, nil
}

// writeFormat drives one handler through open, write, close. The clock
// starts immediately before the first batch is handed to the handler and
// stops when Close returns: open cost is excluded, flush cost included. On
// failure the partial file is removed so it can never pass for a complete
// artifact. Failures are recorded in the result and isolated to the format;
// the returned error is non-nil only for process-wide exhaustion.
func (r *WriteRunner) writeFormat(h formats.Handler, gen *datagen.Generator, records int64) (results.WriteResult, error) {
	path := r.cfg.DataFilePath(h.Extension())
	res := results.WriteResult{Format: h.Name(), Path: path}
	log := r.log.With("format", h.Name(), "phase", results.PhaseWrite)

	fail := func(err error) (results.WriteResult, error) {
		os.Remove(path)
		res.Failure = newFailure(h.Name(), results.PhaseWrite, "", 0, err)
		log.Error("format failed", "error", err)
		if errors.IsFatal(err) {
			return res, err
		}
		return res, nil
	}

	// Stale artifacts from an earlier invocation would corrupt the size
	// measurement.
	os.Remove(path)

	log.Info("state", "state", "idle", "target_records", records)

	w, err := h.OpenWriter(path)
	if err != nil {
		return fail(err)
	}
	log.Info("state", "state", "opened")

	var (
		heap    heapSampler
		start   time.Time
		started bool
		written int64
	)
	stream := gen.Stream(records)
	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		if !started {
			start = time.Now()
			started = true
			log.Info("state", "state", "writing")
		}
		if err := w.WriteBatch(batch); err != nil {
			w.Close()
			return fail(err)
		}
		written += int64(len(batch))
		res.Batches++
		heap.Sample()
		if res.Batches%progressBatchInterval == 0 {
			log.Info("progress",
				"batches", res.Batches,
				"records", written,
				"pct", float64(written)*100/float64(records),
				"heap_mib", heap.Peak()>>20)
		}
	}
	if !started {
		// Zero-record dataset: the timed section covers only Close, which
		// still produces a valid empty file.
		start = time.Now()
	}

	if err := w.Close(); err != nil {
		return fail(err)
	}
	elapsed := time.Since(start)
	log.Info("state", "state", "closed")

	stat, err := os.Stat(path)
	if err != nil {
		return fail(errors.NewWriteError(errors.CodeCloseFailed,
			fmt.Sprintf("stat %s", path), err))
	}

	res.Records = written
	res.Seconds = elapsed.Seconds()
	res.FileSizeBytes = stat.Size()
	if res.Seconds > 0 {
		res.RecordsPerSec = float64(written) / res.Seconds
	}
	res.PeakHeapBytes = heap.Peak()

	log.Info("state", "state", "done",
		"records", written,
		"batches", res.Batches,
		"seconds", res.Seconds,
		"bytes", res.FileSizeBytes,
		"peak_heap_mib", res.PeakHeapBytes>>20)
	return res, nil
}
