// Package bench drives the two benchmark phases. Execution is strictly
// sequential: one format, one batch, one run at a time, with the context
// checked only at phase boundaries so cancellation never distorts an
// in-flight measurement.
package bench

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/internal/results"
)

// progressBatchInterval is how many batches pass between progress events.
const progressBatchInterval = 10

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// heapSampler tracks peak heap occupancy through synchronous MemStats reads.
// Samples are taken between operations, never inside a timed section's inner
// loop.
type heapSampler struct {
	peak uint64
}

func (h *heapSampler) Sample() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc > h.peak {
		h.peak = ms.HeapAlloc
	}
	return ms.HeapAlloc
}

func (h *heapSampler) Peak() uint64 { return h.peak }

func newFailure(format, phase, operation string, run int, err error) *results.Failure {
	return &results.Failure{
		Format:    format,
		Phase:     phase,
		Operation: operation,
		Run:       run,
		Kind:      string(errors.GetKind(err)),
		Message:   err.Error(),
	}
}
