// Package benchmark provides performance benchmarks for formatbench.
package benchmark

import (
	"testing"
	"time"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/datagen"
	"github.com/formatbench/formatbench/internal/formats"
)

const (
	benchRecords   int64 = 10_000
	benchBatchSize int   = 2_000
	benchSeed      int64 = 42
)

var benchAnchor = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func benchHandlers(b *testing.B) []formats.Handler {
	b.Helper()

	handlers, err := formats.ForNames(config.AllFormats)
	if err != nil {
		b.Fatalf("failed to resolve handlers: %v", err)
	}
	return handlers
}

func benchGenerator(b *testing.B) *datagen.Generator {
	b.Helper()

	seed := benchSeed
	gen, err := datagen.New(datagen.Options{
		Seed:       &seed,
		BatchSize:  benchBatchSize,
		Anchor:     benchAnchor,
		WindowDays: 730,
	})
	if err != nil {
		b.Fatalf("failed to create generator: %v", err)
	}
	return gen
}

// writeFile streams benchRecords freshly generated orders into path.
func writeFile(b *testing.B, h formats.Handler, path string) {
	b.Helper()

	w, err := h.OpenWriter(path)
	if err != nil {
		b.Fatalf("%s: failed to open writer: %v", h.Name(), err)
	}
	stream := benchGenerator(b).Stream(benchRecords)
	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		if err := w.WriteBatch(batch); err != nil {
			b.Fatalf("%s: failed to write batch: %v", h.Name(), err)
		}
	}
	if err := w.Close(); err != nil {
		b.Fatalf("%s: failed to close writer: %v", h.Name(), err)
	}
}
