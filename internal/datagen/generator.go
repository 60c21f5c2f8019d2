// Package datagen produces the deterministic synthetic order dataset the
// benchmark serializes. Given the same seed and record target it always
// yields the same batch sequence, which is what makes benchmark runs and
// generated test fixtures repeatable.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/pkg/types"
)

// avgRecordSizeBytes is the planning factor for translating a logical byte
// target into a record count. Actual file sizes vary per format.
const avgRecordSizeBytes = 200

// Options configures a Generator. Values are threaded explicitly from the
// benchmark configuration; the generator holds no ambient state.
type Options struct {
	// Seed seeds the random source; nil seeds from the clock
	Seed *int64

	// BatchSize is the number of records per batch
	BatchSize int

	// Anchor is the upper bound of the order-date window
	Anchor time.Time

	// WindowDays is the size of the historical order-date window
	WindowDays int
}

// Generator produces order records from a seeded random source. It performs
// no I/O; its only side effect is advancing the source's internal state.
type Generator struct {
	rng        *rand.Rand
	batchSize  int
	anchor     time.Time
	windowDays int
}

// New creates a Generator, failing fast on invalid options before any batch
// is produced.
func New(opts Options) (*Generator, error) {
	if opts.BatchSize <= 0 {
		return nil, errors.NewGenerationError(errors.CodeInvalidBatchSize,
			fmt.Sprintf("batch size must be positive, got %d", opts.BatchSize))
	}
	if opts.Anchor.IsZero() || opts.WindowDays <= 0 {
		return nil, errors.NewGenerationError(errors.CodeInvalidWindow,
			fmt.Sprintf("order-date window invalid: anchor=%v days=%d", opts.Anchor, opts.WindowDays))
	}
	if len(Categories) == 0 || len(ShippingCountries) == 0 || len(PaymentMethods) == 0 {
		return nil, errors.NewGenerationError(errors.CodeEmptyVocabulary, "vocabulary must not be empty")
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		batchSize:  opts.BatchSize,
		anchor:     opts.Anchor,
		windowDays: opts.WindowDays,
	}, nil
}

// Order generates a single order record.
func (g *Generator) Order() types.Order {
	id := uuid.Must(uuid.NewRandomFromReader(g.rng))

	customerID := g.rng.Int63n(1_000_000) + 1
	productID := g.rng.Int63n(100_000) + 1
	name := productAdjectives[g.rng.Intn(len(productAdjectives))] + " " +
		productMaterials[g.rng.Intn(len(productMaterials))] + " " +
		productNouns[g.rng.Intn(len(productNouns))]
	category := Categories[g.rng.Intn(len(Categories))]

	quantity := int32(g.rng.Intn(10) + 1)
	price := roundCents(g.rng.Float64()*495.0 + 5.0)
	total := roundCents(float64(quantity) * price)

	daysAgo := g.rng.Intn(g.windowDays + 1)
	orderDate := g.anchor.Add(-time.Duration(daysAgo) * 24 * time.Hour).UnixMilli()

	return types.Order{
		OrderID:         id.String(),
		CustomerID:      customerID,
		ProductID:       productID,
		ProductName:     name,
		Category:        category,
		Quantity:        quantity,
		Price:           price,
		TotalAmount:     total,
		OrderDate:       orderDate,
		ShippingCountry: ShippingCountries[g.rng.Intn(len(ShippingCountries))],
		PaymentMethod:   PaymentMethods[g.rng.Intn(len(PaymentMethods))],
		IsReturned:      g.rng.Float64() < 0.05,
	}
}

// Batch generates a batch of n order records. Each call allocates a fresh
// slice so a handler may retain the batch without aliasing later ones.
func (g *Generator) Batch(n int) []types.Order {
	batch := make([]types.Order, n)
	for i := range batch {
		batch[i] = g.Order()
	}
	return batch
}

// Stream returns a pull-based batch stream over total records. Batches are
// sized min(batchSize, remaining); memory never exceeds one batch.
func (g *Generator) Stream(total int64) *Stream {
	return &Stream{gen: g, remaining: total}
}

// Stream yields order batches until the record target is exhausted.
type Stream struct {
	gen       *Generator
	remaining int64
}

// Next returns the next batch, or false when the stream is exhausted.
func (s *Stream) Next() ([]types.Order, bool) {
	if s.remaining <= 0 {
		return nil, false
	}
	n := s.gen.batchSize
	if int64(n) > s.remaining {
		n = int(s.remaining)
	}
	s.remaining -= int64(n)
	return s.gen.Batch(n), true
}

// Remaining reports how many records the stream has yet to yield.
func (s *Stream) Remaining() int64 {
	return s.remaining
}

// EstimateRecords estimates the record count needed to reach a logical size
// target, using the fixed average-record-size planning factor.
func EstimateRecords(targetSizeGB float64) int64 {
	targetBytes := targetSizeGB * 1024 * 1024 * 1024
	return int64(targetBytes / avgRecordSizeBytes)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
