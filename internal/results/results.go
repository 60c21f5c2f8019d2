// Package results defines the persisted benchmark result model. Both phases
// append to it and the report layer consumes it; failures are recorded as
// gaps with their error kind, never as fabricated zero timings.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SchemaVersion is stamped into every persisted result set. Loaders reject
// files written by a different version.
const SchemaVersion = 1

// Phase names recorded in failures.
const (
	PhaseWrite = "write"
	PhaseRead  = "read"
)

// Operation names recorded in read results.
const (
	OpFullScan      = "full_scan"
	OpFilteredCount = "filtered_count"
	OpGroupedSum    = "grouped_sum"
)

// Failure pinpoints a failed phase, operation or run.
type Failure struct {
	Format    string `json:"format"`
	Phase     string `json:"phase"`
	Operation string `json:"operation,omitempty"`
	Run       int    `json:"run,omitempty"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// WriteResult is one format's write-phase outcome.
type WriteResult struct {
	Format        string   `json:"format"`
	Path          string   `json:"path"`
	Records       int64    `json:"records"`
	Batches       int      `json:"batches"`
	Seconds       float64  `json:"seconds"`
	FileSizeBytes int64    `json:"file_size_bytes"`
	RecordsPerSec float64  `json:"records_per_sec"`
	PeakHeapBytes uint64   `json:"peak_heap_bytes"`
	Failure       *Failure `json:"failure,omitempty"`
}

// OK reports whether the write phase completed for this format.
func (r WriteResult) OK() bool { return r.Failure == nil }

// OpStats aggregates one read operation's timed runs. RunSeconds holds the
// successful samples in run order; MeanSeconds is their arithmetic mean.
type OpStats struct {
	Operation   string    `json:"operation"`
	RunSeconds  []float64 `json:"run_seconds"`
	MeanSeconds float64   `json:"mean_seconds"`
	Records     int64     `json:"records,omitempty"`
	Groups      int       `json:"groups,omitempty"`
	Failures    []Failure `json:"failures,omitempty"`
}

// OK reports whether at least one run of the operation succeeded.
func (s *OpStats) OK() bool { return s != nil && len(s.RunSeconds) > 0 }

// AddSample records one successful run and keeps the mean current.
func (s *OpStats) AddSample(seconds float64) {
	s.RunSeconds = append(s.RunSeconds, seconds)
	s.MeanSeconds = Mean(s.RunSeconds)
}

// ReadResult is one format's read-phase outcome. A phase-level Failure (for
// example a missing data file) leaves all operation stats nil.
type ReadResult struct {
	Format        string   `json:"format"`
	Path          string   `json:"path"`
	Runs          int      `json:"runs"`
	FullScan      *OpStats `json:"full_scan,omitempty"`
	FilteredCount *OpStats `json:"filtered_count,omitempty"`
	GroupedSum    *OpStats `json:"grouped_sum,omitempty"`
	PeakHeapBytes uint64   `json:"peak_heap_bytes"`
	Failure       *Failure `json:"failure,omitempty"`
}

// Ops returns the three operation stats in report order, skipping nil slots.
func (r ReadResult) Ops() []*OpStats {
	ops := make([]*OpStats, 0, 3)
	for _, s := range []*OpStats{r.FullScan, r.FilteredCount, r.GroupedSum} {
		if s != nil {
			ops = append(ops, s)
		}
	}
	return ops
}

// WriteSet is the persisted artifact of one write phase.
type WriteSet struct {
	SchemaVersion int           `json:"schema_version"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Seed          int64         `json:"seed"`
	Records       int64         `json:"records"`
	BatchSize     int           `json:"batch_size"`
	Results       []WriteResult `json:"results"`
}

// ReadSet is the persisted artifact of one read phase.
type ReadSet struct {
	SchemaVersion  int          `json:"schema_version"`
	GeneratedAt    time.Time    `json:"generated_at"`
	Runs           int          `json:"runs"`
	FilterCategory string       `json:"filter_category"`
	Results        []ReadResult `json:"results"`
}

// Mean returns the arithmetic mean of samples, zero for an empty slice.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// SaveWriteSet persists a write result set as indented JSON, creating the
// parent directory if needed.
func SaveWriteSet(path string, set *WriteSet) error {
	set.SchemaVersion = SchemaVersion
	return save(path, set)
}

// SaveReadSet persists a read result set as indented JSON.
func SaveReadSet(path string, set *ReadSet) error {
	set.SchemaVersion = SchemaVersion
	return save(path, set)
}

// LoadWriteSet loads and version-checks a persisted write result set.
func LoadWriteSet(path string) (*WriteSet, error) {
	var set WriteSet
	if err := load(path, &set); err != nil {
		return nil, err
	}
	if set.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("results: %s has schema version %d, want %d",
			path, set.SchemaVersion, SchemaVersion)
	}
	return &set, nil
}

// LoadReadSet loads and version-checks a persisted read result set.
func LoadReadSet(path string) (*ReadSet, error) {
	var set ReadSet
	if err := load(path, &set); err != nil {
		return nil, err
	}
	if set.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("results: %s has schema version %d, want %d",
			path, set.SchemaVersion, SchemaVersion)
	}
	return &set, nil
}

func save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("results: failed to create results directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("results: failed to marshal result set: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("results: failed to write %s: %w", path, err)
	}
	return nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("results: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("results: failed to parse %s: %w", path, err)
	}
	return nil
}
