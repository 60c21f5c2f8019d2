// Package formats adapts three on-disk codecs to one streaming contract so
// the benchmark orchestrators can drive them interchangeably: Parquet
// (columnar, incremental row groups, predicate pushdown), Avro OCF
// (row-oriented, schema carried in the file) and length-prefixed Protocol
// Buffers messages. The contract keeps peak memory proportional to one batch;
// the single documented exception is the Avro write path, which buffers the
// dataset until Close.
package formats

import (
	"fmt"
	"os"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/pkg/types"
)

// Handler adapts one codec to the benchmark's uniform streaming contract.
// Implementations are stateless; all file state lives in the handles they
// open.
type Handler interface {
	// Name returns the format's configuration name.
	Name() string

	// Extension returns the data file extension, dot included.
	Extension() string

	// OpenWriter opens path for writing. The returned handle is exclusively
	// owned by the caller and must be closed exactly once.
	OpenWriter(path string) (BatchWriter, error)

	// OpenReader opens an existing data file for reading.
	OpenReader(path string) (RecordReader, error)
}

// BatchWriter is the write side of the contract.
type BatchWriter interface {
	// WriteBatch appends one batch of records to the file.
	WriteBatch(batch []types.Order) error

	// Close flushes and finalizes the file. After Close returns the file is
	// a complete, independently readable artifact.
	Close() error
}

// RecordReader is the read side of the contract. At most one scan may be
// active on a reader at a time; each of the three operations performs its
// own pass over the file.
type RecordReader interface {
	// Records returns a scanner over every record in the file, in write order.
	Records() (Scanner, error)

	// CountMatching counts records whose field equals value. Codecs with
	// native support may push the predicate down; the count always equals
	// what a full scan with post-filtering would produce.
	CountMatching(field, value string) (int64, error)

	// SumByGroup computes, in one pass, the sum of sumField per distinct
	// value of groupField.
	SumByGroup(groupField, sumField string) (map[string]float64, error)

	// Close releases the underlying file.
	Close() error
}

// Scanner iterates decoded records one at a time.
type Scanner interface {
	// Next advances to the next record, returning false at end of file or on
	// error.
	Next() bool

	// Order returns the current record. Valid until the next call to Next.
	Order() *types.Order

	// Err returns the error that stopped the scan, if any.
	Err() error

	// Close releases scan resources. Safe to call after exhaustion.
	Close() error
}

// ForName returns the handler for a configuration format name.
func ForName(name string) (Handler, error) {
	switch name {
	case config.FormatParquet:
		return parquetHandler{}, nil
	case config.FormatAvro:
		return avroHandler{}, nil
	case config.FormatProtobuf:
		return protobufHandler{}, nil
	default:
		return nil, errors.NewConfigurationError(errors.CodeUnknownFormat,
			fmt.Sprintf("unknown format %q", name))
	}
}

// ForNames resolves a list of configuration format names, preserving order.
func ForNames(names []string) ([]Handler, error) {
	handlers := make([]Handler, 0, len(names))
	for _, name := range names {
		h, err := ForName(name)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}

// openExisting opens a data file for reading, mapping a missing file to the
// read-error kind the result model records.
func openExisting(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewReadError(errors.CodeFileNotFound,
				fmt.Sprintf("data file %s does not exist", path), err)
		}
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("open %s", path), err)
	}
	return f, nil
}

// scanCount counts records matching field == value by consuming a scanner.
// Shared by the handlers without native predicate pushdown.
func scanCount(s Scanner, field, value string) (int64, error) {
	defer s.Close()

	get, err := types.StringField(field)
	if err != nil {
		return 0, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("filter field %q", field), err)
	}

	var count int64
	for s.Next() {
		if get(s.Order()) == value {
			count++
		}
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// scanGroupSum computes a grouped sum by consuming a scanner.
func scanGroupSum(s Scanner, groupField, sumField string) (map[string]float64, error) {
	defer s.Close()

	group, err := types.StringField(groupField)
	if err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("group field %q", groupField), err)
	}
	sum, err := types.FloatField(sumField)
	if err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("sum field %q", sumField), err)
	}

	sums := make(map[string]float64)
	for s.Next() {
		o := s.Order()
		sums[group(o)] += sum(o)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return sums, nil
}
