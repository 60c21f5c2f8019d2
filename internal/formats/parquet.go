package formats

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/pkg/types"
)

// parquetScanRows is the row buffer used when decoding full records. It keeps
// full scans O(buffer) regardless of row group size.
const parquetScanRows = 1024

// parquetOrder mirrors types.Order field for field so records convert by
// plain struct conversion. Low-cardinality string columns are dictionary
// encoded; order_date is annotated as a millisecond timestamp.
type parquetOrder struct {
	OrderID         string  `parquet:"order_id"`
	CustomerID      int64   `parquet:"customer_id"`
	ProductID       int64   `parquet:"product_id"`
	ProductName     string  `parquet:"product_name"`
	Category        string  `parquet:"category,dict"`
	Quantity        int32   `parquet:"quantity"`
	Price           float64 `parquet:"price"`
	TotalAmount     float64 `parquet:"total_amount"`
	OrderDate       int64   `parquet:"order_date,timestamp(millisecond)"`
	ShippingCountry string  `parquet:"shipping_country,dict"`
	PaymentMethod   string  `parquet:"payment_method,dict"`
	IsReturned      bool    `parquet:"is_returned"`
}

// parquetHandler writes snappy-compressed parquet with one row group per
// batch and a split-block bloom filter on the category column. Reads exploit
// the columnar layout: filtered counts touch one column, grouped sums touch
// two.
type parquetHandler struct{}

func (parquetHandler) Name() string      { return config.FormatParquet }
func (parquetHandler) Extension() string { return ".parquet" }

func (parquetHandler) OpenWriter(path string) (BatchWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewWriteError(errors.CodeOpenFailed,
			fmt.Sprintf("create %s", path), err)
	}
	w := parquet.NewGenericWriter[parquetOrder](f,
		parquet.Compression(&parquet.Snappy),
		parquet.BloomFilters(parquet.SplitBlockFilter(10, "category")),
	)
	return &parquetWriter{file: f, w: w}, nil
}

func (parquetHandler) OpenReader(path string) (RecordReader, error) {
	f, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("stat %s", path), err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("open parquet footer of %s", path), err)
	}
	return &parquetReader{file: f, pf: pf}, nil
}

type parquetWriter struct {
	file *os.File
	w    *parquet.GenericWriter[parquetOrder]
	rows []parquetOrder
}

func (p *parquetWriter) WriteBatch(batch []types.Order) error {
	rows := p.rows[:0]
	for i := range batch {
		rows = append(rows, parquetOrder(batch[i]))
	}
	p.rows = rows

	if _, err := p.w.Write(rows); err != nil {
		return errors.NewWriteError(errors.CodeEncodeFailed, "write parquet rows", err)
	}
	// Cut a row group per batch so group-level metadata (and the bloom
	// filter) stays aligned with write batches.
	if err := p.w.Flush(); err != nil {
		return errors.NewWriteError(errors.CodeEncodeFailed, "flush parquet row group", err)
	}
	return nil
}

func (p *parquetWriter) Close() error {
	if err := p.w.Close(); err != nil {
		p.file.Close()
		return errors.NewWriteError(errors.CodeCloseFailed, "finalize parquet footer", err)
	}
	if err := p.file.Close(); err != nil {
		return errors.NewWriteError(errors.CodeCloseFailed, "close parquet file", err)
	}
	return nil
}

type parquetReader struct {
	file *os.File
	pf   *parquet.File
}

func (r *parquetReader) Records() (Scanner, error) {
	return &parquetScanner{groups: r.pf.RowGroups()}, nil
}

// CountMatching reads only the filter column. Row groups whose bloom filter
// rules the value out are skipped without touching their pages; surviving
// groups are counted by exact value comparison.
func (r *parquetReader) CountMatching(field, value string) (int64, error) {
	if _, err := types.StringField(field); err != nil {
		return 0, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("filter field %q", field), err)
	}
	col, ok := r.pf.Schema().Lookup(field)
	if !ok {
		return 0, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("column %q not in parquet schema", field), types.ErrUnknownField)
	}

	want := []byte(value)
	var count int64
	for _, rg := range r.pf.RowGroups() {
		chunk := rg.ColumnChunks()[col.ColumnIndex]

		if bloom := chunk.BloomFilter(); bloom != nil {
			ok, err := bloom.Check(parquet.ValueOf(value))
			if err != nil {
				return 0, errors.NewReadError(errors.CodeDecodeFailed,
					"check bloom filter", err)
			}
			if !ok {
				continue
			}
		}

		n, err := countColumnMatches(chunk, want)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}

// SumByGroup reads only the two involved columns. Both are materialized one
// row group at a time, so memory stays proportional to a row group.
func (r *parquetReader) SumByGroup(groupField, sumField string) (map[string]float64, error) {
	if _, err := types.StringField(groupField); err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("group field %q", groupField), err)
	}
	if _, err := types.FloatField(sumField); err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("sum field %q", sumField), err)
	}
	groupCol, ok := r.pf.Schema().Lookup(groupField)
	if !ok {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("column %q not in parquet schema", groupField), types.ErrUnknownField)
	}
	sumCol, ok := r.pf.Schema().Lookup(sumField)
	if !ok {
		return nil, errors.NewReadError(errors.CodeDecodeFailed,
			fmt.Sprintf("column %q not in parquet schema", sumField), types.ErrUnknownField)
	}

	sums := make(map[string]float64)
	var keys []string
	var amounts []float64
	for _, rg := range r.pf.RowGroups() {
		var err error
		keys, err = readStringColumn(rg.ColumnChunks()[groupCol.ColumnIndex], keys[:0])
		if err != nil {
			return nil, err
		}
		amounts, err = readFloatColumn(rg.ColumnChunks()[sumCol.ColumnIndex], amounts[:0])
		if err != nil {
			return nil, err
		}
		if len(keys) != len(amounts) {
			return nil, errors.NewReadError(errors.CodeDecodeFailed,
				fmt.Sprintf("column length mismatch: %d keys, %d amounts", len(keys), len(amounts)), nil)
		}
		for i, k := range keys {
			sums[k] += amounts[i]
		}
	}
	return sums, nil
}

func (r *parquetReader) Close() error {
	return r.file.Close()
}

// countColumnMatches scans one column chunk page by page, counting values
// equal to want.
func countColumnMatches(chunk parquet.ColumnChunk, want []byte) (int64, error) {
	var count int64
	err := scanColumnValues(chunk, func(v parquet.Value) error {
		if bytes.Equal(v.ByteArray(), want) {
			count++
		}
		return nil
	})
	return count, err
}

func readStringColumn(chunk parquet.ColumnChunk, out []string) ([]string, error) {
	err := scanColumnValues(chunk, func(v parquet.Value) error {
		out = append(out, string(v.ByteArray()))
		return nil
	})
	return out, err
}

func readFloatColumn(chunk parquet.ColumnChunk, out []float64) ([]float64, error) {
	err := scanColumnValues(chunk, func(v parquet.Value) error {
		switch v.Kind() {
		case parquet.Double:
			out = append(out, v.Double())
		case parquet.Float:
			out = append(out, float64(v.Float()))
		case parquet.Int64:
			out = append(out, float64(v.Int64()))
		case parquet.Int32:
			out = append(out, float64(v.Int32()))
		default:
			return errors.NewReadError(errors.CodeDecodeFailed,
				fmt.Sprintf("column kind %s is not numeric", v.Kind()), nil)
		}
		return nil
	})
	return out, err
}

// scanColumnValues decodes every value of a column chunk through fn, reading
// pages with a fixed-size value buffer.
func scanColumnValues(chunk parquet.ColumnChunk, fn func(parquet.Value) error) error {
	pages := chunk.Pages()
	defer pages.Close()

	values := make([]parquet.Value, parquetScanRows)
	for {
		page, err := pages.ReadPage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewReadError(errors.CodeDecodeFailed, "read parquet page", err)
		}

		vr := page.Values()
		for {
			n, err := vr.ReadValues(values)
			for _, v := range values[:n] {
				if err := fn(v); err != nil {
					return err
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.NewReadError(errors.CodeDecodeFailed, "read parquet values", err)
			}
		}
	}
}

type parquetScanner struct {
	groups []parquet.RowGroup
	reader *parquet.GenericReader[parquetOrder]
	buf    []parquetOrder
	n, i   int
	cur    types.Order
	err    error
}

func (s *parquetScanner) Next() bool {
	if s.err != nil {
		return false
	}
	for s.i >= s.n {
		if s.reader == nil {
			if len(s.groups) == 0 {
				return false
			}
			s.reader = parquet.NewGenericRowGroupReader[parquetOrder](s.groups[0])
			s.groups = s.groups[1:]
			if s.buf == nil {
				s.buf = make([]parquetOrder, parquetScanRows)
			}
		}

		n, err := s.reader.Read(s.buf)
		s.n, s.i = n, 0
		if err == io.EOF {
			if cerr := s.reader.Close(); cerr != nil {
				s.err = errors.NewReadError(errors.CodeDecodeFailed, "close row group reader", cerr)
				return false
			}
			s.reader = nil
			continue
		}
		if err != nil {
			s.err = errors.NewReadError(errors.CodeDecodeFailed, "read parquet rows", err)
			return false
		}
	}

	s.cur = types.Order(s.buf[s.i])
	s.i++
	return true
}

func (s *parquetScanner) Order() *types.Order {
	return &s.cur
}

func (s *parquetScanner) Err() error {
	return s.err
}

func (s *parquetScanner) Close() error {
	if s.reader != nil {
		err := s.reader.Close()
		s.reader = nil
		if err != nil {
			return errors.NewReadError(errors.CodeDecodeFailed, "close row group reader", err)
		}
	}
	return nil
}
