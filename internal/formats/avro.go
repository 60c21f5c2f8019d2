package formats

import (
	"fmt"
	"io"
	"os"

	"github.com/hamba/avro/v2/ocf"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/pkg/types"
)

// orderAvroSchema is the writer schema embedded in every container file.
// Readers resolve against it, so field names and order are frozen.
const orderAvroSchema = `{
	"type": "record",
	"name": "Order",
	"namespace": "formatbench",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "customer_id", "type": "long"},
		{"name": "product_id", "type": "long"},
		{"name": "product_name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "price", "type": "double"},
		{"name": "total_amount", "type": "double"},
		{"name": "order_date", "type": "long"},
		{"name": "shipping_country", "type": "string"},
		{"name": "payment_method", "type": "string"},
		{"name": "is_returned", "type": "boolean"}
	]
}`

// avroOrder mirrors types.Order field for field so records convert by plain
// struct conversion.
type avroOrder struct {
	OrderID         string  `avro:"order_id"`
	CustomerID      int64   `avro:"customer_id"`
	ProductID       int64   `avro:"product_id"`
	ProductName     string  `avro:"product_name"`
	Category        string  `avro:"category"`
	Quantity        int32   `avro:"quantity"`
	Price           float64 `avro:"price"`
	TotalAmount     float64 `avro:"total_amount"`
	OrderDate       int64   `avro:"order_date"`
	ShippingCountry string  `avro:"shipping_country"`
	PaymentMethod   string  `avro:"payment_method"`
	IsReturned      bool    `avro:"is_returned"`
}

// avroHandler writes snappy-compressed Avro object container files. The
// container carries its own schema, so readers need no side channel.
type avroHandler struct{}

func (avroHandler) Name() string      { return config.FormatAvro }
func (avroHandler) Extension() string { return ".avro" }

func (avroHandler) OpenWriter(path string) (BatchWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewWriteError(errors.CodeOpenFailed,
			fmt.Sprintf("create %s", path), err)
	}
	return &avroWriter{file: f}, nil
}

func (avroHandler) OpenReader(path string) (RecordReader, error) {
	f, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	return &avroReader{file: f}, nil
}

// avroWriter accumulates every batch and encodes the container in one pass at
// Close. This is the single write path whose memory grows with the dataset
// rather than the batch; WriteBatch takes ownership of each batch slice.
type avroWriter struct {
	file    *os.File
	batches [][]types.Order
}

func (w *avroWriter) WriteBatch(batch []types.Order) error {
	w.batches = append(w.batches, batch)
	return nil
}

func (w *avroWriter) Close() error {
	enc, err := ocf.NewEncoder(orderAvroSchema, w.file, ocf.WithCodec(ocf.Snappy))
	if err != nil {
		w.file.Close()
		return errors.NewWriteError(errors.CodeEncodeFailed, "open avro container encoder", err)
	}

	for _, batch := range w.batches {
		for i := range batch {
			rec := avroOrder(batch[i])
			if err := enc.Encode(&rec); err != nil {
				w.file.Close()
				return errors.NewWriteError(errors.CodeEncodeFailed,
					fmt.Sprintf("encode order %s", batch[i].OrderID), err)
			}
		}
	}
	w.batches = nil

	if err := enc.Close(); err != nil {
		w.file.Close()
		return errors.NewWriteError(errors.CodeCloseFailed, "finalize avro container", err)
	}
	if err := w.file.Close(); err != nil {
		return errors.NewWriteError(errors.CodeCloseFailed, "close avro file", err)
	}
	return nil
}

type avroReader struct {
	file *os.File
}

// scan rewinds the container and returns a fresh forward scan. The container
// is block-sequential, so every operation decodes from the header.
func (r *avroReader) scan() (*avroScanner, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed, "seek avro file", err)
	}
	dec, err := ocf.NewDecoder(r.file)
	if err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed, "open avro container decoder", err)
	}
	return &avroScanner{dec: dec}, nil
}

func (r *avroReader) Records() (Scanner, error) {
	return r.scan()
}

func (r *avroReader) CountMatching(field, value string) (int64, error) {
	s, err := r.scan()
	if err != nil {
		return 0, err
	}
	return scanCount(s, field, value)
}

func (r *avroReader) SumByGroup(groupField, sumField string) (map[string]float64, error) {
	s, err := r.scan()
	if err != nil {
		return nil, err
	}
	return scanGroupSum(s, groupField, sumField)
}

func (r *avroReader) Close() error {
	return r.file.Close()
}

type avroScanner struct {
	dec *ocf.Decoder
	rec avroOrder
	cur types.Order
	err error
}

func (s *avroScanner) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.dec.HasNext() {
		if err := s.dec.Error(); err != nil {
			s.err = errors.NewReadError(errors.CodeDecodeFailed, "read avro block", err)
		}
		return false
	}
	if err := s.dec.Decode(&s.rec); err != nil {
		s.err = errors.NewReadError(errors.CodeDecodeFailed, "decode avro record", err)
		return false
	}
	s.cur = types.Order(s.rec)
	return true
}

func (s *avroScanner) Order() *types.Order {
	return &s.cur
}

func (s *avroScanner) Err() error {
	return s.err
}

func (s *avroScanner) Close() error {
	return nil
}
