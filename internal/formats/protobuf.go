package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/proto"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/internal/formats/orderpb"
	"github.com/formatbench/formatbench/pkg/types"
)

// Each record is framed as [length:4, big endian][marshaled message]. The cap
// bounds the allocation a damaged length prefix can trigger.
const maxFrameSize = 16 << 20

const protobufBufferSize = 256 << 10

// protobufHandler streams length-prefixed protobuf messages. The codec has no
// file-level metadata and no native predicates, so both read shortcuts fall
// back to a full decode pass.
type protobufHandler struct{}

func (protobufHandler) Name() string      { return config.FormatProtobuf }
func (protobufHandler) Extension() string { return ".pb" }

func (protobufHandler) OpenWriter(path string) (BatchWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewWriteError(errors.CodeOpenFailed,
			fmt.Sprintf("create %s", path), err)
	}
	return &protobufWriter{
		file: f,
		buf:  bufio.NewWriterSize(f, protobufBufferSize),
	}, nil
}

func (protobufHandler) OpenReader(path string) (RecordReader, error) {
	f, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	return &protobufReader{file: f}, nil
}

type protobufWriter struct {
	file    *os.File
	buf     *bufio.Writer
	msg     orderpb.Order
	scratch []byte
}

func (w *protobufWriter) WriteBatch(batch []types.Order) error {
	for i := range batch {
		orderToProto(&batch[i], &w.msg)
		payload, err := proto.MarshalOptions{}.MarshalAppend(w.scratch[:0], &w.msg)
		if err != nil {
			return errors.NewWriteError(errors.CodeEncodeFailed,
				fmt.Sprintf("marshal order %s", batch[i].OrderID), err)
		}
		w.scratch = payload

		if err := binary.Write(w.buf, binary.BigEndian, uint32(len(payload))); err != nil {
			return errors.NewWriteError(errors.CodeEncodeFailed, "write frame length", err)
		}
		if _, err := w.buf.Write(payload); err != nil {
			return errors.NewWriteError(errors.CodeEncodeFailed, "write frame payload", err)
		}
	}
	return nil
}

func (w *protobufWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return errors.NewWriteError(errors.CodeCloseFailed, "flush protobuf stream", err)
	}
	if err := w.file.Close(); err != nil {
		return errors.NewWriteError(errors.CodeCloseFailed, "close protobuf file", err)
	}
	return nil
}

type protobufReader struct {
	file *os.File
}

// scan rewinds to the start of the file and returns a fresh forward scan.
// The codec is stream-oriented, so every operation decodes from offset zero.
func (r *protobufReader) scan() (*protobufScanner, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.NewReadError(errors.CodeDecodeFailed, "seek protobuf file", err)
	}
	return &protobufScanner{r: bufio.NewReaderSize(r.file, protobufBufferSize)}, nil
}

func (r *protobufReader) Records() (Scanner, error) {
	return r.scan()
}

func (r *protobufReader) CountMatching(field, value string) (int64, error) {
	s, err := r.scan()
	if err != nil {
		return 0, err
	}
	return scanCount(s, field, value)
}

func (r *protobufReader) SumByGroup(groupField, sumField string) (map[string]float64, error) {
	s, err := r.scan()
	if err != nil {
		return nil, err
	}
	return scanGroupSum(s, groupField, sumField)
}

func (r *protobufReader) Close() error {
	return r.file.Close()
}

type protobufScanner struct {
	r    *bufio.Reader
	msg  orderpb.Order
	cur  types.Order
	buf  []byte
	err  error
	done bool
}

func (s *protobufScanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	var length uint32
	if err := binary.Read(s.r, binary.BigEndian, &length); err != nil {
		if err == io.EOF {
			// Clean end of stream on a frame boundary.
			s.done = true
		} else {
			s.err = errors.NewReadError(errors.CodeCorruptFrame,
				"truncated frame length", err)
		}
		return false
	}
	if length > maxFrameSize {
		s.err = errors.NewReadError(errors.CodeCorruptFrame,
			fmt.Sprintf("frame length %d exceeds cap %d", length, maxFrameSize), nil)
		return false
	}

	if cap(s.buf) < int(length) {
		s.buf = make([]byte, length)
	}
	frame := s.buf[:length]
	if _, err := io.ReadFull(s.r, frame); err != nil {
		s.err = errors.NewReadError(errors.CodeCorruptFrame,
			"truncated frame payload", err)
		return false
	}

	s.msg.Reset()
	if err := proto.Unmarshal(frame, &s.msg); err != nil {
		s.err = errors.NewReadError(errors.CodeDecodeFailed, "unmarshal order", err)
		return false
	}
	orderFromProto(&s.msg, &s.cur)
	return true
}

func (s *protobufScanner) Order() *types.Order {
	return &s.cur
}

func (s *protobufScanner) Err() error {
	return s.err
}

func (s *protobufScanner) Close() error {
	return nil
}

func orderToProto(o *types.Order, m *orderpb.Order) {
	m.OrderId = o.OrderID
	m.CustomerId = o.CustomerID
	m.ProductId = o.ProductID
	m.ProductName = o.ProductName
	m.Category = o.Category
	m.Quantity = o.Quantity
	m.Price = o.Price
	m.TotalAmount = o.TotalAmount
	m.OrderDate = o.OrderDate
	m.ShippingCountry = o.ShippingCountry
	m.PaymentMethod = o.PaymentMethod
	m.IsReturned = o.IsReturned
}

func orderFromProto(m *orderpb.Order, o *types.Order) {
	o.OrderID = m.OrderId
	o.CustomerID = m.CustomerId
	o.ProductID = m.ProductId
	o.ProductName = m.ProductName
	o.Category = m.Category
	o.Quantity = m.Quantity
	o.Price = m.Price
	o.TotalAmount = m.TotalAmount
	o.OrderDate = m.OrderDate
	o.ShippingCountry = m.ShippingCountry
	o.PaymentMethod = m.PaymentMethod
	o.IsReturned = m.IsReturned
}
