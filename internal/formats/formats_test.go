package formats

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formatbench/formatbench/internal/config"
	"github.com/formatbench/formatbench/internal/datagen"
	"github.com/formatbench/formatbench/internal/errors"
	"github.com/formatbench/formatbench/pkg/types"
)

var testAnchor = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func allHandlers(t *testing.T) []Handler {
	t.Helper()
	handlers, err := ForNames(config.AllFormats)
	require.NoError(t, err)
	return handlers
}

// fixtureBatches builds two small handcrafted batches with known categories,
// countries and exactly representable amounts.
func fixtureBatches() [][]types.Order {
	mk := func(id string, category, country string, total float64) types.Order {
		return types.Order{
			OrderID:         id,
			CustomerID:      42,
			ProductID:       7,
			ProductName:     "Portable Steel Widget",
			Category:        category,
			Quantity:        2,
			Price:           total / 2,
			TotalAmount:     total,
			OrderDate:       testAnchor.UnixMilli(),
			ShippingCountry: country,
			PaymentMethod:   "paypal",
			IsReturned:      false,
		}
	}
	return [][]types.Order{
		{
			mk("ord-0001", "Electronics", "Germany", 10.25),
			mk("ord-0002", "Books", "Japan", 20.5),
			mk("ord-0003", "Electronics", "Germany", 30.75),
		},
		{
			mk("ord-0004", "Clothing", "United States", 5.25),
			mk("ord-0005", "Electronics", "Japan", 8.5),
		},
	}
}

func writeFile(t *testing.T, h Handler, dir string, batches [][]types.Order) string {
	t.Helper()
	path := filepath.Join(dir, "orders"+h.Extension())
	w, err := h.OpenWriter(path)
	require.NoError(t, err)
	for _, batch := range batches {
		require.NoError(t, w.WriteBatch(batch))
	}
	require.NoError(t, w.Close())
	return path
}

func readAll(t *testing.T, r RecordReader) []types.Order {
	t.Helper()
	s, err := r.Records()
	require.NoError(t, err)
	var out []types.Order
	for s.Next() {
		out = append(out, *s.Order())
	}
	require.NoError(t, s.Err())
	require.NoError(t, s.Close())
	return out
}

func generateBatches(t *testing.T, seed int64, total int64, batchSize int) [][]types.Order {
	t.Helper()
	g, err := datagen.New(datagen.Options{
		Seed:       &seed,
		BatchSize:  batchSize,
		Anchor:     testAnchor,
		WindowDays: 730,
	})
	require.NoError(t, err)

	var batches [][]types.Order
	st := g.Stream(total)
	for {
		batch, ok := st.Next()
		if !ok {
			break
		}
		batches = append(batches, batch)
	}
	return batches
}

func flatten(batches [][]types.Order) []types.Order {
	var all []types.Order
	for _, b := range batches {
		all = append(all, b...)
	}
	return all
}

func TestForName(t *testing.T) {
	for _, name := range config.AllFormats {
		h, err := ForName(name)
		require.NoError(t, err)
		assert.Equal(t, name, h.Name())
		assert.NotEmpty(t, h.Extension())
	}

	_, err := ForName("csv")
	require.Error(t, err)
	assert.Equal(t, errors.KindConfiguration, errors.GetKind(err))
	assert.Equal(t, errors.CodeUnknownFormat, errors.GetCode(err))
}

func TestHandlers_RoundTripFidelity(t *testing.T) {
	batches := generateBatches(t, 7, 250, 100)
	want := flatten(batches)

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			got := readAll(t, r)
			require.Len(t, got, len(want))
			assert.Equal(t, want, got)
		})
	}
}

func TestHandlers_CountMatchingEqualsPostFilter(t *testing.T) {
	batches := fixtureBatches()

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			count, err := r.CountMatching(types.FieldCategory, "Electronics")
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)

			// A value no record carries must produce zero, not an error.
			count, err = r.CountMatching(types.FieldCategory, "Furniture")
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)

			count, err = r.CountMatching(types.FieldShippingCountry, "Japan")
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})
	}
}

func TestHandlers_SumByGroup(t *testing.T) {
	batches := fixtureBatches()
	want := map[string]float64{
		"Germany":       41.0,
		"Japan":         29.0,
		"United States": 5.25,
	}

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			sums, err := r.SumByGroup(types.FieldShippingCountry, types.FieldTotalAmount)
			require.NoError(t, err)
			require.Len(t, sums, len(want))
			for country, total := range want {
				assert.InDelta(t, total, sums[country], 1e-9, "country %s", country)
			}
		})
	}
}

func TestHandlers_UnknownField(t *testing.T) {
	batches := fixtureBatches()

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			_, err = r.CountMatching("warehouse", "A")
			require.Error(t, err)
			assert.Equal(t, errors.KindFormatRead, errors.GetKind(err))

			// A numeric field is not a valid equality filter.
			_, err = r.CountMatching(types.FieldPrice, "10")
			require.Error(t, err)

			_, err = r.SumByGroup(types.FieldShippingCountry, "discount")
			require.Error(t, err)
		})
	}
}

func TestHandlers_MissingFile(t *testing.T) {
	dir := t.TempDir()

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			_, err := h.OpenReader(filepath.Join(dir, "missing"+h.Extension()))
			require.Error(t, err)
			assert.Equal(t, errors.KindFormatRead, errors.GetKind(err))
			assert.Equal(t, errors.CodeFileNotFound, errors.GetCode(err))
		})
	}
}

func TestHandlers_ReaderRepeatsOperations(t *testing.T) {
	// One reader handle must support all three operations back to back;
	// stream-oriented codecs rewind between passes.
	batches := fixtureBatches()

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			first := readAll(t, r)
			count, err := r.CountMatching(types.FieldCategory, "Electronics")
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)

			second := readAll(t, r)
			assert.Equal(t, first, second)
		})
	}
}

func TestAvro_BuffersUntilClose(t *testing.T) {
	h, err := ForName(config.FormatAvro)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "orders"+h.Extension())
	w, err := h.OpenWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteBatch(fixtureBatches()[0]))

	// All encoding happens at Close; until then nothing reaches the file.
	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, stat.Size())

	require.NoError(t, w.Close())

	stat, err = os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, stat.Size())

	r, err := h.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, readAll(t, r), 3)
}

func TestParquet_RowGroupPerBatch(t *testing.T) {
	h, err := ForName(config.FormatParquet)
	require.NoError(t, err)

	batches := generateBatches(t, 11, 250, 100)
	path := writeFile(t, h, t.TempDir(), batches)

	r, err := h.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	pr := r.(*parquetReader)
	groups := pr.pf.RowGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, int64(100), groups[0].NumRows())
	assert.Equal(t, int64(50), groups[2].NumRows())

	col, ok := pr.pf.Schema().Lookup(types.FieldCategory)
	require.True(t, ok)
	for _, rg := range groups {
		assert.NotNil(t, rg.ColumnChunks()[col.ColumnIndex].BloomFilter())
	}
}

func TestProtobuf_TruncatedFile(t *testing.T) {
	h, err := ForName(config.FormatProtobuf)
	require.NoError(t, err)

	path := writeFile(t, h, t.TempDir(), fixtureBatches())

	stat, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, stat.Size()-3))

	r, err := h.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Records()
	require.NoError(t, err)
	for s.Next() {
	}
	err = s.Err()
	require.Error(t, err)
	assert.Equal(t, errors.KindFormatRead, errors.GetKind(err))
	assert.Equal(t, errors.CodeCorruptFrame, errors.GetCode(err))
	require.NoError(t, s.Close())

	// The two shortcut operations surface the same corruption.
	_, err = r.CountMatching(types.FieldCategory, "Electronics")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCorruptFrame, errors.GetCode(err))
}

func TestProtobuf_FrameLengthCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.pb")

	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], maxFrameSize+1)
	require.NoError(t, os.WriteFile(path, append(prefix[:], 0xde, 0xad), 0644))

	h, err := ForName(config.FormatProtobuf)
	require.NoError(t, err)
	r, err := h.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Records()
	require.NoError(t, err)
	assert.False(t, s.Next())
	require.Error(t, s.Err())
	assert.Equal(t, errors.CodeCorruptFrame, errors.GetCode(s.Err()))
}

func TestScenario_Seed42(t *testing.T) {
	batches := generateBatches(t, 42, 1000, 100)
	want := flatten(batches)
	require.Len(t, want, 1000)

	wantElectronics := 0
	wantSums := make(map[string]float64)
	for _, o := range want {
		if o.Category == "Electronics" {
			wantElectronics++
		}
		wantSums[o.ShippingCountry] += o.TotalAmount
	}

	for _, h := range allHandlers(t) {
		t.Run(h.Name(), func(t *testing.T) {
			path := writeFile(t, h, t.TempDir(), batches)

			r, err := h.OpenReader(path)
			require.NoError(t, err)
			defer r.Close()

			got := readAll(t, r)
			assert.Equal(t, want, got)

			count, err := r.CountMatching(types.FieldCategory, "Electronics")
			require.NoError(t, err)
			assert.Equal(t, int64(wantElectronics), count)

			sums, err := r.SumByGroup(types.FieldShippingCountry, types.FieldTotalAmount)
			require.NoError(t, err)
			require.Len(t, sums, len(wantSums))
			for country, total := range wantSums {
				assert.InDelta(t, total, sums[country], 1e-6, "country %s", country)
			}
		})
	}
}
