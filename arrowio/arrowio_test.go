package arrowio

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/synth"
)

func testDataset(seed int64, rows int) *tfrec.Dataset {
	return synth.Generate(rand.New(rand.NewSource(seed)), synth.Config{
		Rows:       rows,
		GeneWidth:  6,
		TokenWidth: 4,
		Vocab:      10,
	})
}

func assertSameData(t *testing.T, want, got *tfrec.Dataset) {
	t.Helper()
	assert.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.GeneWidth(), got.GeneWidth())
	assert.Equal(t, want.TokenWidth(), got.TokenWidth())
	assert.Equal(t, want.IC50.Data(), got.IC50.Data())
	assert.Equal(t, want.Genes.Data(), got.Genes.Data())
	assert.Equal(t, want.Tokens.Data(), got.Tokens.Data())
}

func TestSchema(t *testing.T) {
	s := Schema(2128, 155)
	require.Equal(t, 3, s.NumFields())
	assert.Equal(t, tfrec.FeatureIC50, s.Field(0).Name)
	assert.Equal(t, arrow.FLOAT32, s.Field(0).Type.ID())
	assert.True(t, arrow.TypeEqual(arrow.FixedSizeListOf(2128, arrow.PrimitiveTypes.Float32), s.Field(1).Type))
	assert.True(t, arrow.TypeEqual(arrow.FixedSizeListOf(155, arrow.PrimitiveTypes.Int64), s.Field(2).Type))
}

func TestRecordRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	d := testDataset(1, 9)
	rec, err := ToRecord(mem, d)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(9), rec.NumRows())

	got, err := FromRecord(rec)
	require.NoError(t, err)
	assertSameData(t, d, got)
}

func TestFromRecord_Slice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	d := testDataset(2, 5)
	rec, err := ToRecord(mem, d)
	require.NoError(t, err)
	defer rec.Release()

	slice := rec.NewSlice(1, 3)
	defer slice.Release()

	got, err := FromRecord(slice)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, d.Row(1), got.Row(0))
	assert.Equal(t, d.Row(2), got.Row(1))
}

func TestIPCRoundTrip(t *testing.T) {
	d := testDataset(3, 12)

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, d))

	got, err := ReadIPC(&buf)
	require.NoError(t, err)
	assertSameData(t, d, got)
}

func TestReadIPC_ConcatenatesBatches(t *testing.T) {
	mem := memory.NewGoAllocator()
	a, b := testDataset(4, 3), testDataset(5, 2)

	recA, err := ToRecord(mem, a)
	require.NoError(t, err)
	defer recA.Release()
	recB, err := ToRecord(mem, b)
	require.NoError(t, err)
	defer recB.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(recA.Schema()))
	require.NoError(t, w.Write(recA))
	require.NoError(t, w.Write(recB))
	require.NoError(t, w.Close())

	got, err := ReadIPC(&buf)
	require.NoError(t, err)
	require.Equal(t, 5, got.Len())
	for i := range 3 {
		assert.Equal(t, a.Row(i), got.Row(i))
	}
	for i := range 2 {
		assert.Equal(t, b.Row(i), got.Row(3+i))
	}
}

func TestReadIPC_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(Schema(3, 2)))
	require.NoError(t, w.Close())

	got, err := ReadIPC(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 3, got.GeneWidth())
	assert.Equal(t, 2, got.TokenWidth())
}

// buildRecord assembles a two-row record with a custom ic50 column.
func buildRecord(t *testing.T, mem memory.Allocator, ic50Type arrow.DataType, appendIC50 func(array.Builder)) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: tfrec.FeatureTokens, Type: arrow.FixedSizeListOf(1, arrow.PrimitiveTypes.Int64)},
		{Name: "extra", Type: arrow.BinaryTypes.String},
		{Name: tfrec.FeatureGenes, Type: arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Float32), Nullable: true},
		{Name: tfrec.FeatureIC50, Type: ic50Type, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	tokens := b.Field(0).(*array.FixedSizeListBuilder)
	tokens.Append(true)
	tokens.ValueBuilder().(*array.Int64Builder).Append(7)
	tokens.Append(true)
	tokens.ValueBuilder().(*array.Int64Builder).Append(8)

	b.Field(1).(*array.StringBuilder).AppendValues([]string{"a", "b"}, nil)

	genes := b.Field(2).(*array.FixedSizeListBuilder)
	genes.Append(true)
	genes.ValueBuilder().(*array.Float32Builder).AppendValues([]float32{1, 2}, nil)
	genes.Append(true)
	genes.ValueBuilder().(*array.Float32Builder).AppendValues([]float32{3, 4}, nil)

	appendIC50(b.Field(3))
	return b.NewRecord()
}

func TestFromRecord_Float64IC50(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec := buildRecord(t, mem, arrow.PrimitiveTypes.Float64, func(b array.Builder) {
		b.(*array.Float64Builder).AppendValues([]float64{0.25, -1.5}, nil)
	})
	defer rec.Release()

	d, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -1.5}, d.IC50.Data())
	assert.Equal(t, []float32{1, 2, 3, 4}, d.Genes.Data())
	assert.Equal(t, []int64{7, 8}, d.Tokens.Data())
}

func TestFromRecord_Nulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	rec := buildRecord(t, mem, arrow.PrimitiveTypes.Float32, func(b array.Builder) {
		b.(*array.Float32Builder).AppendValues([]float32{1, 0}, []bool{true, false})
	})
	defer rec.Release()

	_, err := FromRecord(rec)
	assert.ErrorIs(t, err, ErrNull)
}

func TestFromRecord_SchemaErrors(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("ic50 type", func(t *testing.T) {
		rec := buildRecord(t, mem, arrow.PrimitiveTypes.Int32, func(b array.Builder) {
			b.(*array.Int32Builder).AppendValues([]int32{1, 2}, nil)
		})
		defer rec.Release()

		_, err := FromRecord(rec)
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("missing column", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: tfrec.FeatureIC50, Type: arrow.PrimitiveTypes.Float32},
		}, nil)
		b := array.NewRecordBuilder(mem, schema)
		defer b.Release()
		rec := b.NewRecord()
		defer rec.Release()

		_, err := FromRecord(rec)
		assert.ErrorIs(t, err, ErrSchema)
		assert.ErrorContains(t, err, tfrec.FeatureGenes)
	})

	t.Run("list element type", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: tfrec.FeatureIC50, Type: arrow.PrimitiveTypes.Float32},
			{Name: tfrec.FeatureGenes, Type: arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Float64)},
			{Name: tfrec.FeatureTokens, Type: arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Int64)},
		}, nil)
		b := array.NewRecordBuilder(mem, schema)
		defer b.Release()
		rec := b.NewRecord()
		defer rec.Release()

		_, err := FromRecord(rec)
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func TestToRecord_InvalidDataset(t *testing.T) {
	d := testDataset(1, 3)
	d.Tokens = testDataset(1, 2).Tokens

	_, err := ToRecord(memory.NewGoAllocator(), d)
	var shapeErr *tfrec.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestReadIPC_Garbage(t *testing.T) {
	_, err := ReadIPC(bytes.NewReader([]byte("not an arrow stream")))
	assert.Error(t, err)
}
