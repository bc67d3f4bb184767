package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/internal/conv"
	"github.com/hupe1980/tfrec/tensor"
)

var (
	// ErrSchema is returned when a record batch does not have the dataset layout.
	ErrSchema = errors.New("arrowio: unsupported schema")
	// ErrNull is returned when a column holds null values.
	ErrNull = errors.New("arrowio: null values")
)

// Schema returns the Arrow schema of a dataset with d1 genes and d2 tokens
// per row.
func Schema(d1, d2 int) *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: tfrec.FeatureIC50, Type: arrow.PrimitiveTypes.Float32},
			{Name: tfrec.FeatureGenes, Type: arrow.FixedSizeListOf(int32(d1), arrow.PrimitiveTypes.Float32)},
			{Name: tfrec.FeatureTokens, Type: arrow.FixedSizeListOf(int32(d2), arrow.PrimitiveTypes.Int64)},
		},
		nil,
	)
}

// ToRecord builds a single record batch holding every row of d. The caller
// must Release the record.
func ToRecord(mem memory.Allocator, d *tfrec.Dataset) (arrow.Record, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	for _, w := range []int{d.GeneWidth(), d.TokenWidth()} {
		if _, err := conv.IntToInt32(w); err != nil {
			return nil, fmt.Errorf("arrowio: list width: %w", err)
		}
	}

	builder := array.NewRecordBuilder(mem, Schema(d.GeneWidth(), d.TokenWidth()))
	defer builder.Release()

	ic50Builder := builder.Field(0).(*array.Float32Builder)
	genesBuilder := builder.Field(1).(*array.FixedSizeListBuilder)
	tokensBuilder := builder.Field(2).(*array.FixedSizeListBuilder)

	geneValues := genesBuilder.ValueBuilder().(*array.Float32Builder)
	tokenValues := tokensBuilder.ValueBuilder().(*array.Int64Builder)

	n := d.Len()
	ic50Builder.Reserve(n)
	geneValues.Reserve(n * d.GeneWidth())
	tokenValues.Reserve(n * d.TokenWidth())

	for _, row := range d.All() {
		ic50Builder.Append(row.IC50)

		genesBuilder.Append(true)
		geneValues.AppendValues(row.SelectedGenes, nil)

		tokensBuilder.Append(true)
		tokenValues.AppendValues(row.SmilesTokens, nil)
	}

	return builder.NewRecord(), nil
}

// FromRecord copies a record batch into a Dataset. Columns are matched by
// name, so extra columns and any column order are accepted.
func FromRecord(rec arrow.Record) (*tfrec.Dataset, error) {
	var c columns
	if err := c.init(rec.Schema()); err != nil {
		return nil, err
	}
	if err := c.append(rec); err != nil {
		return nil, err
	}
	return c.dataset()
}

// WriteIPC writes d to w as an Arrow IPC stream with one record batch.
func WriteIPC(w io.Writer, d *tfrec.Dataset) error {
	rec, err := ToRecord(memory.DefaultAllocator, d)
	if err != nil {
		return err
	}
	defer rec.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("arrowio: write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("arrowio: close writer: %w", err)
	}
	return nil
}

// ReadIPC reads an Arrow IPC stream and concatenates its record batches
// into one Dataset.
func ReadIPC(r io.Reader) (*tfrec.Dataset, error) {
	reader, err := ipc.NewReader(r, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("arrowio: open stream: %w", err)
	}
	defer reader.Release()

	var c columns
	if err := c.init(reader.Schema()); err != nil {
		return nil, err
	}

	for reader.Next() {
		if err := c.append(reader.Record()); err != nil {
			return nil, err
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("arrowio: read stream: %w", err)
	}
	return c.dataset()
}

// columns accumulates the flattened dataset columns across batches.
type columns struct {
	ic50Idx, genesIdx, tokensIdx int
	d1, d2                       int

	ic50   []float32
	genes  []float32
	tokens []int64
}

func (c *columns) init(schema *arrow.Schema) error {
	var err error
	if c.ic50Idx, err = fieldIndex(schema, tfrec.FeatureIC50); err != nil {
		return err
	}
	if c.genesIdx, err = fieldIndex(schema, tfrec.FeatureGenes); err != nil {
		return err
	}
	if c.tokensIdx, err = fieldIndex(schema, tfrec.FeatureTokens); err != nil {
		return err
	}

	switch id := schema.Field(c.ic50Idx).Type.ID(); id {
	case arrow.FLOAT32, arrow.FLOAT64:
	default:
		return fmt.Errorf("%w: %s has type %s", ErrSchema, tfrec.FeatureIC50, schema.Field(c.ic50Idx).Type)
	}

	if c.d1, err = listWidth(schema.Field(c.genesIdx), arrow.FLOAT32); err != nil {
		return err
	}
	if c.d2, err = listWidth(schema.Field(c.tokensIdx), arrow.INT64); err != nil {
		return err
	}
	return nil
}

func fieldIndex(schema *arrow.Schema, name string) (int, error) {
	idx := schema.FieldIndices(name)
	switch len(idx) {
	case 0:
		return 0, fmt.Errorf("%w: missing column %s", ErrSchema, name)
	case 1:
		return idx[0], nil
	default:
		return 0, fmt.Errorf("%w: duplicate column %s", ErrSchema, name)
	}
}

func listWidth(f arrow.Field, elem arrow.Type) (int, error) {
	lt, ok := f.Type.(*arrow.FixedSizeListType)
	if !ok || lt.Elem().ID() != elem {
		return 0, fmt.Errorf("%w: %s has type %s", ErrSchema, f.Name, f.Type)
	}
	return int(lt.Len()), nil
}

func (c *columns) append(rec arrow.Record) error {
	ic50Col := rec.Column(c.ic50Idx)
	if ic50Col.NullN() > 0 {
		return fmt.Errorf("%w in %s", ErrNull, tfrec.FeatureIC50)
	}
	switch col := ic50Col.(type) {
	case *array.Float32:
		c.ic50 = append(c.ic50, col.Float32Values()...)
	case *array.Float64:
		for _, v := range col.Float64Values() {
			c.ic50 = append(c.ic50, float32(v))
		}
	default:
		return fmt.Errorf("%w: %s has type %s", ErrSchema, tfrec.FeatureIC50, ic50Col.DataType())
	}

	n := int(rec.NumRows())

	values, off, err := fixedList(rec.Column(c.genesIdx), tfrec.FeatureGenes, c.d1)
	if err != nil {
		return err
	}
	geneValues, ok := values.(*array.Float32)
	if !ok {
		return fmt.Errorf("%w: %s values have type %s", ErrSchema, tfrec.FeatureGenes, values.DataType())
	}
	c.genes = append(c.genes, geneValues.Float32Values()[off:off+n*c.d1]...)

	values, off, err = fixedList(rec.Column(c.tokensIdx), tfrec.FeatureTokens, c.d2)
	if err != nil {
		return err
	}
	tokenValues, ok := values.(*array.Int64)
	if !ok {
		return fmt.Errorf("%w: %s values have type %s", ErrSchema, tfrec.FeatureTokens, values.DataType())
	}
	c.tokens = append(c.tokens, tokenValues.Int64Values()[off:off+n*c.d2]...)
	return nil
}

// fixedList returns the child values of a fixed-size list column and the
// index of its first element.
func fixedList(col arrow.Array, name string, width int) (arrow.Array, int, error) {
	list, ok := col.(*array.FixedSizeList)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s has type %s", ErrSchema, name, col.DataType())
	}
	values := list.ListValues()
	if list.NullN() > 0 || values.NullN() > 0 {
		return nil, 0, fmt.Errorf("%w in %s", ErrNull, name)
	}
	return values, list.Offset() * width, nil
}

func (c *columns) dataset() (*tfrec.Dataset, error) {
	n := len(c.ic50)
	d := &tfrec.Dataset{
		IC50:   tensor.MustNew(c.ic50, n),
		Genes:  tensor.MustNew(c.genes, n, c.d1),
		Tokens: tensor.MustNew(c.tokens, n, c.d2),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
