package tfrec

import (
	"fmt"

	"github.com/hupe1980/tfrec/example"
	"github.com/hupe1980/tfrec/tensor"
)

// Feature names of every record.
const (
	FeatureIC50   = "ic50"
	FeatureGenes  = "selected_genes_20"
	FeatureTokens = "smiles_atom_tokens"
)

// FieldNames lists the record features in the order they are encoded.
var FieldNames = []string{FeatureIC50, FeatureGenes, FeatureTokens}

// Row is one drug-compound sample.
type Row struct {
	IC50          float32
	SelectedGenes []float32
	SmilesTokens  []int64
}

// FloatField flattens an array-like value row-major and wraps it in a
// FloatList feature. Integer inputs are converted.
func FloatField(v any) (*example.Feature, error) {
	values, err := tensor.FlattenFloat32(v)
	if err != nil {
		return nil, err
	}
	return example.FloatFeature(values...), nil
}

// Int64Field flattens an array-like value row-major and wraps it in an
// Int64List feature. Floating-point inputs are rejected.
func Int64Field(v any) (*example.Feature, error) {
	values, err := tensor.FlattenInt64(v)
	if err != nil {
		return nil, err
	}
	return example.Int64Feature(values...), nil
}

// EncodeRow builds and serializes the Example for one row from its ic50
// scalar, gene-expression vector and token vector.
//
// ic50 may be a scalar or any array-like holding exactly one value.
func EncodeRow(ic50, genes, tokens any) ([]byte, error) {
	ic50Feature, err := FloatField(ic50)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureIC50, err)
	}
	if n := ic50Feature.Len(); n != 1 {
		return nil, &ShapeError{Field: FeatureIC50, Expected: 1, Actual: n}
	}

	genesFeature, err := FloatField(genes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureGenes, err)
	}

	tokensFeature, err := Int64Field(tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureTokens, err)
	}

	return example.New(map[string]*example.Feature{
		FeatureGenes:  genesFeature,
		FeatureIC50:   ic50Feature,
		FeatureTokens: tokensFeature,
	}).Marshal()
}

// Example returns the row as a tf.train.Example. The features alias the
// row's slices.
func (r Row) Example() *example.Example {
	return example.New(map[string]*example.Feature{
		FeatureGenes:  example.FloatFeature(r.SelectedGenes...),
		FeatureIC50:   example.FloatFeature(r.IC50),
		FeatureTokens: example.Int64Feature(r.SmilesTokens...),
	})
}

// MarshalBinary encodes the row as a serialized Example.
func (r Row) MarshalBinary() ([]byte, error) {
	return r.Example().Marshal()
}

// UnmarshalBinary decodes a serialized Example into r.
func (r *Row) UnmarshalBinary(data []byte) error {
	row, err := DecodeRow(data)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

// DecodeRow decodes a serialized Example into a Row.
func DecodeRow(data []byte) (Row, error) {
	ex, err := example.Unmarshal(data)
	if err != nil {
		return Row{}, err
	}
	return RowFromExample(ex)
}

// RowFromExample extracts a Row from ex. Extra features are ignored.
func RowFromExample(ex *example.Example) (Row, error) {
	ic50, err := feature(ex, FeatureIC50, example.KindFloat)
	if err != nil {
		return Row{}, err
	}
	if n := ic50.Len(); n != 1 {
		return Row{}, &FieldError{Field: FeatureIC50, Reason: fmt.Sprintf("expected 1 value, got %d", n)}
	}

	genes, err := feature(ex, FeatureGenes, example.KindFloat)
	if err != nil {
		return Row{}, err
	}

	tokens, err := feature(ex, FeatureTokens, example.KindInt64)
	if err != nil {
		return Row{}, err
	}

	return Row{
		IC50:          ic50.Floats()[0],
		SelectedGenes: genes.Floats(),
		SmilesTokens:  tokens.Int64s(),
	}, nil
}

func feature(ex *example.Example, name string, kind example.Kind) (*example.Feature, error) {
	f := ex.Get(name)
	if f == nil {
		return nil, &FieldError{Field: name, Reason: "missing"}
	}
	if got := f.Kind(); got != kind {
		return nil, &FieldError{Field: name, Reason: fmt.Sprintf("expected %s, got %s", kind, got)}
	}
	return f, nil
}
