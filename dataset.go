package tfrec

import (
	"fmt"
	"iter"

	"github.com/hupe1980/tfrec/tensor"
)

// Dataset holds the three parallel source arrays of a run.
//
// IC50 has shape [N] or [N,1], Genes [N,D1] and Tokens [N,D2]. A rank-1
// Genes or Tokens tensor is read as N rows of one value each.
type Dataset struct {
	IC50   *tensor.Tensor[float32]
	Genes  *tensor.Tensor[float32]
	Tokens *tensor.Tensor[int64]
}

// NewDataset converts three array-likes into tensors and validates them.
// Accepted inputs are those of tensor.FromAny.
func NewDataset(ic50, genes, tokens any) (*Dataset, error) {
	ic, err := tensor.FromAny[float32](ic50)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureIC50, err)
	}
	g, err := tensor.FromAny[float32](genes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureGenes, err)
	}
	tok, err := tensor.FromAny[int64](tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeatureTokens, err)
	}

	d := &Dataset{IC50: ic, Genes: g, Tokens: tok}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that all three arrays agree on the row count and that
// every ic50 row holds exactly one value.
func (d *Dataset) Validate() error {
	switch {
	case d == nil, d.IC50 == nil:
		return &FieldError{Field: FeatureIC50, Reason: "missing"}
	case d.Genes == nil:
		return &FieldError{Field: FeatureGenes, Reason: "missing"}
	case d.Tokens == nil:
		return &FieldError{Field: FeatureTokens, Reason: "missing"}
	}

	n := d.IC50.Rows()
	if n > 0 {
		if w := d.IC50.Width(); w != 1 {
			return &ShapeError{Field: FeatureIC50, Expected: 1, Actual: w}
		}
	}
	if rows := d.Genes.Rows(); rows != n {
		return &ShapeError{Field: FeatureGenes, Expected: n, Actual: rows}
	}
	if rows := d.Tokens.Rows(); rows != n {
		return &ShapeError{Field: FeatureTokens, Expected: n, Actual: rows}
	}
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil || d.IC50 == nil {
		return 0
	}
	return d.IC50.Rows()
}

// GeneWidth returns D1, the number of gene-expression values per row.
func (d *Dataset) GeneWidth() int {
	if d == nil || d.Genes == nil {
		return 0
	}
	return d.Genes.Width()
}

// TokenWidth returns D2, the number of tokens per row.
func (d *Dataset) TokenWidth() int {
	if d == nil || d.Tokens == nil {
		return 0
	}
	return d.Tokens.Width()
}

// Row returns row i. The slices alias the dataset.
func (d *Dataset) Row(i int) Row {
	return Row{
		IC50:          d.IC50.Row(i)[0],
		SelectedGenes: d.Genes.Row(i),
		SmilesTokens:  d.Tokens.Row(i),
	}
}

// All iterates over the rows in order.
func (d *Dataset) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range d.Len() {
			if !yield(i, d.Row(i)) {
				return
			}
		}
	}
}

// DatasetFromRows stacks rows into a Dataset. All rows must share the
// widths of the first row.
func DatasetFromRows(rows []Row) (*Dataset, error) {
	d1, d2 := 0, 0
	if len(rows) > 0 {
		d1, d2 = len(rows[0].SelectedGenes), len(rows[0].SmilesTokens)
	}

	ic50 := make([]float32, 0, len(rows))
	genes := make([]float32, 0, len(rows)*d1)
	tokens := make([]int64, 0, len(rows)*d2)
	for i, r := range rows {
		if err := checkWidths(r, d1, d2); err != nil {
			return nil, &RowError{Row: i, Err: err}
		}
		ic50 = append(ic50, r.IC50)
		genes = append(genes, r.SelectedGenes...)
		tokens = append(tokens, r.SmilesTokens...)
	}

	n := len(rows)
	return &Dataset{
		IC50:   tensor.MustNew(ic50, n),
		Genes:  tensor.MustNew(genes, n, d1),
		Tokens: tensor.MustNew(tokens, n, d2),
	}, nil
}

func checkWidths(r Row, d1, d2 int) error {
	if len(r.SelectedGenes) != d1 {
		return &ShapeError{Field: FeatureGenes, Expected: d1, Actual: len(r.SelectedGenes)}
	}
	if len(r.SmilesTokens) != d2 {
		return &ShapeError{Field: FeatureTokens, Expected: d2, Actual: len(r.SmilesTokens)}
	}
	return nil
}
