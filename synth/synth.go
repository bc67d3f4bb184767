// Package synth generates random datasets shaped like the drug-response
// demo data: one IC50 value, D1 gene-expression values and D2 SMILES atom
// tokens per row.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/tensor"
)

// Config sets the dataset dimensions.
type Config struct {
	Rows       int
	GeneWidth  int
	TokenWidth int
	// Vocab is the number of distinct token ids; tokens are drawn from [0, Vocab).
	Vocab int
}

// DefaultConfig matches the demo data: 85 rows, 2128 genes, 155 tokens
// drawn from ten ids.
var DefaultConfig = Config{
	Rows:       85,
	GeneWidth:  2128,
	TokenWidth: 155,
	Vocab:      10,
}

// Validate reports a configuration Generate cannot honor.
func (c Config) Validate() error {
	switch {
	case c.Rows < 0:
		return fmt.Errorf("synth: negative row count %d", c.Rows)
	case c.GeneWidth < 0:
		return fmt.Errorf("synth: negative gene width %d", c.GeneWidth)
	case c.TokenWidth < 0:
		return fmt.Errorf("synth: negative token width %d", c.TokenWidth)
	case c.Vocab <= 0 && c.TokenWidth > 0:
		return fmt.Errorf("synth: vocab must be positive, got %d", c.Vocab)
	}
	return nil
}

// Generate draws a dataset from rng. IC50 and gene values are standard
// normal, tokens are uniform. The same seed and config always yield the
// same dataset. Generate panics if cfg is invalid.
func Generate(rng *rand.Rand, cfg Config) *tfrec.Dataset {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	ic50 := make([]float32, cfg.Rows)
	for i := range ic50 {
		ic50[i] = float32(rng.NormFloat64())
	}

	genes := make([]float32, cfg.Rows*cfg.GeneWidth)
	for i := range genes {
		genes[i] = float32(rng.NormFloat64())
	}

	tokens := make([]int64, cfg.Rows*cfg.TokenWidth)
	for i := range tokens {
		tokens[i] = int64(rng.Intn(cfg.Vocab))
	}

	return &tfrec.Dataset{
		IC50:   tensor.MustNew(ic50, cfg.Rows, 1),
		Genes:  tensor.MustNew(genes, cfg.Rows, cfg.GeneWidth),
		Tokens: tensor.MustNew(tokens, cfg.Rows, cfg.TokenWidth),
	}
}
