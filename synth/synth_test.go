package synth

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Default(t *testing.T) {
	d := Generate(rand.New(rand.NewSource(1)), DefaultConfig)
	require.NoError(t, d.Validate())

	assert.Equal(t, 85, d.Len())
	assert.Equal(t, []int{85, 1}, d.IC50.Shape())
	assert.Equal(t, []int{85, 2128}, d.Genes.Shape())
	assert.Equal(t, []int{85, 155}, d.Tokens.Shape())

	for _, tok := range d.Tokens.Data() {
		assert.GreaterOrEqual(t, tok, int64(0))
		assert.Less(t, tok, int64(10))
	}

	var sum, sq float64
	for _, v := range d.Genes.Data() {
		sum += float64(v)
		sq += float64(v) * float64(v)
	}
	n := float64(d.Genes.Len())
	mean := sum / n
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, math.Sqrt(sq/n-mean*mean), 0.05)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Rows: 5, GeneWidth: 4, TokenWidth: 3, Vocab: 7}
	a := Generate(rand.New(rand.NewSource(42)), cfg)
	b := Generate(rand.New(rand.NewSource(42)), cfg)
	c := Generate(rand.New(rand.NewSource(43)), cfg)

	assert.Equal(t, a.Genes.Data(), b.Genes.Data())
	assert.Equal(t, a.Tokens.Data(), b.Tokens.Data())
	assert.NotEqual(t, a.Genes.Data(), c.Genes.Data())
}

func TestGenerate_Empty(t *testing.T) {
	d := Generate(rand.New(rand.NewSource(1)), Config{})
	require.NoError(t, d.Validate())
	assert.Equal(t, 0, d.Len())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"rows", Config{Rows: -1}},
		{"genes", Config{GeneWidth: -1}},
		{"tokens", Config{TokenWidth: -1}},
		{"vocab", Config{Rows: 1, TokenWidth: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
			assert.Panics(t, func() { Generate(rand.New(rand.NewSource(1)), tt.cfg) })
		})
	}
	assert.NoError(t, DefaultConfig.Validate())
}

func TestGenerate_WriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	d := Generate(rand.New(rand.NewSource(1)), DefaultConfig)

	m, err := tfrec.WriteDataset(ctx, store, "TEST.tfrecords", d)
	require.NoError(t, err)
	assert.Equal(t, int64(85), m.Records)

	back, err := tfrec.ReadDataset(ctx, store, "TEST.tfrecords")
	require.NoError(t, err)
	assert.Equal(t, d.IC50.Data(), back.IC50.Data())
	assert.Equal(t, d.Genes.Data(), back.Genes.Data())
	assert.Equal(t, d.Tokens.Data(), back.Tokens.Data())
}
