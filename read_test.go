package tfrec

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/tfrec/blobstore"
	"github.com/hupe1980/tfrec/example"
	"github.com/hupe1980/tfrec/tfrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_Stop(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	_, err := WriteDataset(ctx, store, "a.tfrecords", randomDataset(t, 1, 10, 2, 2))
	require.NoError(t, err)

	var seen []int
	n, err := ReadRows(ctx, store, "a.tfrecords", func(i int, _ Row) error {
		seen = append(seen, i)
		if i == 3 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestReadRows_CallbackError(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	_, err := WriteDataset(ctx, store, "a.tfrecords", randomDataset(t, 1, 5, 2, 2))
	require.NoError(t, err)

	boom := errors.New("boom")
	n, err := ReadRows(ctx, store, "a.tfrecords", func(i int, _ Row) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	assert.Equal(t, 2, n)
	assert.Same(t, boom, err)
}

func TestReadRows_Truncated(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	_, err := WriteDataset(ctx, store, "a.tfrecords", randomDataset(t, 1, 3, 2, 2))
	require.NoError(t, err)

	data := blobBytes(t, store, "a.tfrecords")
	require.NoError(t, store.Put(ctx, "cut.tfrecords", data[:len(data)-3]))

	n, err := ReadRows(ctx, store, "cut.tfrecords", func(int, Row) error { return nil })
	assert.Equal(t, 2, n)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.ErrorIs(t, err, tfrecord.ErrTruncated)
}

func TestReadRows_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	_, err := WriteDataset(ctx, store, "a.tfrecords", randomDataset(t, 1, 2, 2, 2))
	require.NoError(t, err)

	data := blobBytes(t, store, "a.tfrecords")
	data[tfrecord.HeaderSize] ^= 0xff
	require.NoError(t, store.Put(ctx, "bad.tfrecords", data))

	_, err = ReadRows(ctx, store, "bad.tfrecords", func(int, Row) error { return nil })
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 0, rowErr.Row)
	assert.ErrorIs(t, err, tfrecord.ErrInvalidDataCRC)
}

func TestReadRows_ForeignExample(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	payload, err := example.New(map[string]*example.Feature{
		"label": example.Int64Feature(1),
	}).Marshal()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = tfrecord.NewWriter(&buf).Write(payload)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "foreign.tfrecords", buf.Bytes()))

	_, err = ReadRows(ctx, store, "foreign.tfrecords", func(int, Row) error { return nil })
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, FeatureIC50, fieldErr.Field)
}

func TestReadRows_Missing(t *testing.T) {
	_, err := ReadRows(context.Background(), blobstore.NewMemoryStore(), "nope", func(int, Row) error { return nil })
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestReadDataset(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	d := randomDataset(t, 8, 6, 4, 3)
	_, err := WriteDataset(ctx, store, "a.tfrecords", d)
	require.NoError(t, err)

	got, err := ReadDataset(ctx, store, "a.tfrecords")
	require.NoError(t, err)
	assert.Equal(t, d.IC50.Data(), got.IC50.Data())
	assert.Equal(t, d.Genes.Data(), got.Genes.Data())
	assert.Equal(t, d.Tokens.Data(), got.Tokens.Data())
	assert.Equal(t, 6, got.Len())
}
