package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// NewReader returns a sequential reader over the whole blob.
//
// Mappable blobs are read in place; other blobs are streamed with a single
// ReadRange request. The returned reader does not close b.
func NewReader(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}
	if b.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return b.ReadRange(ctx, 0, b.Size())
}

// OpenReader opens name in store and returns a sequential reader over it.
// Closing the reader also closes the blob.
func OpenReader(ctx context.Context, store Store, name string) (io.ReadCloser, int64, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	r, err := NewReader(ctx, b)
	if err != nil {
		_ = b.Close()
		return nil, 0, err
	}
	return &blobReader{ReadCloser: r, blob: b}, b.Size(), nil
}

type blobReader struct {
	io.ReadCloser
	blob Blob
}

func (r *blobReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.blob.Close())
}
