package tfrec

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/tfrec/blobstore"
	"github.com/hupe1980/tfrec/tfrecord"
)

// ErrStop can be returned by a ReadRows callback to end the scan early
// without an error.
var ErrStop = errors.New("tfrec: stop")

// ReadRows decodes every record of name in order and calls fn for each.
// It returns the number of rows passed to fn.
//
// Frame and decode failures are returned as *RowError. Errors from fn are
// returned unchanged.
func ReadRows(ctx context.Context, store blobstore.Store, name string, fn func(i int, r Row) error) (int, error) {
	rc, _, err := blobstore.OpenReader(ctx, store, name)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	rd := tfrecord.NewReader(rc)
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return i, &RowError{Row: i, Err: err}
		}

		data, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return i, nil
		}
		if err != nil {
			return i, &RowError{Row: i, Err: err}
		}

		row, err := DecodeRow(data)
		if err != nil {
			return i, &RowError{Row: i, Err: err}
		}

		if err := fn(i, row); err != nil {
			if errors.Is(err, ErrStop) {
				return i + 1, nil
			}
			return i + 1, err
		}
	}
}

// ReadDataset reads name back into a Dataset.
func ReadDataset(ctx context.Context, store blobstore.Store, name string) (*Dataset, error) {
	var rows []Row
	if _, err := ReadRows(ctx, store, name, func(_ int, r Row) error {
		rows = append(rows, r)
		return nil
	}); err != nil {
		return nil, err
	}
	return DatasetFromRows(rows)
}
