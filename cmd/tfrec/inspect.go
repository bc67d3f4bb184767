package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/blobstore"
	"github.com/hupe1980/tfrec/codec"
)

func runInspect(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		sf        storeFlags
		in        string
		show      int
		codecName string
	)
	sf.register(fs)
	fs.StringVar(&in, "in", "TEST.tfrecords", "record file name")
	fs.IntVar(&show, "n", 3, "number of rows to print")
	fs.StringVar(&codecName, "codec", codec.Default.Name(), "manifest codec: go-json or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return fmt.Errorf("inspect: unknown codec %q", codecName)
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}

	n, err := tfrec.ReadRows(ctx, store, in, func(i int, r tfrec.Row) error {
		if i < show {
			fmt.Fprintf(stdout, "row %d: ic50=%g genes=%d %s tokens=%d %s\n",
				i, r.IC50, len(r.SelectedGenes), preview(r.SelectedGenes), len(r.SmilesTokens), preview(r.SmilesTokens))
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d records\n", n)

	m, err := tfrec.ReadManifest(ctx, store, in, tfrec.WithCodec(c))
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	if err := m.Verify(ctx, store); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "manifest ok: %d records, %d bytes, crc32c %08x\n", m.Records, m.Bytes, m.CRC32C)
	return nil
}

func preview[T any](values []T) string {
	const limit = 4
	if len(values) <= limit {
		return fmt.Sprint(values)
	}
	s := fmt.Sprint(values[:limit])
	return s[:len(s)-1] + " ...]"
}
