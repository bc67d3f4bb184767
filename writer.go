package tfrec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"time"

	"github.com/hupe1980/tfrec/blobstore"
	ihash "github.com/hupe1980/tfrec/internal/hash"
	"github.com/hupe1980/tfrec/tfrecord"
)

// State is the lifecycle state of a Writer.
type State int

const (
	// StateUnopened is the state of a new Writer.
	StateUnopened State = iota
	// StateOpen is the state between Open and Close.
	StateOpen
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Writer appends one TFRecord frame per row to a single blob.
//
// The lifecycle is UNOPENED -> OPEN -> CLOSED with no way back. A row is
// fully encoded before any of its bytes reach the sink, so a row that fails
// to encode leaves the sink untouched. Frames are buffered and handed to
// the sink whole; after any failure the published blob holds exactly the
// rows before RowError.Row. A Writer is not safe for concurrent use.
type Writer struct {
	store blobstore.Store
	name  string
	opts  options
	log   *Logger

	state State
	blob  blobstore.WritableBlob
	rec   *tfrecord.Writer
	sum   hash.Hash32

	// pending holds frames not yet written to the blob; ends holds the end
	// offset of each of them.
	pending bytes.Buffer
	ends    []int

	scratch      []byte
	geneWidth    int
	tokenWidth   int
	rows         int
	flushedRows  int
	flushedBytes int64
	failed       bool
	torn         bool
	sinkErr      error
}

// NewWriter returns an unopened Writer for name in store.
func NewWriter(store blobstore.Store, name string, opts ...Option) *Writer {
	o := applyOptions(opts)
	return &Writer{
		store:      store,
		name:       name,
		opts:       o,
		log:        o.logger.WithSink(name),
		geneWidth:  -1,
		tokenWidth: -1,
	}
}

// Open creates the output blob.
func (w *Writer) Open(ctx context.Context) error {
	switch w.state {
	case StateOpen:
		return ErrAlreadyOpen
	case StateClosed:
		return ErrClosed
	}

	blob, err := w.store.Create(ctx, w.name)
	w.log.LogOpen(ctx, w.name, err)
	if err != nil {
		return fmt.Errorf("tfrec: create %q: %w", w.name, err)
	}

	w.blob = blob
	w.sum = ihash.NewCRC32C()
	w.rec = tfrecord.NewWriter(&w.pending)
	w.state = StateOpen
	return nil
}

// WriteRow encodes r and appends it as the next record.
//
// Failures are returned as *RowError. Its Row is the index the row would
// have had, or, when the sink fails, the first row that did not reach it.
// Rows must all have the widths of the first row written. After a sink
// failure every further call fails with the same cause.
func (w *Writer) WriteRow(ctx context.Context, r Row) (err error) {
	switch w.state {
	case StateUnopened:
		return ErrNotOpen
	case StateClosed:
		return ErrClosed
	}

	idx := w.rows
	start := time.Now()
	n := 0
	defer func() {
		w.opts.metricsCollector.RecordRow(n, time.Since(start), err)
		w.log.LogRow(ctx, idx, n, err)
		if err != nil {
			w.failed = true
			err = &RowError{Row: idx, Err: err}
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if w.sinkErr != nil {
		return w.sinkErr
	}

	if w.geneWidth < 0 {
		w.geneWidth, w.tokenWidth = len(r.SelectedGenes), len(r.SmilesTokens)
	}
	if err = checkWidths(r, w.geneWidth, w.tokenWidth); err != nil {
		return err
	}

	w.scratch, err = r.Example().AppendMarshal(w.scratch[:0])
	if err != nil {
		return err
	}

	n, err = w.rec.Write(w.scratch)
	if err != nil {
		return err
	}
	w.ends = append(w.ends, w.pending.Len())
	w.rows++

	if w.pending.Len() >= w.opts.bufferSize {
		if err = w.flush(); err != nil {
			idx, n = w.rows, 0
			return err
		}
	}
	return nil
}

// flush writes the pending frames to the blob. On failure the frames that
// did not fully reach the blob are dropped and rows is rewound to the
// flushed count. A write that stops inside a frame leaves the blob torn and
// nothing of it can be kept.
func (w *Writer) flush() error {
	if w.pending.Len() == 0 {
		return nil
	}

	data := w.pending.Bytes()
	n, err := w.blob.Write(data)
	n = min(max(n, 0), len(data))
	w.sum.Write(data[:n])

	whole := 0
	for whole < len(w.ends) && w.ends[whole] <= n {
		whole++
	}
	boundary := n == 0 || (whole > 0 && w.ends[whole-1] == n)

	w.flushedRows += whole
	w.flushedBytes += int64(n)
	w.pending.Reset()
	w.ends = w.ends[:0]

	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.sinkErr = err
		if !boundary {
			w.torn = true
			w.flushedRows, w.flushedBytes = 0, 0
		}
		w.rows = w.flushedRows
		return err
	}
	return nil
}

// Close flushes buffered records and publishes the blob. If the final
// flush fails Close returns a *RowError naming the first row that was
// lost; the rows before it are still published unless the blob holds a
// partial record, in which case it is discarded. Closing an unopened
// Writer only moves it to CLOSED; a second Close returns ErrClosed.
func (w *Writer) Close() error {
	switch w.state {
	case StateClosed:
		return ErrClosed
	case StateUnopened:
		w.state = StateClosed
		return nil
	}
	w.state = StateClosed

	var err error
	if w.sinkErr == nil {
		if ferr := w.flush(); ferr != nil {
			w.failed = true
			err = &RowError{Row: w.rows, Err: ferr}
		}
	}

	discarded := w.torn
	if discarded {
		err = errors.Join(err, w.blob.Abort())
	} else {
		err = errors.Join(err, w.blob.Close())
	}
	if err != nil {
		err = fmt.Errorf("tfrec: close %q: %w", w.name, err)
	}
	w.log.LogClose(context.Background(), w.rows, w.Bytes(), discarded, err)
	return err
}

// Abort discards the blob so nothing is published. It is a no-op once the
// Writer is closed.
func (w *Writer) Abort() error {
	switch w.state {
	case StateClosed:
		return nil
	case StateUnopened:
		w.state = StateClosed
		return nil
	}
	w.state = StateClosed
	w.pending.Reset()
	w.ends = w.ends[:0]

	err := w.blob.Abort()
	if err != nil {
		err = fmt.Errorf("tfrec: abort %q: %w", w.name, err)
	}
	w.log.LogClose(context.Background(), w.rows, w.Bytes(), true, err)
	return err
}

// State returns the lifecycle state.
func (w *Writer) State() State {
	return w.state
}

// Rows returns the number of rows accepted so far. After a sink failure it
// counts only the rows that reached the sink.
func (w *Writer) Rows() int {
	return w.rows
}

// Bytes returns the number of bytes accepted so far, framing included.
// After a sink failure it counts only the bytes of whole records that
// reached the sink.
func (w *Writer) Bytes() int64 {
	if w.torn {
		return 0
	}
	return w.flushedBytes + int64(w.pending.Len())
}

// Failed reports whether any WriteRow call has failed.
func (w *Writer) Failed() bool {
	return w.failed
}

// Manifest describes the records appended so far.
func (w *Writer) Manifest() *Manifest {
	var crc uint32
	if w.sum != nil {
		crc = w.sum.Sum32()
	}
	return newManifest(w.name, w.opts.codec.Name(), int64(w.rows), w.Bytes(), crc,
		max(w.geneWidth, 0), max(w.tokenWidth, 0))
}

// WriteDataset writes every row of d to name in store, in row order.
//
// Shapes are validated before the sink is opened. The sink is opened once
// and released on every path. When a row fails the error is a *RowError
// and, unless WithDiscardOnError is set, the rows before it are flushed and
// published.
func WriteDataset(ctx context.Context, store blobstore.Store, name string, d *Dataset, opts ...Option) (m *Manifest, err error) {
	o := applyOptions(opts)
	log := o.logger.WithSink(name)
	start := time.Now()

	w := NewWriter(store, name, opts...)
	defer func() {
		o.metricsCollector.RecordRun(w.Rows(), w.Bytes(), time.Since(start), err)
		log.LogRun(ctx, name, w.Rows(), w.Bytes(), time.Since(start), err)
	}()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	w.geneWidth, w.tokenWidth = d.GeneWidth(), d.TokenWidth()

	if err := w.Open(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if w.State() == StateClosed {
			return
		}
		if err != nil && o.discardOnError {
			_ = w.Abort()
			return
		}
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(cerr, err)
		}
	}()

	for i, row := range d.All() {
		if err := w.WriteRow(ctx, row); err != nil {
			log.DebugContext(ctx, "stopping at failed row", "row", i)
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	m = w.Manifest()
	if o.writeManifest {
		if err := m.store(ctx, store, o.codec); err != nil {
			return nil, err
		}
	}
	return m, nil
}
