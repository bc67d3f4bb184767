package tfrecord

import (
	"encoding/binary"
	"io"

	"github.com/hupe1980/tfrec/internal/hash"
)

// Writer appends framed records to an underlying io.Writer.
//
// Writer does no buffering of its own; wrap the destination in a
// bufio.Writer when it is a file or network stream. A Writer is not safe
// for concurrent use.
type Writer struct {
	w      io.Writer
	header [HeaderSize]byte
	footer [FooterSize]byte
	count  int64
	size   int64
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one record holding p and returns the number of bytes
// written to the underlying writer, framing included.
func (w *Writer) Write(p []byte) (int, error) {
	putHeader(w.header[:], uint64(len(p)), hash.MaskedCRC32C)
	binary.LittleEndian.PutUint32(w.footer[:], hash.MaskedCRC32C(p))

	written := 0
	for _, chunk := range [][]byte{w.header[:], p, w.footer[:]} {
		n, err := w.w.Write(chunk)
		written += n
		w.size += int64(n)
		if err != nil {
			return written, err
		}
	}

	w.count++
	return written, nil
}

// Count returns the number of records written.
func (w *Writer) Count() int64 {
	return w.count
}

// Size returns the number of bytes written, framing included.
func (w *Writer) Size() int64 {
	return w.size
}
