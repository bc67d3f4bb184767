package tfrecord

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/tfrec/internal/conv"
	"github.com/hupe1980/tfrec/internal/hash"
)

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxRecordSize sets the largest payload the Reader accepts.
func WithMaxRecordSize(n uint64) ReaderOption {
	return func(r *Reader) {
		r.maxSize = n
	}
}

// WithVerifyChecksums toggles payload checksum verification. The length
// checksum is always verified since a corrupt length cannot be skipped.
func WithVerifyChecksums(verify bool) ReaderOption {
	return func(r *Reader) {
		r.verify = verify
	}
}

// Reader iterates over framed records.
type Reader struct {
	r       *bufio.Reader
	header  [HeaderSize]byte
	footer  [FooterSize]byte
	offset  int64
	count   int64
	maxSize uint64
	verify  bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	rd := &Reader{
		r:       br,
		maxSize: DefaultMaxRecordSize,
		verify:  true,
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Next returns the payload of the next record. It returns io.EOF only when
// the stream ends exactly at a record boundary.
func (r *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(r.r, r.header[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %d of %d header bytes at offset %d", ErrTruncated, n, HeaderSize, r.offset)
		}
		return nil, err
	}

	length := binary.LittleEndian.Uint64(r.header[0:8])
	if binary.LittleEndian.Uint32(r.header[8:12]) != hash.MaskedCRC32C(r.header[0:8]) {
		return nil, fmt.Errorf("%w at offset %d", ErrInvalidLengthCRC, r.offset)
	}
	if length > r.maxSize {
		return nil, fmt.Errorf("%w: %d bytes at offset %d (limit %d)", ErrRecordTooLarge, length, r.offset, r.maxSize)
	}

	size, err := conv.Uint64ToInt(length)
	if err != nil {
		return nil, fmt.Errorf("%w at offset %d", err, r.offset)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, r.truncated(err)
	}
	if _, err := io.ReadFull(r.r, r.footer[:]); err != nil {
		return nil, r.truncated(err)
	}
	if r.verify && binary.LittleEndian.Uint32(r.footer[:]) != hash.MaskedCRC32C(data) {
		return nil, fmt.Errorf("%w at offset %d", ErrInvalidDataCRC, r.offset)
	}

	r.offset += FrameSize(len(data))
	r.count++
	return data, nil
}

func (r *Reader) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w at offset %d", ErrTruncated, r.offset)
	}
	return err
}

// Offset returns the offset just past the last valid record.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Count returns the number of records read.
func (r *Reader) Count() int64 {
	return r.count
}

// Count reads a whole stream and returns the number of valid records.
func Count(rd io.Reader, opts ...ReaderOption) (int64, error) {
	r := NewReader(rd, opts...)
	for {
		if _, err := r.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return r.Count(), nil
			}
			return r.Count(), err
		}
	}
}
