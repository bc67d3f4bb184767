package tfrecord

import (
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize is the length prefix plus its checksum.
	HeaderSize = 8 + 4
	// FooterSize is the payload checksum.
	FooterSize = 4
	// Overhead is the number of framing bytes added to every record.
	Overhead = HeaderSize + FooterSize

	// DefaultMaxRecordSize bounds the payload length a Reader accepts.
	DefaultMaxRecordSize = 256 << 20
)

var (
	// ErrTruncated is returned when the stream ends inside a frame.
	ErrTruncated = errors.New("tfrecord: truncated record")
	// ErrInvalidLengthCRC is returned when the length checksum does not match.
	ErrInvalidLengthCRC = errors.New("tfrecord: invalid length checksum")
	// ErrInvalidDataCRC is returned when the payload checksum does not match.
	ErrInvalidDataCRC = errors.New("tfrecord: invalid data checksum")
	// ErrRecordTooLarge is returned when a frame announces a payload above the limit.
	ErrRecordTooLarge = errors.New("tfrecord: record too large")
)

// FrameSize returns the on-disk size of a record with n payload bytes.
func FrameSize(n int) int64 {
	return int64(n) + Overhead
}

func putHeader(dst []byte, n uint64, maskedCRC func([]byte) uint32) {
	binary.LittleEndian.PutUint64(dst[0:8], n)
	binary.LittleEndian.PutUint32(dst[8:12], maskedCRC(dst[0:8]))
}
