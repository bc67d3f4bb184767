package tfrecord

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Golden(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	n, err := w.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	n, err = w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x29, 0x03, 0x98, 0x07, 0xd8, 0xea, 0x82, 0xa2,
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xb0, 0x99, 0x49, 0x0e, 0x61, 0x62, 0x63, 0x6e, 0x57, 0xf1, 0x21,
	}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, int64(2), w.Count())
	assert.Equal(t, int64(len(want)), w.Size())
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	records := [][]byte{
		[]byte("first"),
		{},
		bytes.Repeat([]byte{0xab}, 70000), // larger than the bufio buffer
		[]byte("last"),
	}
	for _, rec := range records {
		_, err := w.Write(rec)
		require.NoError(t, err)
	}

	r := NewReader(&buf)
	for i, want := range records {
		got, err := r.Next()
		require.NoError(t, err, "record %d", i)
		assert.Equal(t, want, got, "record %d", i)
	}

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(len(records)), r.Count())
	assert.Equal(t, w.Size(), r.Offset())
}

func TestReader_EmptyStream(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)

	n, err := Count(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestReader_Truncated(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, _ = w.Write([]byte("complete"))
	_, _ = w.Write([]byte("partial"))
	full := buf.Bytes()
	first := int(FrameSize(len("complete")))

	for _, cut := range []int{first + 1, first + HeaderSize, first + HeaderSize + 3, len(full) - 1} {
		t.Run(fmt.Sprintf("cut=%d", cut), func(t *testing.T) {
			r := NewReader(bytes.NewReader(full[:cut]))

			got, err := r.Next()
			require.NoError(t, err)
			assert.Equal(t, []byte("complete"), got)

			_, err = r.Next()
			assert.ErrorIs(t, err, ErrTruncated)
			assert.Equal(t, int64(first), r.Offset())
		})
	}
}

func TestReader_Corruption(t *testing.T) {
	frame := func() []byte {
		var buf bytes.Buffer
		_, _ = NewWriter(&buf).Write([]byte("payload"))
		return buf.Bytes()
	}

	t.Run("LengthCRC", func(t *testing.T) {
		b := frame()
		b[0] ^= 0x01
		_, err := NewReader(bytes.NewReader(b)).Next()
		assert.ErrorIs(t, err, ErrInvalidLengthCRC)
	})

	t.Run("DataCRC", func(t *testing.T) {
		b := frame()
		b[HeaderSize] ^= 0x01
		_, err := NewReader(bytes.NewReader(b)).Next()
		assert.ErrorIs(t, err, ErrInvalidDataCRC)
	})

	t.Run("DataCRCSkipped", func(t *testing.T) {
		b := frame()
		b[HeaderSize] ^= 0x01
		got, err := NewReader(bytes.NewReader(b), WithVerifyChecksums(false)).Next()
		require.NoError(t, err)
		assert.Len(t, got, len("payload"))
	})

	t.Run("FooterCRC", func(t *testing.T) {
		b := frame()
		b[len(b)-1] ^= 0x80
		_, err := NewReader(bytes.NewReader(b)).Next()
		assert.ErrorIs(t, err, ErrInvalidDataCRC)
	})
}

func TestReader_MaxRecordSize(t *testing.T) {
	var buf bytes.Buffer
	_, _ = NewWriter(&buf).Write(make([]byte, 100))

	_, err := NewReader(&buf, WithMaxRecordSize(99)).Next()
	assert.ErrorIs(t, err, ErrRecordTooLarge)
}

type failingWriter struct {
	limit int
	n     int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n+len(p) > f.limit {
		return 0, errors.New("disk full")
	}
	f.n += len(p)
	return len(p), nil
}

func TestWriter_PropagatesErrors(t *testing.T) {
	w := NewWriter(&failingWriter{limit: HeaderSize + 2})

	n, err := w.Write([]byte("abcdef"))
	require.Error(t, err)
	assert.Equal(t, HeaderSize, n)
	assert.Equal(t, int64(0), w.Count())
}

func TestCount(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := 0; i < 85; i++ {
		_, err := w.Write([]byte{byte(i)})
		require.NoError(t, err)
	}

	n, err := Count(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(85), n)
}

func BenchmarkWriter(b *testing.B) {
	payload := make([]byte, 9200)
	w := NewWriter(io.Discard)

	b.SetBytes(int64(len(payload)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Write(payload); err != nil {
			b.Fatal(err)
		}
	}
}
