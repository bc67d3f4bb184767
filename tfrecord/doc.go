// Package tfrecord reads and writes the TFRecord container format.
//
// A TFRecord file is a plain concatenation of frames:
//
//	uint64  length            little endian
//	uint32  masked CRC32C of the 8 length bytes
//	byte    data[length]
//	uint32  masked CRC32C of data
//
// Frames are independent: any frame can be decoded once its start offset is
// known, and an empty file is a valid stream of zero records. The payload
// is opaque to this package; tf.train.Example messages are produced by the
// example package.
//
// # Writing
//
//	w := tfrecord.NewWriter(f)
//	for _, rec := range records {
//	    if _, err := w.Write(rec); err != nil { ... }
//	}
//
// # Reading
//
//	r := tfrecord.NewReader(f)
//	for {
//	    rec, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil { ... } // ErrTruncated, ErrInvalidDataCRC, ...
//	}
package tfrecord
