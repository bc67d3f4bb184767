// Package blobstore provides the output sinks that TFRecord files are written to.
//
// A Store hands out WritableBlobs for streaming appends and Blobs for reading
// a finished file back. Implementations must be safe for concurrent use; a
// single WritableBlob is owned by one writer.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, published atomically by rename, read via mmap
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Write Lifecycle
//
// A blob returned by Create is not visible to Open until Close succeeds.
// Abort discards everything written so far:
//
//	w, err := store.Create(ctx, "TEST.tfrecords")
//	if err != nil {
//	    return err
//	}
//	if _, err := w.Write(frame); err != nil {
//	    _ = w.Abort()
//	    return err
//	}
//	return w.Close()
package blobstore
