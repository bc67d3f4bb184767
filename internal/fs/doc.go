// Package fs provides the filesystem abstraction behind the local blob store.
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: open, remove, rename, stat, mkdir and readdir
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper that injects write, sync and close failures
//
// Tests use FaultyFS to check that a failing append surfaces as an error
// for the offending row and leaves earlier records intact:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tfrecords", fs.Fault{FailAfterBytes: 4096})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// Filesystem calls take no context.Context; they are not interruptible at
// the syscall level. Remote sinks (S3, MinIO) take a context instead.
package fs
