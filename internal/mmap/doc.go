// Package mmap provides read-only memory-mapped file access.
//
// The local blob store maps finished TFRecord files so that verification
// and inspection read records straight out of the page cache:
//
//	m, err := mmap.Open("TEST.tfrecords")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// The slice returned by Bytes is valid until Close. Empty files map to a
// nil slice without a system call.
package mmap
