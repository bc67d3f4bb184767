package tfrec

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOpen is returned when writing to a Writer that was never opened.
	ErrNotOpen = errors.New("tfrec: writer not open")
	// ErrClosed is returned when using a Writer after Close or Abort.
	ErrClosed = errors.New("tfrec: writer closed")
	// ErrAlreadyOpen is returned when Open is called twice.
	ErrAlreadyOpen = errors.New("tfrec: writer already open")
	// ErrManifestMismatch is returned when a file does not match its manifest.
	ErrManifestMismatch = errors.New("tfrec: file does not match manifest")
)

// RowError reports a failure while encoding, appending or decoding one row.
//
// Rows before Row are unaffected. The cause can be accessed via errors.Unwrap.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("tfrec: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ShapeError indicates that a field does not have the expected size.
//
// For row counts Expected and Actual are numbers of rows; for widths they
// are numbers of elements per row.
type ShapeError struct {
	Field    string
	Expected int
	Actual   int
	cause    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tfrec: shape mismatch for %s: expected %d, got %d", e.Field, e.Expected, e.Actual)
}

func (e *ShapeError) Unwrap() error { return e.cause }

// FieldError indicates a record whose feature is missing or mistyped.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tfrec: field %s: %s", e.Field, e.Reason)
}
