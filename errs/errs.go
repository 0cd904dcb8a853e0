// Package errs defines the error taxonomy shared across the tuple codec.
//
// Callers distinguish failure kinds with errors.Is against the sentinel
// values below; structured variants (MalformedTupleError, OverflowError)
// additionally carry the byte offset and/or tag involved and unwrap to their
// sentinel so errors.Is still works through fmt.Errorf("...: %w", ...)
// wrapping.
package errs

import (
	"errors"
	"fmt"

	"github.com/tupledb/tuple/format"
)

// Sentinel errors. Compare with errors.Is, not ==, since most call sites wrap
// these with additional context via fmt.Errorf("...: %w", ErrX).
var (
	// ErrMalformedTuple indicates truncated input, a bad zero-escape, an
	// unknown tag byte, or invalid UTF-8 in a unicode string segment.
	ErrMalformedTuple = errors.New("malformed tuple")
	// ErrOverflow indicates a numeric decode could not represent the value
	// in the requested width, or an integer payload exceeded 8 bytes.
	ErrOverflow = errors.New("overflow")
	// ErrOutOfRange indicates an indexed tuple access beyond the tuple's
	// length. This is a programmer error, not a decode failure.
	ErrOutOfRange = errors.New("tuple index out of range")
	// ErrUnsupported indicates the encoder was asked to serialize a runtime
	// type with no registered codec.
	ErrUnsupported = errors.New("unsupported type")
)

// MalformedTupleError is ErrMalformedTuple annotated with the byte offset at
// which the parse failed and, where known, the tag byte that triggered it.
type MalformedTupleError struct {
	Offset int
	Tag    format.Tag
	Reason string
}

func (e *MalformedTupleError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("malformed tuple at offset %d (tag %s)", e.Offset, e.Tag)
	}

	return fmt.Sprintf("malformed tuple at offset %d (tag %s): %s", e.Offset, e.Tag, e.Reason)
}

func (e *MalformedTupleError) Unwrap() error { return ErrMalformedTuple }

// NewMalformed builds a MalformedTupleError at the given offset and tag.
func NewMalformed(offset int, tag format.Tag, reason string) error {
	return &MalformedTupleError{Offset: offset, Tag: tag, Reason: reason}
}

// OverflowError is ErrOverflow annotated with the expected and actual tag
// involved in a failed numeric narrowing/widening decode.
type OverflowError struct {
	Expected format.Tag
	Actual   format.Tag
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow decoding tag %s as %s", e.Actual, e.Expected)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// NewOverflow builds an OverflowError for a decode from actual to expected.
func NewOverflow(expected, actual format.Tag) error {
	return &OverflowError{Expected: expected, Actual: actual}
}
