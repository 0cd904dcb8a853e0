// Package tuple provides the tuple layer: a self-describing binary codec
// that encodes heterogeneous sequences of typed values into byte strings
// whose unsigned lexicographic order matches the tuples' own element-wise
// order. That property is what lets an ordered key-value store implement
// range scans over structured keys: a subspace of keys sharing a tuple
// prefix forms a contiguous byte range.
//
// # Core Features
//
//   - A closed, cross-implementation wire format (package codec): null,
//     byte/unicode strings, nested tuples, variable-width signed integers,
//     IEEE floats, and 64/128-bit UUIDs, all order-preserving.
//   - A polymorphic, immutable Tuple value model (package tupleval) with
//     append, concat, prefix sharing, slicing, and structural equality/hash.
//   - Partial decoding: pull the first, last, or nth element without
//     materializing the whole tuple.
//   - Range derivation and batch packing for keys that share a common
//     subspace prefix (package rangekey).
//
// # Basic Usage
//
// Building and packing a tuple:
//
//	import "github.com/tupledb/tuple"
//
//	key := tuple.New(tuple.Str("users"), tuple.Int(42), tuple.Str("email"))
//	packed := key.ToBytes()
//
// Unpacking bytes back into a tuple:
//
//	decoded, err := tuple.FromBytes(packed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name, _ := decoded.Get(0)
//	s, _ := name.AsString()
//
// Deriving the key range for a subspace:
//
//	r, err := tuple.Range(tuple.New(tuple.Str("users")).ToBytes())
//	// r.Begin, r.End bound every key for any tuple starting with "users".
//
// # Package Structure
//
// This package is a thin convenience wrapper around tupleval (the value
// model) and rangekey (range derivation and batch packing). Most
// applications only need the names re-exported here; reach into tupleval or
// rangekey directly for advanced variant construction or batch packing.
package tuple

import (
	"github.com/tupledb/tuple/rangekey"
	"github.com/tupledb/tuple/tupleval"
)

// Tuple is an ordered, heterogeneous, immutable sequence of Values. See
// tupleval.Tuple for the full operation set.
type Tuple = tupleval.Tuple

// Value is a single tuple element. See tupleval.Value for accessors.
type Value = tupleval.Value

// RangeOption configures Range; currently only WithNextPrefixEnd.
type RangeOption = rangekey.RangeOption

// Null returns the null value.
func Null() Value { return tupleval.Null() }

// Bytes returns a byte-string value.
func Bytes(b []byte) Value { return tupleval.Bytes(b) }

// Str returns a unicode-string value.
func Str(s string) Value { return tupleval.Str(s) }

// Int returns a signed integer value.
func Int(v int64) Value { return tupleval.Int(v) }

// Uint returns an unsigned integer value.
func Uint(v uint64) Value { return tupleval.Uint(v) }

// Float32 returns a single-precision float value.
func Float32(v float32) Value { return tupleval.Float32(v) }

// Float64 returns a double-precision float value.
func Float64(v float64) Value { return tupleval.Float64(v) }

// UUID128 returns a 128-bit UUID value.
func UUID128(u [16]byte) Value { return tupleval.UUID128(u) }

// UUID64 returns a 64-bit local UUID value.
func UUID64(u [8]byte) Value { return tupleval.UUID64(u) }

// Nested returns a value wrapping another tuple.
func Nested(t Tuple) Value { return tupleval.Nested(t) }

// New builds a tuple from the given values.
func New(values ...Value) Tuple { return tupleval.New(values...) }

// Empty returns the zero-length tuple.
func Empty() Tuple { return tupleval.Empty() }

// WithPrefix returns a tuple that packs prefix verbatim ahead of tail's
// elements, for subspace keys whose prefix need not itself parse as a tuple.
func WithPrefix(prefix []byte, tail Tuple) Tuple { return tupleval.WithPrefix(prefix, tail) }

// FromBytes parses data as a packed tuple. The returned tuple borrows data
// for its lifetime.
func FromBytes(data []byte) (Tuple, error) { return tupleval.FromBytes(data) }

// CountElements reports the number of top-level elements packed in data,
// without decoding any of them.
func CountElements(data []byte) (int, error) { return tupleval.CountElements(data) }

// From converts a dynamically typed Go value into a Value.
func From(x any) (Value, error) { return tupleval.From(x) }

// Range derives the half-open byte range containing every packed tuple that
// extends the given packed prefix. The default convention is begin =
// prefix||0x00, end = prefix||0xFF; pass WithNextPrefixEnd to instead
// increment the prefix's last non-0xFF byte.
func Range(prefix []byte, opts ...RangeOption) (rangekey.Range, error) {
	return rangekey.Derive(prefix, opts...)
}

// WithNextPrefixEnd selects the next_prefix(p) end convention for Range,
// instead of the default p||0xFF.
func WithNextPrefixEnd() RangeOption { return rangekey.WithNextPrefixEnd() }

// PackMany packs prefix||item for every item, sharing one backing buffer. A
// null item's slice is empty and does not disturb neighboring cursors.
func PackMany(prefix []byte, items []Value) ([][]byte, error) {
	return rangekey.PackMany(prefix, items)
}
