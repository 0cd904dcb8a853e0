package tupleval

import (
	"fmt"

	"github.com/tupledb/tuple/codec"
	"github.com/tupledb/tuple/errs"
)

// smallMax is the largest arity the inline small-tuple variant holds before
// New falls back to the list-backed variant.
const smallMax = 8

// emptyTuple is the length-0 variant.
type emptyTuple struct{}

func (emptyTuple) Len() int { return 0 }

func (emptyTuple) Get(i int) (Value, error) {
	return Value{}, fmt.Errorf("tupleval: index %d: %w", i, errs.ErrOutOfRange)
}

func (t emptyTuple) Slice(_, _ int) Tuple       { return t }
func (t emptyTuple) Append(v Value) Tuple       { return New(v) }
func (t emptyTuple) Concat(other Tuple) Tuple   { return other }
func (t emptyTuple) Iter() *Iterator            { return newIterator(t) }
func (t emptyTuple) Equal(other Tuple) bool     { return other.Len() == 0 }
func (t emptyTuple) Hash() uint64               { return hashTuple(t) }
func (t emptyTuple) ToBytes() []byte            { return []byte{} }
func (t emptyTuple) ToBytesWithPrefix(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)

	return out
}
func (t emptyTuple) String() string { return "()" }

// smallTuple holds up to smallMax values inline, avoiding a heap-allocated
// slice for the common case of short tuples (keys are usually a handful of
// fields).
type smallTuple struct {
	values [smallMax]Value
	n      int8
}

func (t smallTuple) Len() int { return int(t.n) }

func (t smallTuple) Get(i int) (Value, error) {
	if i < 0 || i >= int(t.n) {
		return Value{}, fmt.Errorf("tupleval: index %d (len %d): %w", i, t.n, errs.ErrOutOfRange)
	}

	return t.values[i], nil
}

func (t smallTuple) Slice(from, to int) Tuple {
	from, to = clampSlice(from, to, int(t.n))
	if from == to {
		return emptyTuple{}
	}

	return New(t.values[from:to]...)
}

func (t smallTuple) Append(v Value) Tuple {
	if int(t.n) < smallMax {
		out := t
		out.values[out.n] = v
		out.n++

		return out
	}

	values := make([]Value, 0, int(t.n)+1)
	values = append(values, t.values[:t.n]...)
	values = append(values, v)

	return listTuple{values: values}
}

func (t smallTuple) Concat(other Tuple) Tuple {
	return concatGeneric(t, other)
}

func (t smallTuple) Iter() *Iterator { return newIterator(t) }
func (t smallTuple) Equal(other Tuple) bool { return equalTuples(t, other) }
func (t smallTuple) Hash() uint64           { return hashTuple(t) }
func (t smallTuple) ToBytes() []byte        { return toBytes(t) }
func (t smallTuple) ToBytesWithPrefix(p []byte) []byte {
	return toBytesWithPrefix(t, p)
}
func (t smallTuple) String() string { return stringTuple(t) }

// listTuple holds an arbitrary number of values in a slice.
type listTuple struct {
	values []Value
}

func (t listTuple) Len() int { return len(t.values) }

func (t listTuple) Get(i int) (Value, error) {
	if i < 0 || i >= len(t.values) {
		return Value{}, fmt.Errorf("tupleval: index %d (len %d): %w", i, len(t.values), errs.ErrOutOfRange)
	}

	return t.values[i], nil
}

func (t listTuple) Slice(from, to int) Tuple {
	from, to = clampSlice(from, to, len(t.values))
	if from == to {
		return emptyTuple{}
	}

	return New(t.values[from:to]...)
}

func (t listTuple) Append(v Value) Tuple {
	out := make([]Value, len(t.values)+1)
	copy(out, t.values)
	out[len(t.values)] = v

	return listTuple{values: out}
}

func (t listTuple) Concat(other Tuple) Tuple {
	return concatGeneric(t, other)
}

func (t listTuple) Iter() *Iterator { return newIterator(t) }
func (t listTuple) Equal(other Tuple) bool { return equalTuples(t, other) }
func (t listTuple) Hash() uint64           { return hashTuple(t) }
func (t listTuple) ToBytes() []byte        { return toBytes(t) }
func (t listTuple) ToBytesWithPrefix(p []byte) []byte {
	return toBytesWithPrefix(t, p)
}
func (t listTuple) String() string { return stringTuple(t) }

// prefixTailTuple logically concatenates an opaque byte prefix with another
// tuple: it packs as prefix || tail.ToBytes(), but indexing, length, and
// iteration see only tail's elements. Used for subspace keys, where the
// prefix is a previously packed tuple (or any opaque bytes) shared by many
// keys.
type prefixTailTuple struct {
	prefix []byte
	tail   Tuple
}

func (t prefixTailTuple) Len() int { return t.tail.Len() }

func (t prefixTailTuple) Get(i int) (Value, error) { return t.tail.Get(i) }

func (t prefixTailTuple) Slice(from, to int) Tuple { return t.tail.Slice(from, to) }

func (t prefixTailTuple) Append(v Value) Tuple {
	return prefixTailTuple{prefix: t.prefix, tail: t.tail.Append(v)}
}

func (t prefixTailTuple) Concat(other Tuple) Tuple {
	return prefixTailTuple{prefix: t.prefix, tail: t.tail.Concat(other)}
}

func (t prefixTailTuple) Iter() *Iterator { return t.tail.Iter() }
func (t prefixTailTuple) Equal(other Tuple) bool { return equalTuples(t, other) }
func (t prefixTailTuple) Hash() uint64           { return hashTuple(t.tail) }

func (t prefixTailTuple) ToBytes() []byte {
	return toBytesWithPrefix(t.tail, t.prefix)
}

func (t prefixTailTuple) ToBytesWithPrefix(p []byte) []byte {
	combined := make([]byte, 0, len(p)+len(t.prefix))
	combined = append(combined, p...)
	combined = append(combined, t.prefix...)

	return toBytesWithPrefix(t.tail, combined)
}

func (t prefixTailTuple) String() string { return t.tail.String() }

// lazyTuple is backed by an already-packed byte slice and an array of
// per-element byte offsets (len(offsets) == Len()+1, offsets[i]..offsets[i+1]
// bounds element i). Elements are decoded on demand in Get; the tuple
// borrows data for as long as it lives.
type lazyTuple struct {
	data    []byte
	offsets []int
}

func (t lazyTuple) Len() int { return len(t.offsets) - 1 }

func (t lazyTuple) Get(i int) (Value, error) {
	if i < 0 || i >= t.Len() {
		return Value{}, fmt.Errorf("tupleval: index %d (len %d): %w", i, t.Len(), errs.ErrOutOfRange)
	}

	return t.decodeAt(i)
}

func (t lazyTuple) decodeAt(i int) (Value, error) {
	raw := t.data[t.offsets[i]:t.offsets[i+1]]
	r := codec.NewReader(raw)
	seg, ok, err := r.ParseNext()
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, fmt.Errorf("tupleval: empty element slice at index %d: %w", i, errs.ErrMalformedTuple)
	}

	return fromSegment(seg)
}

func (t lazyTuple) Slice(from, to int) Tuple {
	from, to = clampSlice(from, to, t.Len())
	if from == to {
		return emptyTuple{}
	}

	values := make([]Value, 0, to-from)
	for i := from; i < to; i++ {
		v, err := t.decodeAt(i)
		if err != nil {
			// Malformed bytes would already have failed in FromBytes; this
			// path is unreachable for tuples obtained that way.
			continue
		}
		values = append(values, v)
	}

	return New(values...)
}

func (t lazyTuple) Append(v Value) Tuple {
	return materialize(t).Append(v)
}

func (t lazyTuple) Concat(other Tuple) Tuple {
	return concatGeneric(t, other)
}

func (t lazyTuple) Iter() *Iterator { return newIterator(t) }
func (t lazyTuple) Equal(other Tuple) bool { return equalTuples(t, other) }
func (t lazyTuple) Hash() uint64           { return hashTuple(t) }
func (t lazyTuple) ToBytes() []byte {
	out := make([]byte, len(t.data))
	copy(out, t.data)

	return out
}
func (t lazyTuple) ToBytesWithPrefix(p []byte) []byte {
	out := make([]byte, 0, len(p)+len(t.data))
	out = append(out, p...)
	out = append(out, t.data...)

	return out
}
func (t lazyTuple) String() string { return stringTuple(t) }

// materialize copies every element of t into a fresh in-memory variant,
// used before mutating operations (Append) on the lazy variant.
func materialize(t Tuple) Tuple {
	values := make([]Value, 0, t.Len())
	it := t.Iter()
	for it.Next() {
		values = append(values, it.Value())
	}

	return New(values...)
}

// concatGeneric is the shared Concat fallback for variants with no cheaper
// representation: materialize both sides into one list.
func concatGeneric(a, b Tuple) Tuple {
	values := make([]Value, 0, a.Len()+b.Len())
	it := a.Iter()
	for it.Next() {
		values = append(values, it.Value())
	}
	it = b.Iter()
	for it.Next() {
		values = append(values, it.Value())
	}

	return New(values...)
}
