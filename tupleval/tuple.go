package tupleval

import (
	"fmt"
	"strings"
	"time"

	"github.com/tupledb/tuple/codec"
	"github.com/tupledb/tuple/errs"
	"github.com/tupledb/tuple/internal/hash"
)

// Tuple is an ordered, heterogeneous, immutable sequence of Values.
//
// All Tuple implementations satisfy: equality and hash are structural over
// element values, independent of which concrete variant represents the
// tuple; Append and Concat return a new Tuple and never mutate the
// receiver; ToBytes followed by FromBytes round-trips the value sequence.
type Tuple interface {
	// Len returns the number of elements.
	Len() int
	// Get returns the element at i, or ErrOutOfRange if i is outside [0, Len()).
	Get(i int) (Value, error)
	// Slice returns the half-open sub-tuple [from, to), clamped to the
	// tuple's bounds; returns an empty tuple if from >= to after clamping.
	Slice(from, to int) Tuple
	// Append returns a new tuple with v added at the end.
	Append(v Value) Tuple
	// Concat returns a new tuple that is the receiver followed by other.
	Concat(other Tuple) Tuple
	// Iter returns an Iterator over the tuple's elements, from the start.
	Iter() *Iterator
	// Equal reports structural equality against another tuple.
	Equal(other Tuple) bool
	// Hash returns a structural hash consistent with Equal: equal tuples
	// always hash identically, regardless of variant.
	Hash() uint64
	// ToBytes packs the tuple to its canonical wire representation.
	ToBytes() []byte
	// ToBytesWithPrefix packs the tuple with an opaque prefix prepended
	// verbatim ahead of the packed elements.
	ToBytesWithPrefix(prefix []byte) []byte
	// String renders the tuple for debugging, as "(v1, v2, ...)".
	String() string
}

// Empty returns the zero-length tuple.
func Empty() Tuple {
	return emptyTuple{}
}

// New builds a tuple from the given values, choosing an inline small-arity
// representation for up to 8 elements and a list-backed one beyond that.
func New(values ...Value) Tuple {
	if len(values) == 0 {
		return emptyTuple{}
	}
	if len(values) <= smallMax {
		var st smallTuple
		st.n = int8(len(values)) //nolint:gosec
		copy(st.values[:], values)

		return st
	}

	out := make([]Value, len(values))
	copy(out, values)

	return listTuple{values: out}
}

// WithPrefix returns a tuple that packs prefix verbatim ahead of tail's
// elements, while indexing, length, and iteration see only tail's elements.
// Used for subspace keys: the prefix need not itself be a valid tuple
// segment.
func WithPrefix(prefix []byte, tail Tuple) Tuple {
	return prefixTailTuple{prefix: prefix, tail: tail}
}

// FromBytes parses data as a packed tuple, returning a slice-backed lazy
// tuple: it records each top-level element's byte offsets in one forward
// pass and decodes an element's Value only when Get or iteration visits it.
// The returned tuple borrows data for its lifetime; callers must keep data
// alive and must not mutate it.
func FromBytes(data []byte) (Tuple, error) {
	return decodeTuple(codec.NewReader(data))
}

// CountElements reports the number of top-level elements packed in data,
// without decoding any of them. Range planners that only need a cheap
// cardinality check can use this instead of FromBytes.
func CountElements(data []byte) (int, error) {
	return codec.CountElements(data)
}

// decodeTuple materializes a Tuple from a Reader positioned at the start of
// a (possibly nested) element sequence, indexing offsets in one pass.
func decodeTuple(r *codec.Reader) (Tuple, error) {
	type span struct{ start, end int }

	var spans []span
	for r.HasMore() {
		start := r.Pos()

		_, ok, err := r.ParseNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		spans = append(spans, span{start: start, end: r.Pos()})
	}

	if len(spans) == 0 {
		return emptyTuple{}, nil
	}

	offsets := make([]int, len(spans)+1)
	for i, s := range spans {
		offsets[i] = s.start
		offsets[i+1] = s.end
	}

	return lazyTuple{data: r.Source(), offsets: offsets}, nil
}

// packInto writes every element of t onto w, in order. Used both by
// Tuple.ToBytes implementations and to pack a Nested value's wrapped tuple.
func packInto(w *codec.Writer, t Tuple) error {
	it := t.Iter()
	for it.Next() {
		if err := it.Value().pack(w); err != nil {
			return err
		}
	}

	return nil
}

// Iterator walks a Tuple's elements from the start. It is restartable by
// calling Tuple.Iter again; a single Iterator instance is not restartable.
type Iterator struct {
	t   Tuple
	i   int
	cur Value
}

func newIterator(t Tuple) *Iterator {
	return &Iterator{t: t}
}

// Next advances to the next element, returning false once exhausted.
func (it *Iterator) Next() bool {
	if it.i >= it.t.Len() {
		return false
	}

	v, err := it.t.Get(it.i)
	if err != nil {
		return false
	}

	it.cur = v
	it.i++

	return true
}

// Value returns the element Next most recently advanced to.
func (it *Iterator) Value() Value {
	return it.cur
}

// toBytes is the shared ToBytes implementation for every variant: iterate
// elements, pack each in order.
func toBytes(t Tuple) []byte {
	w := codec.NewWriter()
	if err := packInto(w, t); err != nil {
		panic(fmt.Sprintf("tupleval: %v", err))
	}

	return w.Finish()
}

func toBytesWithPrefix(t Tuple, prefix []byte) []byte {
	w := codec.NewWriter()
	w.WriteRaw(prefix)
	if err := packInto(w, t); err != nil {
		panic(fmt.Sprintf("tupleval: %v", err))
	}

	return w.Finish()
}

// equalTuples compares two tuples element-wise via Value.Equal rather than
// comparing their packed bytes: NaN float values must compare unequal (see
// Value.Equal), but their packed bit pattern is a fixed, deterministic
// function of the bits, so a bytes-based comparison would wrongly call two
// NaN-valued tuples equal.
func equalTuples(a, b Tuple) bool {
	if a.Len() != b.Len() {
		return false
	}

	ai, bi := a.Iter(), b.Iter()
	for ai.Next() {
		if !bi.Next() || !ai.Value().Equal(bi.Value()) {
			return false
		}
	}

	return true
}

func hashTuple(t Tuple) uint64 {
	return hash.Bytes(t.ToBytes())
}

func stringTuple(t Tuple) string {
	var sb strings.Builder
	sb.WriteByte('(')
	it := t.Iter()
	first := true
	for it.Next() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(it.Value().String())
	}
	sb.WriteByte(')')

	return sb.String()
}

// clampSlice normalizes from/to against length n: both clamped to [0, n],
// and if from >= to the result is an empty range.
func clampSlice(from, to, n int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > n {
		from = n
	}
	if from >= to {
		return 0, 0
	}

	return from, to
}

// parseISO8601Duration parses a small, common subset of ISO-8601 durations
// of the form PnDTnHnMnS (date components other than days are not
// supported, matching the tuple layer's own duration domain).
func parseISO8601Duration(s string) (time.Duration, error) {
	orig := s
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("%w: missing P prefix in %q", errs.ErrMalformedTuple, orig)
	}
	s = s[1:]

	var dur time.Duration

	datePart, timePart, hasTime := strings.Cut(s, "T")
	if n, rest, ok := cutNumber(datePart, 'D'); ok {
		dur += time.Duration(n * float64(24*time.Hour))
		datePart = rest
	}
	if datePart != "" {
		return 0, fmt.Errorf("%w: unsupported duration component in %q", errs.ErrMalformedTuple, orig)
	}

	if hasTime {
		if n, rest, ok := cutNumber(timePart, 'H'); ok {
			dur += time.Duration(n * float64(time.Hour))
			timePart = rest
		}
		if n, rest, ok := cutNumber(timePart, 'M'); ok {
			dur += time.Duration(n * float64(time.Minute))
			timePart = rest
		}
		if n, rest, ok := cutNumber(timePart, 'S'); ok {
			dur += time.Duration(n * float64(time.Second))
			timePart = rest
		}
		if timePart != "" {
			return 0, fmt.Errorf("%w: unsupported duration component in %q", errs.ErrMalformedTuple, orig)
		}
	}

	return dur, nil
}

// cutNumber extracts a leading floating-point number followed by unit from
// s, returning the remainder after the unit.
func cutNumber(s string, unit byte) (float64, string, bool) {
	idx := strings.IndexByte(s, unit)
	if idx < 0 {
		return 0, s, false
	}

	var n float64
	if _, err := fmt.Sscanf(s[:idx], "%g", &n); err != nil {
		return 0, s, false
	}

	return n, s[idx+1:], true
}
