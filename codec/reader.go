package codec

import (
	"github.com/tupledb/tuple/errs"
	"github.com/tupledb/tuple/format"
)

// Segment is the raw sub-slice covering exactly one encoded element,
// including its tag byte and any payload/escape bytes and terminator. It is
// returned by Reader.ParseNext and consumed by the Decode* functions.
//
// Segment aliases the Reader's input slice; it is valid for as long as that
// slice is kept alive by the caller.
type Segment struct {
	Tag    format.Tag
	Raw    []byte
	Offset int
}

// Reader is the stateful tuple decoder. It walks an input byte slice with a
// cursor, splitting decoding into two phases: ParseNext identifies and
// returns the raw bytes of the next element without interpreting them, and
// the package-level Decode* functions interpret a Segment as a specific
// logical type. This split lets callers extract a single element (first,
// last, nth) without materializing an entire tuple.
//
// A Reader created directly over top-level packed bytes treats a lone 0x00
// as the one-byte top-level null encoding. A Reader created by DecodeNested,
// over a nested tuple's inner bytes, treats 0x00 followed by 0xFF as an
// escaped null child instead — this is what spec calls "depth".
type Reader struct {
	data   []byte
	pos    int
	nested bool
}

// NewReader creates a Reader over data, starting at the top level.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// HasMore reports whether any bytes remain to be parsed.
func (r *Reader) HasMore() bool {
	return r.pos < len(r.data)
}

// Pos returns the reader's current byte offset into its input.
func (r *Reader) Pos() int {
	return r.pos
}

// Source returns the full byte slice the Reader was constructed over,
// unaffected by how much has been consumed. Used by tupleval to build a
// slice-backed lazy tuple from recorded element offsets.
func (r *Reader) Source() []byte {
	return r.data
}

// ParseNext returns the raw sub-slice of the next element, advancing the
// cursor past it. ok is false (with a nil error) at a clean end of input.
func (r *Reader) ParseNext() (seg Segment, ok bool, err error) {
	if r.pos >= len(r.data) {
		return Segment{}, false, nil
	}

	offset := r.pos
	n, err := elementLen(r.data, offset, r.nested)
	if err != nil {
		return Segment{}, false, err
	}

	seg = Segment{Tag: format.Tag(r.data[offset]), Raw: r.data[offset : offset+n], Offset: offset}
	r.pos += n

	return seg, true, nil
}

// elementLen returns the number of bytes (including the tag) occupied by the
// element starting at data[offset]. insideNested selects the escaped
// (0x00 0xFF) encoding for a null element versus the bare top-level 0x00.
func elementLen(data []byte, offset int, insideNested bool) (int, error) {
	if offset >= len(data) {
		return 0, errs.NewMalformed(offset, format.TagNull, "truncated input")
	}

	tag := format.Tag(data[offset])

	switch {
	case tag == format.TagNull:
		if insideNested {
			if offset+1 >= len(data) || data[offset+1] != 0xFF {
				return 0, errs.NewMalformed(offset, tag, "expected escaped null inside nested tuple")
			}

			return 2, nil
		}

		return 1, nil

	case tag == format.TagBytes || tag == format.TagString:
		n, err := scanEscaped(data, offset+1)
		if err != nil {
			return 0, err
		}

		return 1 + n, nil

	case tag == format.TagNested:
		n, err := scanNested(data, offset+1)
		if err != nil {
			return 0, err
		}

		return 1 + n, nil

	case format.IsIntTag(tag):
		n := format.IntLen(tag)
		if offset+1+n > len(data) {
			return 0, errs.NewMalformed(offset, tag, "truncated integer payload")
		}

		return 1 + n, nil

	case tag == format.TagFloat32:
		if offset+5 > len(data) {
			return 0, errs.NewMalformed(offset, tag, "truncated float32 payload")
		}

		return 5, nil

	case tag == format.TagFloat64:
		if offset+9 > len(data) {
			return 0, errs.NewMalformed(offset, tag, "truncated float64 payload")
		}

		return 9, nil

	case tag == format.TagUUID128:
		if offset+17 > len(data) {
			return 0, errs.NewMalformed(offset, tag, "truncated uuid128 payload")
		}

		return 17, nil

	case tag == format.TagUUID64:
		if offset+9 > len(data) {
			return 0, errs.NewMalformed(offset, tag, "truncated uuid64 payload")
		}

		return 9, nil

	default:
		return 0, errs.NewMalformed(offset, tag, "unknown tag")
	}
}

// CountElements reports the number of top-level elements packed in data,
// without decoding any of them. It walks data with a throwaway Reader,
// stopping at the first malformed element it encounters.
func CountElements(data []byte) (int, error) {
	r := NewReader(data)
	n := 0
	for {
		_, ok, err := r.ParseNext()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// scanEscaped returns the number of payload+terminator bytes starting at pos
// (just past a Bytes/String tag), consuming zero-escape pairs until an
// unescaped 0x00 terminator.
func scanEscaped(data []byte, pos int) (int, error) {
	i := pos
	for {
		if i >= len(data) {
			return 0, errs.NewMalformed(pos-1, format.TagBytes, "unterminated byte/unicode string")
		}
		if data[i] == 0x00 {
			if i+1 < len(data) && data[i+1] == 0xFF {
				i += 2
				continue
			}

			return i - pos + 1, nil
		}
		i++
	}
}

// scanNested returns the number of bytes starting at pos (just past a Nested
// tag) through and including that nested tuple's terminator, recursively
// skipping its children.
func scanNested(data []byte, pos int) (int, error) {
	i := pos
	for {
		if i >= len(data) {
			return 0, errs.NewMalformed(pos-1, format.TagNested, "unterminated nested tuple")
		}
		if data[i] == 0x00 && !(i+1 < len(data) && data[i+1] == 0xFF) {
			i++
			return i - pos, nil
		}

		n, err := elementLen(data, i, true)
		if err != nil {
			return 0, err
		}
		i += n
	}
}
