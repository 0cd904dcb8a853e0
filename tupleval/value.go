// Package tupleval implements the tuple value model: a polymorphic,
// immutable sequence of typed values (Tuple) built from a tagged-union
// element type (Value), plus the codecs that translate between Value and
// the wire format in package codec.
package tupleval

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/tupledb/tuple/codec"
	"github.com/tupledb/tuple/errs"
	"github.com/tupledb/tuple/format"
)

// Kind identifies which alternative of the Value tagged union is active.
type Kind uint8

const (
	KindNull Kind = iota
	KindBytes
	KindString
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindUUID128
	KindUUID64
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBytes:
		return "Bytes"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindUUID128:
		return "UUID128"
	case KindUUID64:
		return "UUID64"
	case KindNested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// Value is a single tuple element: a tagged union over every logical type
// the wire format supports. The zero Value is Null.
//
// Value is a small, comparable-by-convention struct (compare with Equal, not
// ==, since the Nested alternative holds a Tuple interface). It is cheap to
// copy and safe to share.
type Value struct {
	kind Kind

	i   int64
	u   uint64
	f32 float32
	f64 float64

	uuid128 [16]byte
	uuid64  [8]byte

	// raw holds the payload for Bytes and String (converted to []byte).
	raw []byte

	nested Tuple
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bytes returns a byte-string value. data is not copied; callers should not
// mutate it afterward.
func Bytes(data []byte) Value { return Value{kind: KindBytes, raw: data} }

// Str returns a unicode-string value.
func Str(s string) Value { return Value{kind: KindString, raw: []byte(s)} }

// Int returns a signed integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Uint returns an unsigned integer value. Use this for values in
// (math.MaxInt64, math.MaxUint64] that Int cannot represent.
func Uint(v uint64) Value { return Value{kind: KindUint, u: v} }

// Float32 returns a single-precision float value.
func Float32(v float32) Value { return Value{kind: KindFloat32, f32: v} }

// Float64 returns a double-precision float value.
func Float64(v float64) Value { return Value{kind: KindFloat64, f64: v} }

// UUID128 returns a 128-bit UUID value.
func UUID128(u [16]byte) Value { return Value{kind: KindUUID128, uuid128: u} }

// UUID64 returns a 64-bit local UUID value.
func UUID64(u [8]byte) Value { return Value{kind: KindUUID64, uuid64: u} }

// Nested returns a value wrapping another tuple, packed recursively.
func Nested(t Tuple) Value { return Value{kind: KindNested, nested: t} }

// Bool returns the canonical integer encoding of a boolean: false packs as
// integer 0, true as integer 1.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}

	return Int(0)
}

// unixEpoch is the reference instant date/time values encode against:
// fractional days since 1970-01-01T00:00:00Z.
var unixEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Time returns the encoding of t as a double: fractional days since the
// Unix epoch.
func Time(t time.Time) Value {
	days := t.UTC().Sub(unixEpoch).Seconds() / 86400

	return Float64(days)
}

// Duration returns the encoding of d as a double: total seconds.
func Duration(d time.Duration) Value {
	return Float64(d.Seconds())
}

// IP returns the encoding of an IP address: 4 raw bytes for v4, 16 for v6.
func IP(addr netip.Addr) Value {
	return Bytes(addr.AsSlice())
}

// Kind reports which alternative of the union v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBytes returns v's payload if v is a Bytes value.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("tupleval: value is %s, not Bytes: %w", v.kind, errs.ErrUnsupported)
	}

	return v.raw, nil
}

// AsString returns v's payload if v is a String value.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("tupleval: value is %s, not String: %w", v.kind, errs.ErrUnsupported)
	}

	return string(v.raw), nil
}

// AsInt returns v's value if v is an Int (or a representable Uint).
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindUint:
		if v.u > 1<<63-1 {
			return 0, fmt.Errorf("tupleval: uint %d does not fit in int64: %w", v.u, errs.ErrOverflow)
		}

		return int64(v.u), nil //nolint:gosec
	default:
		return 0, fmt.Errorf("tupleval: value is %s, not Int: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsUint returns v's value if v is a Uint, or a non-negative Int.
func (v Value) AsUint() (uint64, error) {
	switch v.kind {
	case KindUint:
		return v.u, nil
	case KindInt:
		if v.i < 0 {
			return 0, fmt.Errorf("tupleval: negative int cannot be Uint: %w", errs.ErrOverflow)
		}

		return uint64(v.i), nil
	default:
		return 0, fmt.Errorf("tupleval: value is %s, not Int/Uint: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsFloat32 returns v's value if v is Float32, or Float64 narrowed (possible
// precision loss, not an error).
func (v Value) AsFloat32() (float32, error) {
	switch v.kind {
	case KindFloat32:
		return v.f32, nil
	case KindFloat64:
		return float32(v.f64), nil
	default:
		return 0, fmt.Errorf("tupleval: value is %s, not Float32: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsFloat64 returns v's value if v is Float64, or Float32 widened exactly.
func (v Value) AsFloat64() (float64, error) {
	switch v.kind {
	case KindFloat64:
		return v.f64, nil
	case KindFloat32:
		return float64(v.f32), nil
	default:
		return 0, fmt.Errorf("tupleval: value is %s, not Float64: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsUUID128 returns v's value if v is a UUID128.
func (v Value) AsUUID128() ([16]byte, error) {
	if v.kind != KindUUID128 {
		return [16]byte{}, fmt.Errorf("tupleval: value is %s, not UUID128: %w", v.kind, errs.ErrUnsupported)
	}

	return v.uuid128, nil
}

// AsUUID128Value returns v's value parsed as a google/uuid.UUID, for callers
// that want string formatting and variant/version accessors.
func (v Value) AsUUID128Value() (uuid.UUID, error) {
	raw, err := v.AsUUID128()
	if err != nil {
		return uuid.UUID{}, err
	}

	return uuid.UUID(raw), nil
}

// AsUUID64 returns v's value if v is a UUID64.
func (v Value) AsUUID64() ([8]byte, error) {
	if v.kind != KindUUID64 {
		return [8]byte{}, fmt.Errorf("tupleval: value is %s, not UUID64: %w", v.kind, errs.ErrUnsupported)
	}

	return v.uuid64, nil
}

// AsNested returns v's tuple if v is a Nested value.
func (v Value) AsNested() (Tuple, error) {
	if v.kind != KindNested {
		return nil, fmt.Errorf("tupleval: value is %s, not Nested: %w", v.kind, errs.ErrUnsupported)
	}

	return v.nested, nil
}

// AsBool decodes v per the bool mapping: integer 0 is false, any other
// integer is true; an empty byte/unicode string is false, nonempty is true;
// float/double zero is false, nonzero is true.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindInt:
		return v.i != 0, nil
	case KindUint:
		return v.u != 0, nil
	case KindBytes, KindString:
		return len(v.raw) != 0, nil
	case KindFloat32:
		return v.f32 != 0, nil
	case KindFloat64:
		return v.f64 != 0, nil
	default:
		return false, fmt.Errorf("tupleval: value is %s, cannot decode as bool: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsTime decodes v as a date/time. The primary representation is a double:
// fractional days since the Unix epoch. As fallbacks, an ISO-8601 string
// value or an integer value (interpreted as Unix nanosecond ticks) are also
// accepted.
func (v Value) AsTime() (time.Time, error) {
	switch v.kind {
	case KindFloat64, KindFloat32:
		days, err := v.AsFloat64()
		if err != nil {
			return time.Time{}, err
		}

		return unixEpoch.Add(time.Duration(days * 86400 * float64(time.Second))), nil
	case KindString:
		s, _ := v.AsString()

		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("tupleval: invalid ISO-8601 time %q: %w", s, errs.ErrUnsupported)
		}

		return t, nil
	case KindInt:
		return time.Unix(0, v.i).UTC(), nil
	case KindUint:
		return time.Unix(0, int64(v.u)).UTC(), nil //nolint:gosec
	default:
		return time.Time{}, fmt.Errorf("tupleval: value is %s, cannot decode as time: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsDuration decodes v as a duration. The primary representation is a
// double of total seconds; an ISO-8601 duration string or an integer tick
// count (nanoseconds) are accepted as fallbacks.
func (v Value) AsDuration() (time.Duration, error) {
	switch v.kind {
	case KindFloat64, KindFloat32:
		secs, err := v.AsFloat64()
		if err != nil {
			return 0, err
		}

		return time.Duration(secs * float64(time.Second)), nil
	case KindString:
		s, _ := v.AsString()

		d, err := parseISO8601Duration(s)
		if err != nil {
			return 0, fmt.Errorf("tupleval: invalid ISO-8601 duration %q: %w", s, errs.ErrUnsupported)
		}

		return d, nil
	case KindInt:
		return time.Duration(v.i), nil
	case KindUint:
		return time.Duration(v.u), nil //nolint:gosec
	default:
		return 0, fmt.Errorf("tupleval: value is %s, cannot decode as duration: %w", v.kind, errs.ErrUnsupported)
	}
}

// AsIP decodes v as an IP address: 4 or 16 raw bytes, text, or (per the
// Uuid128 fallback) a UUID128's bytes reinterpreted as an IPv6 address.
func (v Value) AsIP() (netip.Addr, error) {
	switch v.kind {
	case KindBytes:
		addr, ok := netip.AddrFromSlice(v.raw)
		if !ok {
			return netip.Addr{}, fmt.Errorf("tupleval: %d bytes is not a valid IP address: %w", len(v.raw), errs.ErrUnsupported)
		}

		return addr, nil
	case KindString:
		s, _ := v.AsString()

		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("tupleval: invalid IP address %q: %w", s, errs.ErrUnsupported)
		}

		return addr, nil
	case KindUUID128:
		return netip.AddrFrom16(v.uuid128), nil
	default:
		return netip.Addr{}, fmt.Errorf("tupleval: value is %s, cannot decode as IP address: %w", v.kind, errs.ErrUnsupported)
	}
}

// Equal reports structural equality: same kind and same logical value. For
// Nested values, equality recurses into the wrapped tuples.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBytes, KindString:
		return string(v.raw) == string(other.raw)
	case KindInt:
		return v.i == other.i
	case KindUint:
		return v.u == other.u
	case KindFloat32:
		return v.f32 == other.f32 //nolint:govet
	case KindFloat64:
		return v.f64 == other.f64 //nolint:govet
	case KindUUID128:
		return v.uuid128 == other.uuid128
	case KindUUID64:
		return v.uuid64 == other.uuid64
	case KindNested:
		return v.nested.Equal(other.nested)
	default:
		return false
	}
}

// String renders v for debugging, one form per kind. The reserved sentinel
// tags are rendered by format.Tag.String, not here.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBytes:
		return fmt.Sprintf("%x", v.raw)
	case KindString:
		return fmt.Sprintf("%q", string(v.raw))
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindUint:
		return fmt.Sprintf("%d", v.u)
	case KindFloat32:
		return fmt.Sprintf("%g", v.f32)
	case KindFloat64:
		return fmt.Sprintf("%g", v.f64)
	case KindUUID128:
		return uuid.UUID(v.uuid128).String()
	case KindUUID64:
		return fmt.Sprintf("%x", v.uuid64)
	case KindNested:
		return v.nested.String()
	default:
		return "<unknown>"
	}
}

// Pack writes v onto w, dispatching on its kind. Exported for packages that
// pack individual values outside a Tuple, such as rangekey's batch packer.
func Pack(w *codec.Writer, v Value) error {
	return v.pack(w)
}

// pack writes v onto w, dispatching on kind. Nested values recurse through
// BeginNested/EndNested.
func (v Value) pack(w *codec.Writer) error {
	switch v.kind {
	case KindNull:
		w.EmitNull()
	case KindBytes:
		w.EmitBytes(v.raw)
	case KindString:
		w.EmitString(string(v.raw))
	case KindInt:
		w.EmitInt(v.i)
	case KindUint:
		w.EmitUint(v.u)
	case KindFloat32:
		w.EmitFloat32(v.f32)
	case KindFloat64:
		w.EmitFloat64(v.f64)
	case KindUUID128:
		w.EmitUUID128(v.uuid128)
	case KindUUID64:
		w.EmitUUID64(v.uuid64)
	case KindNested:
		w.BeginNested()
		if err := packInto(w, v.nested); err != nil {
			return err
		}
		w.EndNested()
	default:
		return fmt.Errorf("tupleval: %w: value kind %d", errs.ErrUnsupported, v.kind)
	}

	return nil
}

// fromSegment builds a Value from a decoded codec.Segment, for the tags that
// map directly onto a Value alternative. It does not attempt any of the
// derived (bool/time/duration/IP) mappings — those are resolved lazily by
// the AsXxx accessors above from the underlying primitive Value.
func fromSegment(seg codec.Segment) (Value, error) {
	switch {
	case codec.IsNull(seg):
		return Null(), nil

	case seg.Tag == format.TagBytes:
		b, err := codec.DecodeBytes(seg)
		if err != nil {
			return Value{}, err
		}

		return Bytes(b), nil

	case seg.Tag == format.TagString:
		s, err := codec.DecodeString(seg)
		if err != nil {
			return Value{}, err
		}

		return Str(s), nil

	case seg.Tag == format.TagNested:
		inner, err := codec.DecodeNested(seg)
		if err != nil {
			return Value{}, err
		}

		t, err := decodeTuple(inner)
		if err != nil {
			return Value{}, err
		}

		// The inner bytes escape nulls as 0x00 0xFF, so they are not the
		// tuple's canonical top-level packing: copy the elements out rather
		// than keep a lazy tuple whose ToBytes/Hash would see those escapes.
		return Nested(materialize(t)), nil

	case format.IsIntTag(seg.Tag):
		i, err := codec.DecodeInt64(seg)
		if err == nil {
			return Int(i), nil
		}
		// Outside int64 range only for the widest positive tag; widen to Uint.
		u, uerr := codec.DecodeUint64(seg)
		if uerr != nil {
			return Value{}, err
		}

		return Uint(u), nil

	case seg.Tag == format.TagFloat32:
		f, err := codec.DecodeFloat32(seg)
		if err != nil {
			return Value{}, err
		}

		return Float32(f), nil

	case seg.Tag == format.TagFloat64:
		f, err := codec.DecodeFloat64(seg)
		if err != nil {
			return Value{}, err
		}

		return Float64(f), nil

	case seg.Tag == format.TagUUID128:
		u, err := codec.DecodeUUID128(seg)
		if err != nil {
			return Value{}, err
		}

		return UUID128(u), nil

	case seg.Tag == format.TagUUID64:
		u, err := codec.DecodeUUID64(seg)
		if err != nil {
			return Value{}, err
		}

		return UUID64(u), nil

	default:
		return Value{}, fmt.Errorf("tupleval: %w: unrecognized tag %s", errs.ErrMalformedTuple, seg.Tag)
	}
}
