package codec

import (
	"math"
	"unicode/utf8"

	"github.com/tupledb/tuple/endian"
	"github.com/tupledb/tuple/errs"
	"github.com/tupledb/tuple/format"
)

var bigEndian = endian.GetBigEndianEngine()

// IsNull reports whether seg encodes a null element.
func IsNull(seg Segment) bool {
	return seg.Tag == format.TagNull
}

// DecodeBytes interprets seg as a zero-unescaped byte string.
func DecodeBytes(seg Segment) ([]byte, error) {
	if seg.Tag != format.TagBytes {
		return nil, errs.NewOverflow(format.TagBytes, seg.Tag)
	}

	return unescape(seg.Raw[1 : len(seg.Raw)-1]), nil
}

// DecodeString interprets seg as a zero-unescaped UTF-8 string.
func DecodeString(seg Segment) (string, error) {
	if seg.Tag != format.TagString {
		return "", errs.NewOverflow(format.TagString, seg.Tag)
	}

	raw := unescape(seg.Raw[1 : len(seg.Raw)-1])
	if !utf8.Valid(raw) {
		return "", errs.NewMalformed(seg.Offset, seg.Tag, "invalid utf-8 in string element")
	}

	return string(raw), nil
}

// unescape reverses the zero-escaping performed by Writer.writeEscaped on
// payload (which excludes the terminator).
func unescape(payload []byte) []byte {
	out := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		out = append(out, payload[i])
		if payload[i] == 0x00 {
			i++ // skip the 0xFF escape partner
		}
	}

	return out
}

// DecodeNested returns a Reader over seg's inner elements, for recursive
// decoding of a nested tuple.
func DecodeNested(seg Segment) (*Reader, error) {
	if seg.Tag != format.TagNested {
		return nil, errs.NewOverflow(format.TagNested, seg.Tag)
	}

	return &Reader{data: seg.Raw[1 : len(seg.Raw)-1], nested: true}, nil
}

// DecodeUint64 interprets seg as an unsigned integer. A negative-tagged
// segment is always rejected as Overflow: an unsigned destination cannot
// hold a negative value.
func DecodeUint64(seg Segment) (uint64, error) {
	if !format.IsIntTag(seg.Tag) {
		return 0, errs.NewOverflow(format.TagIntZero, seg.Tag)
	}
	if format.IntIsNegative(seg.Tag) {
		return 0, errs.NewOverflow(format.TagIntZero, seg.Tag)
	}

	return readBigEndian(seg.Raw[1:]), nil
}

// DecodeInt64 interprets seg as a signed integer, reversing the sign-fold
// applied by Writer.emitNegative for negative tags.
func DecodeInt64(seg Segment) (int64, error) {
	if !format.IsIntTag(seg.Tag) {
		return 0, errs.NewOverflow(format.TagIntZero, seg.Tag)
	}

	n := format.IntLen(seg.Tag)
	if !format.IntIsNegative(seg.Tag) {
		u := readBigEndian(seg.Raw[1:])
		if u > math.MaxInt64 {
			return 0, errs.NewOverflow(format.TagIntZero, seg.Tag)
		}

		return int64(u), nil //nolint:gosec
	}

	payload := readBigEndian(seg.Raw[1:])
	limit := limitFor(n)
	magnitude := limit - payload
	if magnitude > uint64(math.MaxInt64)+1 {
		return 0, errs.NewOverflow(format.TagIntZero, seg.Tag)
	}
	if magnitude == uint64(math.MaxInt64)+1 {
		return math.MinInt64, nil
	}

	return -int64(magnitude), nil //nolint:gosec
}

func readBigEndian(payload []byte) uint64 {
	var tmp [8]byte
	copy(tmp[8-len(payload):], payload)

	return bigEndian.Uint64(tmp[:])
}

// DecodeFloat64 interprets seg as a double-precision float. A single-
// precision (Float32) tag widens losslessly.
func DecodeFloat64(seg Segment) (float64, error) {
	switch seg.Tag {
	case format.TagFloat64:
		bits64 := bigEndian.Uint64(seg.Raw[1:])

		return math.Float64frombits(unmangleFloatBits64(bits64)), nil
	case format.TagFloat32:
		bits32 := bigEndian.Uint32(seg.Raw[1:])
		f32 := math.Float32frombits(unmangleFloatBits32(bits32))

		return float64(f32), nil
	default:
		return 0, errs.NewOverflow(format.TagFloat64, seg.Tag)
	}
}

// DecodeFloat32 interprets seg as a single-precision float. A Float64 tag is
// accepted and narrowed, which may lose precision; this is documented
// behavior, not an error.
func DecodeFloat32(seg Segment) (float32, error) {
	switch seg.Tag {
	case format.TagFloat32:
		bits32 := bigEndian.Uint32(seg.Raw[1:])

		return math.Float32frombits(unmangleFloatBits32(bits32)), nil
	case format.TagFloat64:
		bits64 := bigEndian.Uint64(seg.Raw[1:])
		f64 := math.Float64frombits(unmangleFloatBits64(bits64))

		return float32(f64), nil
	default:
		return 0, errs.NewOverflow(format.TagFloat32, seg.Tag)
	}
}

func unmangleFloatBits32(b uint32) uint32 {
	if b&0x8000_0000 != 0 {
		return b &^ 0x8000_0000
	}

	return ^b
}

func unmangleFloatBits64(b uint64) uint64 {
	if b&0x8000_0000_0000_0000 != 0 {
		return b &^ 0x8000_0000_0000_0000
	}

	return ^b
}

// DecodeUUID128 interprets seg as a 16-byte UUID.
func DecodeUUID128(seg Segment) ([16]byte, error) {
	var out [16]byte
	if seg.Tag != format.TagUUID128 {
		return out, errs.NewOverflow(format.TagUUID128, seg.Tag)
	}
	copy(out[:], seg.Raw[1:])

	return out, nil
}

// DecodeUUID64 interprets seg as an 8-byte local UUID.
func DecodeUUID64(seg Segment) ([8]byte, error) {
	var out [8]byte
	if seg.Tag != format.TagUUID64 {
		return out, errs.NewOverflow(format.TagUUID64, seg.Tag)
	}
	copy(out[:], seg.Raw[1:])

	return out, nil
}
