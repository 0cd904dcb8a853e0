// Package format defines the tuple layer's type registry: the fixed table
// mapping a one-byte tag to a logical type and its encoding rule.
//
// The tag set is closed and part of the wire format's cross-implementation
// contract. Applications never register new tags; the registry exists so the
// rest of the codec can name a tag without repeating magic numbers.
package format

// Tag identifies the logical type of one encoded tuple element.
type Tag uint8

const (
	// TagNull marks a null/missing element. Also used, doubled as 0x00 0xFF,
	// for a null nested inside another tuple.
	TagNull Tag = 0x00
	// TagBytes marks a zero-escaped, 0x00-terminated byte string.
	TagBytes Tag = 0x01
	// TagString marks a zero-escaped, 0x00-terminated UTF-8 string.
	TagString Tag = 0x02
	// TagNested marks a recursively-encoded nested tuple, 0x00-terminated.
	TagNested Tag = 0x03

	// TagIntZero is the tag for the integer value zero (no payload bytes).
	TagIntZero Tag = 0x14
	// TagIntMin is the smallest tag used for a negative integer (8-byte payload).
	TagIntMin Tag = 0x0C
	// TagIntMax is the largest tag used for a positive integer (8-byte payload).
	TagIntMax Tag = 0x1C

	// TagFloat32 marks an IEEE-754 single-precision float, sign-mangled, big-endian.
	TagFloat32 Tag = 0x20
	// TagFloat64 marks an IEEE-754 double-precision float, sign-mangled, big-endian.
	TagFloat64 Tag = 0x21

	// TagUUID128 marks a 128-bit UUID, 16 bytes big-endian.
	TagUUID128 Tag = 0x30
	// TagUUID64 marks a 64-bit UUID, 8 bytes big-endian. Draft/reserved: stable
	// for local round-tripping, not guaranteed cross-implementation interop.
	TagUUID64 Tag = 0x31

	// TagReservedLow and TagReservedHigh are sentinels recognized only by
	// pretty-printers; the encoder never emits them.
	TagReservedLow  Tag = 0xFE
	TagReservedHigh Tag = 0xFF
)

// String renders a tag for debugging and error messages.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "Null"
	case TagBytes:
		return "Bytes"
	case TagString:
		return "String"
	case TagNested:
		return "Nested"
	case TagFloat32:
		return "Float32"
	case TagFloat64:
		return "Float64"
	case TagUUID128:
		return "UUID128"
	case TagUUID64:
		return "UUID64"
	case TagReservedLow, TagReservedHigh:
		return "Reserved"
	default:
		if t >= TagIntMin && t <= TagIntMax {
			return "Int"
		}

		return "Unknown"
	}
}

// IsIntTag reports whether t falls in the signed-integer tag range.
func IsIntTag(t Tag) bool {
	return t >= TagIntMin && t <= TagIntMax
}

// IntLen returns the number of payload bytes an integer tag carries, i.e.
// |t - TagIntZero|.
func IntLen(t Tag) int {
	if t >= TagIntZero {
		return int(t - TagIntZero)
	}

	return int(TagIntZero - t)
}

// IntIsNegative reports whether the integer tag encodes a negative value.
func IntIsNegative(t Tag) bool {
	return t < TagIntZero
}

// IntTagFor returns the tag for an integer payload of byteLen bytes and the
// given sign. byteLen must be in [0, 8].
func IntTagFor(byteLen int, negative bool) Tag {
	if negative {
		return TagIntZero - Tag(byteLen) //nolint:gosec
	}

	return TagIntZero + Tag(byteLen) //nolint:gosec
}

// Known reports whether t is a tag this codec understands, either as a fixed
// tag or as a member of the variable-width integer range.
func Known(t Tag) bool {
	switch t {
	case TagNull, TagBytes, TagString, TagNested, TagFloat32, TagFloat64, TagUUID128, TagUUID64:
		return true
	default:
		return IsIntTag(t)
	}
}
