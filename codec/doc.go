// Package codec implements the tuple layer's wire format: a self-describing
// binary encoding whose unsigned lexicographic byte order matches the
// element-wise natural order of the tuples it encodes.
//
// # Wire format
//
// Each encoded element starts with a one-byte tag (see package format) that
// identifies its logical type, optionally followed by a payload and/or a
// terminator:
//
//	Null            0x00
//	Bytes           0x01 <zero-escaped payload> 0x00
//	String          0x02 <zero-escaped UTF-8 payload> 0x00
//	Nested tuple    0x03 <recursively encoded elements> 0x00
//	Integer         0x0C..0x1C (tag encodes sign and byte length)
//	Float32         0x20 <4 bytes, sign-mangled, big-endian>
//	Float64         0x21 <8 bytes, sign-mangled, big-endian>
//	UUID128         0x30 <16 bytes, big-endian>
//	UUID64          0x31 <8 bytes, big-endian>
//
// Zero-escaping replaces every 0x00 payload byte with 0x00 0xFF and
// terminates the segment with a single 0x00 not followed by 0xFF. This lets
// byte and string values sort correctly against segments of different
// lengths: a 0x00 terminator always sorts before any non-terminator byte.
//
// # Writer and Reader
//
// Writer is a stateful encoder: it owns a growable buffer (internal/pool)
// and a nesting-depth counter, and exposes one emitter per logical type plus
// BeginNested/EndNested for recursive tuples. Reader is the stateful
// decoder: it walks an input byte slice with a cursor and a flag recording
// whether it reads a nested tuple's inner bytes, and splits decoding into two phases — ParseNext returns the raw
// sub-slice of the next element without interpreting it, and the Decode*
// functions interpret a previously-returned sub-slice as a specific type.
// Splitting these phases lets callers extract a single element (first, last,
// nth) without materializing an entire tuple.
//
// The wire format is a fixed-endian, cross-implementation contract: Writer
// and Reader always use endian.GetBigEndianEngine(), never a
// caller-selectable byte order.
package codec
