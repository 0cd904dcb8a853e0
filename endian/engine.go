// Package endian provides the byte-order abstraction the tuple wire format
// is built on.
//
// The wire format (package codec) is a fixed, cross-implementation contract
// (spec'd as bit-exact big-endian): codec.Writer and codec.Reader always
// bind to GetBigEndianEngine, never a caller-selectable byte order. The
// package exists only to name that one binding and the interface it
// satisfies, not to offer a choice of endianness.
//
//	import "github.com/tupledb/tuple/endian"
//
//	engine := endian.GetBigEndianEngine()
//	engine.PutUint64(buf, value)
package endian

import "encoding/binary"

// EndianEngine is the byte-order interface codec.Writer and codec.Reader
// encode/decode integers, floats, and the sign-mangled float bit patterns
// through. It is satisfied by binary.BigEndian from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine. This is the only engine
// the tuple wire format ever binds to: its byte order is part of the format's
// cross-implementation contract, not a per-caller choice.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
