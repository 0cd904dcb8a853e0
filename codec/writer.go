package codec

import (
	"math"
	"math/bits"

	"github.com/tupledb/tuple/endian"
	"github.com/tupledb/tuple/format"
	"github.com/tupledb/tuple/internal/pool"
)

// Writer is the stateful tuple encoder. It wraps a growable ByteBuffer and
// tracks nesting depth so nested tuples and the null-inside-nested escape
// rule are handled correctly.
//
// A Writer is not safe for concurrent use; each call site should own its own
// instance. Call Finish to obtain the immutable byte slice and release the
// Writer back to the pool.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	depth  int
}

// NewWriter creates a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetPackBuffer(),
		engine: endian.GetBigEndianEngine(),
	}
}

// Depth returns the writer's current nesting depth (0 at the top level).
func (w *Writer) Depth() int {
	return w.depth
}

// Bytes returns the bytes written so far. The returned slice aliases the
// writer's internal buffer and is only valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Finish returns a copy of the encoded bytes and releases the Writer's
// buffer back to the pool. The Writer must not be used after Finish.
func (w *Writer) Finish() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	pool.PutPackBuffer(w.buf)
	w.buf = nil

	return out
}

// Reset clears the writer for reuse, as if newly constructed.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.depth = 0
}

// WriteRaw appends b verbatim with no tag, escaping, or terminator. Used to
// emit an opaque prefix ahead of a packed tuple (subspace keys) and by batch
// packing to share one buffer across many packed items.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.MustWrite(b)
}

// EmitNull encodes a null/missing element.
//
// At the top level this is a single 0x00 byte. Inside a nested tuple (depth
// > 0) it is escaped as 0x00 0xFF, because a lone 0x00 there would be
// mistaken for the nested tuple's own terminator.
func (w *Writer) EmitNull() {
	if w.depth > 0 {
		w.buf.MustWrite([]byte{byte(format.TagNull), 0xFF})
	} else {
		w.buf.MustWriteByte(byte(format.TagNull))
	}
}

// EmitBytes encodes a zero-escaped, 0x00-terminated byte string.
func (w *Writer) EmitBytes(data []byte) {
	w.buf.MustWriteByte(byte(format.TagBytes))
	w.writeEscaped(data)
}

// EmitString encodes a zero-escaped, 0x00-terminated UTF-8 string.
func (w *Writer) EmitString(s string) {
	w.buf.MustWriteByte(byte(format.TagString))
	w.writeEscaped([]byte(s))
}

// writeEscaped writes payload with every 0x00 doubled to 0x00 0xFF, followed
// by a single unescaped 0x00 terminator.
func (w *Writer) writeEscaped(payload []byte) {
	w.buf.Grow(len(payload) + 1)
	start := 0
	for i, b := range payload {
		if b == 0x00 {
			w.buf.MustWrite(payload[start:i])
			w.buf.MustWrite([]byte{0x00, 0xFF})
			start = i + 1
		}
	}
	w.buf.MustWrite(payload[start:])
	w.buf.MustWriteByte(0x00)
}

// BeginNested opens a nested tuple: emits the tag and increments depth. Every
// BeginNested must be paired with EndNested.
func (w *Writer) BeginNested() {
	w.buf.MustWriteByte(byte(format.TagNested))
	w.depth++
}

// EndNested closes the most recently opened nested tuple: emits the
// terminator and decrements depth. Panics if called with depth already 0 —
// that is a programmer error, not a malformed-input condition.
func (w *Writer) EndNested() {
	if w.depth == 0 {
		panic("codec: EndNested called without matching BeginNested")
	}
	w.buf.MustWriteByte(0x00)
	w.depth--
}

// EmitInt encodes a signed integer using the minimal byte width that
// represents it, per the variable-width integer scheme (spec §3/§4.2).
func (w *Writer) EmitInt(v int64) {
	if v == 0 {
		w.buf.MustWriteByte(byte(format.TagIntZero))
		return
	}

	if v > 0 {
		w.emitUnsignedPositive(uint64(v)) //nolint:gosec
		return
	}

	w.emitNegative(v)
}

// EmitUint encodes an unsigned 64-bit integer using the same positive-branch
// encoding as EmitInt, supporting the full uint64 range (up to 2^64-1,
// beyond the int64 maximum of 2^63-1; both fit the 8-byte payload).
func (w *Writer) EmitUint(v uint64) {
	if v == 0 {
		w.buf.MustWriteByte(byte(format.TagIntZero))
		return
	}
	w.emitUnsignedPositive(v)
}

func (w *Writer) emitUnsignedPositive(u uint64) {
	n := byteLen(u)
	w.buf.MustWriteByte(byte(format.IntTagFor(n, false)))
	w.appendBigEndian(u, n)
}

func (w *Writer) emitNegative(v int64) {
	// magnitude = -v computed without overflowing int64 at v == MinInt64.
	magnitude := uint64(-(v + 1)) + 1
	n := byteLen(magnitude)
	limit := limitFor(n)
	payload := limit - magnitude

	w.buf.MustWriteByte(byte(format.IntTagFor(n, true)))
	w.appendBigEndian(payload, n)
}

// byteLen returns the minimal number of bytes needed to hold u without a
// leading zero byte (0 for u == 0).
func byteLen(u uint64) int {
	return (bits.Len64(u) + 7) / 8
}

// limitFor returns 2^(8n) - 1, computed without overflow for n == 8.
func limitFor(n int) uint64 {
	if n == 8 {
		return math.MaxUint64
	}

	return uint64(1)<<(8*n) - 1
}

func (w *Writer) appendBigEndian(u uint64, n int) {
	if n == 0 {
		return
	}
	var tmp [8]byte
	w.engine.PutUint64(tmp[:], u)
	w.buf.MustWrite(tmp[8-n:])
}

// EmitFloat32 encodes an IEEE-754 single-precision float with sign-bit
// mangling so unsigned byte-order comparison matches IEEE order.
func (w *Writer) EmitFloat32(v float32) {
	w.buf.MustWriteByte(byte(format.TagFloat32))
	bits32 := math.Float32bits(v)
	bits32 = mangleFloatBits32(bits32)
	var tmp [4]byte
	w.engine.PutUint32(tmp[:], bits32)
	w.buf.MustWrite(tmp[:])
}

// EmitFloat64 encodes an IEEE-754 double-precision float with sign-bit
// mangling so unsigned byte-order comparison matches IEEE order.
func (w *Writer) EmitFloat64(v float64) {
	w.buf.MustWriteByte(byte(format.TagFloat64))
	bits64 := math.Float64bits(v)
	bits64 = mangleFloatBits64(bits64)
	var tmp [8]byte
	w.engine.PutUint64(tmp[:], bits64)
	w.buf.MustWrite(tmp[:])
}

// mangleFloatBits32 flips the sign bit for positive values and all bits for
// negative values, mapping IEEE-754 order onto unsigned integer order.
func mangleFloatBits32(b uint32) uint32 {
	if b&0x8000_0000 != 0 {
		return ^b
	}

	return b | 0x8000_0000
}

func mangleFloatBits64(b uint64) uint64 {
	if b&0x8000_0000_0000_0000 != 0 {
		return ^b
	}

	return b | 0x8000_0000_0000_0000
}

// EmitUUID128 encodes a 16-byte UUID big-endian. The all-zero UUID is still
// encoded with the 0x30 tag and 16 zero bytes — it is never collapsed to
// integer zero.
func (w *Writer) EmitUUID128(u [16]byte) {
	w.buf.MustWriteByte(byte(format.TagUUID128))
	w.buf.MustWrite(u[:])
}

// EmitUUID64 encodes an 8-byte local UUID big-endian.
func (w *Writer) EmitUUID64(u [8]byte) {
	w.buf.MustWriteByte(byte(format.TagUUID64))
	w.buf.MustWrite(u[:])
}
