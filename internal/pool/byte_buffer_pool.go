// Package pool provides the growable byte buffer used by the tuple codec's
// Writer (spec ByteBuffer component) and a small pool of reusable offset
// slices used by batch packing.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for buffers obtained from the package pool.
const (
	PackBufferDefaultSize  = 1024 * 4  // 4KiB: a handful of packed tuples
	PackBufferMaxThreshold = 1024 * 64 // 64KiB: discard larger buffers rather than pool them
)

// ByteBuffer is a growable byte sink with positional writes and an
// immutable-view accessor, as required by the ByteBuffer component: callers
// append sequentially during encoding, and may patch in-place at a previously
// recorded offset (PatchByte) before taking the final Bytes() view.
//
// A ByteBuffer obtained from a pool must not be used after it is returned via
// Reset/Put — appending to a disposed buffer panics.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte

	disposed bool
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice. The returned slice aliases the
// buffer's storage and is only valid until the next write or Reset.
func (bb *ByteBuffer) Bytes() []byte {
	bb.checkAlive()
	return bb.B
}

// Reset empties the buffer for reuse, retaining its allocated memory, and
// marks it alive again (undoes a prior Dispose).
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
	bb.disposed = false
}

// Dispose marks the buffer as no longer usable. Any further write forbidden
// by the ByteBuffer contract panics until Reset is called.
func (bb *ByteBuffer) Dispose() {
	bb.disposed = true
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

func (bb *ByteBuffer) checkAlive() {
	if bb.disposed {
		panic("pool: use of disposed ByteBuffer")
	}
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.checkAlive()
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte, growing the buffer if necessary.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.checkAlive()
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// PatchByte overwrites the byte at offset with b. offset must address an
// already-written position (offset < Len()).
func (bb *ByteBuffer) PatchByte(offset int, b byte) {
	bb.checkAlive()
	if offset < 0 || offset >= len(bb.B) {
		panic("pool: PatchByte: offset out of range")
	}
	bb.B[offset] = b
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	bb.checkAlive()
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	bb.checkAlive()
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	bb.checkAlive()
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<16KB), grow by PackBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	// Calculate growth size based on current buffer size
	growBy := PackBufferDefaultSize
	if cap(bb.B) > 4*PackBufferDefaultSize {
		// For larger buffers, grow by 25% to balance memory and reallocation cost
		growBy = cap(bb.B) / 4
	}

	// Ensure we grow enough for at least the required bytes
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	// Allocate new buffer with increased capacity
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// Implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. Implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(PackBufferDefaultSize, PackBufferMaxThreshold)

// GetPackBuffer retrieves a ByteBuffer from the default pack-buffer pool.
func GetPackBuffer() *ByteBuffer {
	return defaultPool.Get()
}

// PutPackBuffer returns a ByteBuffer to the default pack-buffer pool.
func PutPackBuffer(bb *ByteBuffer) {
	defaultPool.Put(bb)
}
