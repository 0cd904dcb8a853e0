package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 64)
}

func TestByteBufferMustWrite(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.Bytes())
	assert.Equal(t, 5, bb.Len())
}

func TestByteBufferMustWriteByte(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWriteByte(0x14)
	bb.MustWriteByte(0x01)
	assert.Equal(t, []byte{0x14, 0x01}, bb.Bytes())
}

func TestByteBufferPatchByte(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte{0x00, 0x00, 0x00})
	bb.PatchByte(1, 0xFF)
	assert.Equal(t, []byte{0x00, 0xFF, 0x00}, bb.Bytes())
}

func TestByteBufferPatchByteOutOfRangePanics(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{0x01})
	assert.Panics(t, func() { bb.PatchByte(5, 0xFF) })
	assert.Panics(t, func() { bb.PatchByte(-1, 0xFF) })
}

func TestByteBufferReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("data"))
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBufferDisposedPanics(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Dispose()
	assert.Panics(t, func() { bb.MustWrite([]byte("x")) })
	assert.Panics(t, func() { bb.Bytes() })

	bb.Reset()
	assert.NotPanics(t, func() { bb.MustWrite([]byte("x")) })
}

func TestByteBufferSliceAndSetLength(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte{1, 2, 3, 4})
	assert.Equal(t, []byte{2, 3}, bb.Slice(1, 3))

	bb.SetLength(2)
	assert.Equal(t, 2, bb.Len())
}

func TestByteBufferSliceInvalidPanics(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2})
	assert.Panics(t, func() { bb.Slice(-1, 1) })
	assert.Panics(t, func() { bb.Slice(1, 0) })
	assert.Panics(t, func() { bb.Slice(0, bb.Cap()+1) })
}

func TestByteBufferExtendAndExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	ok := bb.Extend(4)
	require.True(t, ok)
	assert.Equal(t, 4, bb.Len())

	ok = bb.Extend(100)
	assert.False(t, ok)

	bb.ExtendOrGrow(100)
	assert.Equal(t, 104, bb.Len())
}

func TestByteBufferGrowSmall(t *testing.T) {
	bb := NewByteBuffer(PackBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, PackBufferDefaultSize)...)

	bb.Grow(1024)
	assert.GreaterOrEqual(t, bb.Cap(), PackBufferDefaultSize+1024)
	assert.Equal(t, PackBufferDefaultSize, len(bb.B))
}

func TestByteBufferGrowLarge(t *testing.T) {
	bb := NewByteBuffer(0)
	largeSize := 4*PackBufferDefaultSize + 1024
	bb.B = make([]byte, largeSize)

	before := bb.Cap()
	bb.Grow(before / 8)
	assert.GreaterOrEqual(t, bb.Cap(), before)
}

func TestByteBufferGrowNoop(t *testing.T) {
	bb := NewByteBuffer(64)
	before := bb.Cap()
	bb.Grow(8)
	assert.Equal(t, before, bb.Cap())
}

func TestByteBufferWriteAndWriteTo(t *testing.T) {
	bb := NewByteBuffer(0)
	n, err := bb.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(3), written)
	assert.Equal(t, "abc", out.String())
}

func TestByteBufferPoolGetPut(t *testing.T) {
	p := NewByteBufferPool(32, 128)
	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("x"))
	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len(), "pooled buffer should come back reset")
}

func TestByteBufferPoolPutNilIsNoop(t *testing.T) {
	p := NewByteBufferPool(32, 128)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)
	bb := p.Get()
	bb.B = make([]byte, 0, 64) // exceeds maxThreshold
	p.Put(bb)                  // should be discarded, not pooled

	bb2 := p.Get()
	assert.Less(t, bb2.Cap(), 64)
}

func TestGetPutPackBuffer(t *testing.T) {
	bb := GetPackBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("tuple"))
	PutPackBuffer(bb)

	bb2 := GetPackBuffer()
	assert.Equal(t, 0, bb2.Len())
	PutPackBuffer(bb2)
}
