package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tupledb/tuple/errs"
	"github.com/tupledb/tuple/format"
)

func segmentFor(t *testing.T, data []byte) Segment {
	t.Helper()
	r := NewReader(data)
	seg, ok, err := r.ParseNext()
	require.NoError(t, err)
	require.True(t, ok)

	return seg
}

func TestDecodeUint64RejectsNegativeTag(t *testing.T) {
	w := NewWriter()
	w.EmitInt(-1)
	seg := segmentFor(t, w.Finish())

	_, err := DecodeUint64(seg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOverflow)
}

func TestDecodeUint64FullRange(t *testing.T) {
	w := NewWriter()
	w.EmitUint(math.MaxUint64)
	seg := segmentFor(t, w.Finish())

	got, err := DecodeUint64(seg)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestDecodeInt64OverflowOnWideUnsigned(t *testing.T) {
	w := NewWriter()
	w.EmitUint(math.MaxUint64)
	seg := segmentFor(t, w.Finish())

	_, err := DecodeInt64(seg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOverflow)
}

func TestDecodeInt64MinInt64RoundTrip(t *testing.T) {
	w := NewWriter()
	w.EmitInt(math.MinInt64)
	seg := segmentFor(t, w.Finish())

	got, err := DecodeInt64(seg)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got)
}

func TestDecodeInt64RoundTripTable(t *testing.T) {
	values := []int64{0, 1, -1, 255, -255, 256, -256, math.MaxInt64, math.MinInt64 + 1}
	for _, v := range values {
		w := NewWriter()
		w.EmitInt(v)
		seg := segmentFor(t, w.Finish())

		got, err := DecodeInt64(seg)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeWrongTagIsOverflow(t *testing.T) {
	w := NewWriter()
	w.EmitString("x")
	seg := segmentFor(t, w.Finish())

	_, err := DecodeInt64(seg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOverflow)
}

func TestDecodeStringRejectsInvalidUTF8(t *testing.T) {
	// Hand-construct a String segment with an invalid UTF-8 byte sequence.
	raw := []byte{byte(format.TagString), 0xFF, 0xFE, 0x00}
	seg := Segment{Tag: format.TagString, Raw: raw}

	_, err := DecodeString(seg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedTuple)
}

func TestDecodeFloat64FromFloat32Widens(t *testing.T) {
	w := NewWriter()
	w.EmitFloat32(1.5)
	seg := segmentFor(t, w.Finish())

	got, err := DecodeFloat64(seg)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 0)
}

func TestDecodeFloat32FromFloat64Narrows(t *testing.T) {
	w := NewWriter()
	w.EmitFloat64(2.5)
	seg := segmentFor(t, w.Finish())

	got, err := DecodeFloat32(seg)
	require.NoError(t, err)
	assert.InDelta(t, float32(2.5), got, 0)
}

func TestDecodeFloatRoundTripPreservesSign(t *testing.T) {
	for _, v := range []float64{math.Copysign(0, -1), 0.0, 1, -1, math.Inf(1), math.Inf(-1)} {
		w := NewWriter()
		w.EmitFloat64(v)
		seg := segmentFor(t, w.Finish())
		got, err := DecodeFloat64(seg)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeUUID128And64RoundTrip(t *testing.T) {
	var u128 [16]byte
	var u64 [8]byte
	for i := range u128 {
		u128[i] = byte(i * 7)
	}
	for i := range u64 {
		u64[i] = byte(i * 11)
	}

	w := NewWriter()
	w.EmitUUID128(u128)
	seg := segmentFor(t, w.Finish())
	got128, err := DecodeUUID128(seg)
	require.NoError(t, err)
	assert.Equal(t, u128, got128)

	w = NewWriter()
	w.EmitUUID64(u64)
	seg = segmentFor(t, w.Finish())
	got64, err := DecodeUUID64(seg)
	require.NoError(t, err)
	assert.Equal(t, u64, got64)
}

func TestIsNull(t *testing.T) {
	w := NewWriter()
	w.EmitNull()
	seg := segmentFor(t, w.Finish())
	assert.True(t, IsNull(seg))

	w = NewWriter()
	w.EmitInt(0)
	seg = segmentFor(t, w.Finish())
	assert.False(t, IsNull(seg))
}
