package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackAndUnpackRoundTrip(t *testing.T) {
	key := New(Str("users"), Int(42), Str("email"))
	packed := key.ToBytes()

	decoded, err := FromBytes(packed)
	require.NoError(t, err)
	require.Equal(t, 3, decoded.Len())

	name, err := decoded.Get(0)
	require.NoError(t, err)
	s, err := name.AsString()
	require.NoError(t, err)
	assert.Equal(t, "users", s)

	id, err := decoded.Get(1)
	require.NoError(t, err)
	n, err := id.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestRangeDefaultConvention(t *testing.T) {
	prefix := New(Str("users")).ToBytes()

	r, err := Range(prefix)
	require.NoError(t, err)
	assert.False(t, r.OpenEnded)
	assert.Equal(t, append(append([]byte{}, prefix...), 0x00), r.Begin)
	assert.Equal(t, append(append([]byte{}, prefix...), 0xFF), r.End)
}

func TestRangeEmptyPrefixIsOpenEnded(t *testing.T) {
	r, err := Range(nil)
	require.NoError(t, err)
	assert.True(t, r.OpenEnded)
	assert.Nil(t, r.Begin)
}

func TestRangeWithNextPrefixEnd(t *testing.T) {
	r, err := Range([]byte{0x01, 0xFF}, WithNextPrefixEnd())
	require.NoError(t, err)
	assert.False(t, r.OpenEnded)
	assert.Equal(t, []byte{0x02}, r.End)
}

func TestFromDynamicValues(t *testing.T) {
	v, err := From(int64(7))
	require.NoError(t, err)
	n, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	v, err = From("hello")
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = From(struct{ X int }{X: 1})
	assert.Error(t, err)
}

func TestPackManySharesPrefix(t *testing.T) {
	items := []Value{Int(1), Null(), Int(2)}
	slices, err := PackMany([]byte("p"), items)
	require.NoError(t, err)
	require.Len(t, slices, 3)
	assert.NotEmpty(t, slices[0])
	assert.Empty(t, slices[1])
	assert.NotEmpty(t, slices[2])
}

func TestWithPrefixTuple(t *testing.T) {
	tail := New(Int(1), Str("x"))
	wrapped := WithPrefix([]byte("opaque"), tail)

	assert.Equal(t, tail.Len(), wrapped.Len())
	first, err := wrapped.Get(0)
	require.NoError(t, err)
	n, err := first.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
