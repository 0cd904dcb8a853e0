package rangekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveEmptyPrefixIsOpenEnded(t *testing.T) {
	r, err := Derive(nil)
	require.NoError(t, err)
	assert.True(t, r.OpenEnded)
	assert.Empty(t, r.Begin)
}

func TestDeriveDefaultConvention(t *testing.T) {
	prefix := []byte{0x02, 0x48, 0x65, 0x6C, 0x6C, 0x6F, 0x00} // packed ("Hello",)
	r, err := Derive(prefix)
	require.NoError(t, err)

	wantBegin := append(append([]byte{}, prefix...), 0x00)
	wantEnd := append(append([]byte{}, prefix...), 0xFF)
	assert.Equal(t, wantBegin, r.Begin)
	assert.Equal(t, wantEnd, r.End)
	assert.False(t, r.OpenEnded)
}

func TestDeriveNextPrefixConvention(t *testing.T) {
	r, err := Derive([]byte{0x01, 0xFF}, WithNextPrefixEnd())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, r.End)
	assert.False(t, r.OpenEnded)
}

func TestDeriveNextPrefixAllFF(t *testing.T) {
	r, err := Derive([]byte{0xFF, 0xFF}, WithNextPrefixEnd())
	require.NoError(t, err)
	assert.True(t, r.OpenEnded)
}

func TestDeriveRangeContainsExtension(t *testing.T) {
	prefix := []byte{0x15, 0x01} // packed (1,)
	r, err := Derive(prefix)
	require.NoError(t, err)

	extended := append(append([]byte{}, prefix...), 0x15, 0x02) // packed (1, 2)
	assert.True(t, bytesLess(r.Begin, extended) || bytesEqual(r.Begin, extended))
	assert.True(t, bytesLess(extended, r.End))
}

func bytesLess(a, b []byte) bool {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func bytesEqual(a, b []byte) bool {
	return string(a) == string(b)
}
