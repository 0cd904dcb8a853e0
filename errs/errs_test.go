package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tupledb/tuple/format"
)

func TestMalformedTupleErrorIs(t *testing.T) {
	err := NewMalformed(3, format.TagString, "unterminated string")
	require.ErrorIs(t, err, ErrMalformedTuple)
	require.Contains(t, err.Error(), "offset 3")
	require.Contains(t, err.Error(), "unterminated string")
}

func TestMalformedTupleErrorWrapped(t *testing.T) {
	err := fmt.Errorf("decode element 2: %w", NewMalformed(7, format.TagBytes, "bad escape"))
	require.ErrorIs(t, err, ErrMalformedTuple)

	var target *MalformedTupleError
	require.True(t, errors.As(err, &target))
	require.Equal(t, 7, target.Offset)
}

func TestOverflowErrorIs(t *testing.T) {
	err := NewOverflow(format.TagIntZero+1, format.TagIntMax)
	require.ErrorIs(t, err, ErrOverflow)
	require.Contains(t, err.Error(), "overflow")
}

func TestSentinelsDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrMalformedTuple, ErrOverflow))
	require.False(t, errors.Is(ErrOutOfRange, ErrUnsupported))
}
