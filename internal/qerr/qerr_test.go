package qerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap("op", nil))
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap("CreateChild", ErrInvalidParent)
	require.True(t, errors.Is(err, ErrInvalidParent))
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestWrapMessageIncludesOp(t *testing.T) {
	err := Wrap("Select", ErrInvalidFormat)
	require.Contains(t, err.Error(), "Select")
	require.Contains(t, err.Error(), ErrInvalidFormat.Error())
}

func TestErrorAsUnwraps(t *testing.T) {
	err := Wrap("Union", ErrUnsupportedKindPair)
	var qe *Error
	require.True(t, errors.As(err, &qe))
	require.Equal(t, "Union", qe.Op)
}
