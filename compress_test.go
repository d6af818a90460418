package qubed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQubeCompressMergesSiblings(t *testing.T) {
	q := New()
	c1, err := q.CreateChild(q.Root(), "class", []string{"od"})
	require.NoError(t, err)
	_, err = q.CreateChild(c1, "expver", []string{"0001"})
	require.NoError(t, err)

	c2, err := q.CreateChild(q.Root(), "class", []string{"rd"})
	require.NoError(t, err)
	_, err = q.CreateChild(c2, "expver", []string{"0001"})
	require.NoError(t, err)

	require.NoError(t, q.Compress())
	require.Len(t, q.Children(q.Root()), 1)
}

func TestQubeCompressPrunesEmptyBranch(t *testing.T) {
	q := New()
	empty, err := q.CreateChild(q.Root(), "class", nil)
	require.NoError(t, err)
	_ = empty

	require.NoError(t, q.Compress())
	require.Empty(t, q.Children(q.Root()))
}
