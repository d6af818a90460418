package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/qubed/internal/coordset"
	"github.com/scigolib/qubed/internal/qerr"
)

func TestNewHasRoot(t *testing.T) {
	a := New()
	root, ok := a.Get(a.Root())
	require.True(t, ok)
	require.True(t, root.Coords().IsEmpty())
	_, hasParent := root.Parent()
	require.False(t, hasParent)
}

func TestCreateChildDedup(t *testing.T) {
	a := New()
	coords := coordset.FromTokens([]string{"1", "2"})

	id1, err := a.CreateChild(a.Root(), "class", coords)
	require.NoError(t, err)

	id2, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1", "2"}))
	require.NoError(t, err)

	require.Equal(t, id1, id2, "creating a child with an equal coordinate set should return the existing node")
}

func TestCreateChildDistinctCoords(t *testing.T) {
	a := New()
	id1, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	id2, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"2"}))
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}

func TestCreateChildInvalidParent(t *testing.T) {
	a := New()
	stale := NodeID{}
	_, err := a.CreateChild(stale, "class", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, qerr.ErrInvalidParent))
}

func TestRemoveNodeDetachesFromParent(t *testing.T) {
	a := New()
	id, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)

	require.NoError(t, a.RemoveNode(id))

	_, ok := a.Get(id)
	require.False(t, ok, "removed node should no longer resolve")

	root, _ := a.Get(a.Root())
	require.Empty(t, root.OrderedChildren())
}

func TestRemoveNodeRemovesDescendants(t *testing.T) {
	a := New()
	parent, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	child, err := a.CreateChild(parent, "expver", coordset.FromTokens([]string{"0001"}))
	require.NoError(t, err)

	require.NoError(t, a.RemoveNode(parent))

	_, ok := a.Get(child)
	require.False(t, ok, "descendant should be removed along with its ancestor")
}

func TestSlotReuseNeverAliasesStaleID(t *testing.T) {
	a := New()
	id, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	require.NoError(t, a.RemoveNode(id))

	// Force slot reuse.
	newID, err := a.CreateChild(a.Root(), "expver", coordset.FromTokens([]string{"0001"}))
	require.NoError(t, err)

	_, ok := a.Get(id)
	require.False(t, ok, "the stale id must never resolve, even if its slot was reused")
	_, ok = a.Get(newID)
	require.True(t, ok)
}

func TestOrderedChildrenSpansMultipleDimensions(t *testing.T) {
	a := New()
	c1, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	c2, err := a.CreateChild(a.Root(), "expver", coordset.FromTokens([]string{"0001"}))
	require.NoError(t, err)
	c3, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"2"}))
	require.NoError(t, err)

	root, _ := a.Get(a.Root())
	require.Equal(t, []NodeID{c1, c2, c3}, root.OrderedChildren())
}

func TestSetCoordsInvalidatesHash(t *testing.T) {
	a := New()
	id, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)

	h1, err := a.StructuralHash(a.Root())
	require.NoError(t, err)

	require.NoError(t, a.SetCoords(id, coordset.FromTokens([]string{"2"})))

	h2, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "changing a descendant's coordinates must invalidate the root's cached hash")
}

func TestCopySubtreeDeepClonesCoords(t *testing.T) {
	src := New()
	parent, err := src.CreateChild(src.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	_, err = src.CreateChild(parent, "expver", coordset.FromTokens([]string{"0001", "0002"}))
	require.NoError(t, err)

	dst := New()
	newID, err := CopySubtree(dst, src, parent, dst.Root())
	require.NoError(t, err)

	copied, ok := dst.Get(newID)
	require.True(t, ok)
	require.Equal(t, "1", copied.Coords().String())
	require.Len(t, copied.OrderedChildren(), 1)

	// Mutating the source afterward must not affect the clone.
	require.NoError(t, src.SetCoords(parent, coordset.FromTokens([]string{"99"})))
	require.Equal(t, "1", copied.Coords().String())
}

func TestCopyChildrenLeavesDstIdentityUntouched(t *testing.T) {
	src := New()
	srcParent, err := src.CreateChild(src.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)
	_, err = src.CreateChild(srcParent, "expver", coordset.FromTokens([]string{"0001"}))
	require.NoError(t, err)

	dst := New()
	dstParent, err := dst.CreateChild(dst.Root(), "class", coordset.FromTokens([]string{"1"}))
	require.NoError(t, err)

	require.NoError(t, CopyChildren(dst, src, srcParent, dstParent))

	dn, ok := dst.Get(dstParent)
	require.True(t, ok)
	require.Equal(t, "1", dn.Coords().String(), "CopyChildren must not touch dst's own coordinates")
	require.Len(t, dn.OrderedChildren(), 1)
}
