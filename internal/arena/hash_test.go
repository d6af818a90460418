package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/qubed/internal/coordset"
)

func buildSimpleTree(a *Arena) {
	class, _ := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"od"}))
	_, _ = a.CreateChild(class, "expver", coordset.FromTokens([]string{"0001", "0002"}))
}

func TestStructuralHashEqualAcrossArenas(t *testing.T) {
	a := New()
	buildSimpleTree(a)
	b := New()
	buildSimpleTree(b)

	ha, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	hb, err := b.StructuralHash(b.Root())
	require.NoError(t, err)
	require.Equal(t, ha, hb, "structurally identical trees in different arenas must hash equal")
}

func TestStructuralHashIgnoresSiblingOrder(t *testing.T) {
	a := New()
	c1, _ := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"od"}))
	_, _ = a.CreateChild(c1, "expver", coordset.FromTokens([]string{"0001"}))
	c2, _ := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"rd"}))
	_, _ = a.CreateChild(c2, "expver", coordset.FromTokens([]string{"0002"}))

	b := New()
	d2, _ := b.CreateChild(b.Root(), "class", coordset.FromTokens([]string{"rd"}))
	_, _ = b.CreateChild(d2, "expver", coordset.FromTokens([]string{"0002"}))
	d1, _ := b.CreateChild(b.Root(), "class", coordset.FromTokens([]string{"od"}))
	_, _ = b.CreateChild(d1, "expver", coordset.FromTokens([]string{"0001"}))

	ha, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	hb, err := b.StructuralHash(b.Root())
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

func TestStructuralHashDiffersOnCoords(t *testing.T) {
	a := New()
	buildSimpleTree(a)
	b := New()
	class, _ := b.CreateChild(b.Root(), "class", coordset.FromTokens([]string{"od"}))
	_, _ = b.CreateChild(class, "expver", coordset.FromTokens([]string{"0001", "0003"}))

	ha, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	hb, err := b.StructuralHash(b.Root())
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestStructuralHashNeverZero(t *testing.T) {
	a := New()
	h, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	require.NotZero(t, h)
}

func TestStructuralHashCachedUntilInvalidated(t *testing.T) {
	a := New()
	buildSimpleTree(a)
	h1, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	h2, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}
