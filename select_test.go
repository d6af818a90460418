package qubed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSelectTree(t *testing.T) *Qube {
	t.Helper()
	q := New()
	class, err := q.CreateChild(q.Root(), "class", []string{"od", "rd"})
	require.NoError(t, err)
	pl, err := q.CreateChild(class, "levtype", []string{"pl"})
	require.NoError(t, err)
	_, err = q.CreateChild(pl, "levelist", []string{"500", "850"})
	require.NoError(t, err)
	_, err = q.CreateChild(class, "levtype", []string{"sfc"})
	require.NoError(t, err)
	return q
}

func TestSelectDefaultFiltersConstrainedDimension(t *testing.T) {
	q := buildSelectTree(t)
	sub, err := q.Select(map[string][]string{"class": {"od"}}, SelectDefault)
	require.NoError(t, err)

	class := sub.Children(sub.Root())[0]
	require.Equal(t, "od", sub.Coordinates(class).String())
}

func TestSelectPruneRemovesEmptiedBranches(t *testing.T) {
	q := buildSelectTree(t)
	sub, err := q.Select(map[string][]string{
		"levtype":  {"pl"},
		"levelist": {"9999"},
	}, SelectPrune)
	require.NoError(t, err)

	require.Empty(t, sub.Children(sub.Root()), "no branch keeps both levtype and levelist, so everything is pruned")
}

func TestSelectDoesNotMutateSource(t *testing.T) {
	q := buildSelectTree(t)
	before, err := q.StructuralHash(q.Root())
	require.NoError(t, err)

	_, err = q.Select(map[string][]string{"class": {"od"}}, SelectPrune)
	require.NoError(t, err)

	after, err := q.StructuralHash(q.Root())
	require.NoError(t, err)
	require.Equal(t, before, after)
}
