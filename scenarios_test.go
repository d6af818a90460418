package qubed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const classExpverParamASCII = `root
└── class=1/2
    └── expver=0001/0002
        └── param=1/2/3
`

func TestScenarioIdenticalTreeUnion(t *testing.T) {
	a, err := FromASCII(classExpverParamASCII)
	require.NoError(t, err)
	b, err := FromASCII(classExpverParamASCII)
	require.NoError(t, err)

	require.NoError(t, a.Union(b))
	require.NoError(t, a.Compress())

	require.Equal(t, classExpverParamASCII, a.ToASCII())
}

func TestScenarioDisjointUnion(t *testing.T) {
	a := New()
	c1, err := a.CreateChild(a.Root(), "class", []string{"1"})
	require.NoError(t, err)
	e1, err := a.CreateChild(c1, "expver", []string{"0001"})
	require.NoError(t, err)
	_, err = a.CreateChild(e1, "param", []string{"1"})
	require.NoError(t, err)

	hBefore, err := a.StructuralHash(a.Root())
	require.NoError(t, err)

	b := New()
	c2, err := b.CreateChild(b.Root(), "class", []string{"2"})
	require.NoError(t, err)
	e2, err := b.CreateChild(c2, "expver", []string{"0002"})
	require.NoError(t, err)
	_, err = b.CreateChild(e2, "param", []string{"2"})
	require.NoError(t, err)

	require.NoError(t, a.Union(b))
	require.NoError(t, a.Compress())

	require.Len(t, a.Children(a.Root()), 2, "disjoint class values stay as separate siblings")

	hAfter, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	require.NotEqual(t, hBefore, hAfter)
}

func TestScenarioPartialOverlapUnion(t *testing.T) {
	a := New()
	c1, err := a.CreateChild(a.Root(), "class", []string{"1"})
	require.NoError(t, err)
	e1, err := a.CreateChild(c1, "expver", []string{"0001"})
	require.NoError(t, err)
	_, err = a.CreateChild(e1, "param", []string{"1", "2"})
	require.NoError(t, err)

	b := New()
	c2, err := b.CreateChild(b.Root(), "class", []string{"1"})
	require.NoError(t, err)
	e2, err := b.CreateChild(c2, "expver", []string{"0001"})
	require.NoError(t, err)
	_, err = b.CreateChild(e2, "param", []string{"2", "3"})
	require.NoError(t, err)

	require.NoError(t, a.Union(b))
	require.NoError(t, a.Compress())

	require.Len(t, a.Children(a.Root()), 1)
	class := a.Children(a.Root())[0]
	require.Equal(t, "1", a.Coordinates(class).String())

	require.Len(t, a.Children(class), 1)
	expver := a.Children(class)[0]
	require.Equal(t, "0001", a.Coordinates(expver).String())

	require.Len(t, a.Children(expver), 1)
	param := a.Children(expver)[0]
	require.Equal(t, "1/2/3", a.Coordinates(param).String())
}

func TestScenarioCompressionRemovesDuplicateBranch(t *testing.T) {
	q := New()
	class, err := q.CreateChild(q.Root(), "class", []string{"1"})
	require.NoError(t, err)
	_, err = q.CreateChild(class, "expver", []string{"0002"})
	require.NoError(t, err)
	_, err = q.CreateChild(class, "expver", []string{"0002"})
	require.NoError(t, err)

	require.Len(t, q.Children(class), 1, "CreateChild's own dedup already collapses identical coords")

	require.NoError(t, q.Compress())
	require.Len(t, q.Children(class), 1)
}

func TestScenarioSelectBySingleDimension(t *testing.T) {
	q, err := FromASCII(classExpverParamASCII)
	require.NoError(t, err)

	sub, err := q.Select(map[string][]string{"class": {"1"}}, SelectDefault)
	require.NoError(t, err)

	class := sub.Children(sub.Root())[0]
	require.Equal(t, "1", sub.Coordinates(class).String())

	sub2, err := q.Select(map[string][]string{
		"class": {"1"},
		"param": {"1"},
	}, SelectDefault)
	require.NoError(t, err)

	class2 := sub2.Children(sub2.Root())[0]
	expver2 := sub2.Children(class2)[0]
	param2 := sub2.Children(expver2)[0]
	require.Equal(t, "1", sub2.Coordinates(param2).String())
}

func TestScenarioPruneDropsUnmatchedSubtree(t *testing.T) {
	q := New()
	class, err := q.CreateChild(q.Root(), "class", []string{"1", "2"})
	require.NoError(t, err)
	e1, err := q.CreateChild(class, "expver", []string{"0001"})
	require.NoError(t, err)
	_, err = q.CreateChild(e1, "param", []string{"1"})
	require.NoError(t, err)

	typ, err := q.CreateChild(q.Root(), "type", []string{"x"})
	require.NoError(t, err)
	e2, err := q.CreateChild(typ, "expver", []string{"0001"})
	require.NoError(t, err)
	_, err = q.CreateChild(e2, "param", []string{"1"})
	require.NoError(t, err)

	sub, err := q.Select(map[string][]string{"class": {"1", "2"}}, SelectPrune)
	require.NoError(t, err)

	for _, id := range sub.Children(sub.Root()) {
		require.Equal(t, "class", sub.Dimension(id), "the type=x subtree has no class node and is dropped entirely")
	}
}
