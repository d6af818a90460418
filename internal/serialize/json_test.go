package serialize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/coordset"
	"github.com/scigolib/qubed/internal/qerr"
)

func TestJSONRoundTrip(t *testing.T) {
	a := arena.New()
	class, err := a.CreateChild(a.Root(), "class", coordset.FromTokens([]string{"1", "2"}))
	require.NoError(t, err)
	_, err = a.CreateChild(class, "expver", coordset.FromTokens([]string{"0001"}))
	require.NoError(t, err)

	data, err := ToJSON(a)
	require.NoError(t, err)

	parsed, err := FromJSON(data)
	require.NoError(t, err)

	h1, err := a.StructuralHash(a.Root())
	require.NoError(t, err)
	h2, err := parsed.StructuralHash(parsed.Root())
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestJSONLeafIsEmptyObject(t *testing.T) {
	a := arena.New()
	_, err := a.CreateChild(a.Root(), "param", coordset.FromTokens([]string{"130"}))
	require.NoError(t, err)

	data, err := ToJSON(a)
	require.NoError(t, err)
	require.Contains(t, string(data), `"param=130":{}`)
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	_, err := FromJSON([]byte("not json"))
	require.Error(t, err)
	require.True(t, errors.Is(err, qerr.ErrInvalidFormat))
}

func TestFromJSONRejectsKeyWithoutEquals(t *testing.T) {
	_, err := FromJSON([]byte(`{"class":{}}`))
	require.Error(t, err)
}

func TestFromJSONEmptyObjectIsEmptyTree(t *testing.T) {
	parsed, err := FromJSON([]byte(`{}`))
	require.NoError(t, err)
	root, ok := parsed.Get(parsed.Root())
	require.True(t, ok)
	require.Empty(t, root.OrderedChildren())
}
