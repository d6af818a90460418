package serialize

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/coordset"
	"github.com/scigolib/qubed/internal/qerr"
)

// treeObject is the JSON shape of §6: every object's keys are
// "key=values" strings, and each value is the object of that node's
// own children. A leaf is represented by an empty object.
type treeObject map[string]treeObject

// ToJSON renders a's children (the sentinel root is never emitted) as
// a treeObject, encoded through github.com/goccy/go-json — the same
// codec the DSS-constraints adapter uses (§4.9), so the module has one
// JSON library, not two.
func ToJSON(a *arena.Arena) ([]byte, error) {
	return json.Marshal(toTreeObject(a, a.Root()))
}

func toTreeObject(a *arena.Arena, id arena.NodeID) treeObject {
	n, ok := a.Get(id)
	if !ok {
		return treeObject{}
	}
	out := make(treeObject, len(n.OrderedChildren()))
	for _, child := range n.OrderedChildren() {
		cn, ok := a.Get(child)
		if !ok {
			continue
		}
		name, ok := a.Interner().Resolve(cn.Dim())
		if !ok {
			continue
		}
		key := name + "=" + cn.Coords().String()
		out[key] = toTreeObject(a, child)
	}
	return out
}

// FromJSON parses the object ToJSON produces back into a fresh arena.
func FromJSON(data []byte) (*arena.Arena, error) {
	var root treeObject
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, qerr.Wrap("FromJSON", qerr.ErrInvalidFormat)
	}
	a := arena.New()
	if err := buildTreeObject(a, a.Root(), root); err != nil {
		return nil, err
	}
	return a, nil
}

func buildTreeObject(a *arena.Arena, parent arena.NodeID, obj treeObject) error {
	for key, children := range obj {
		eq := strings.IndexByte(key, '=')
		if eq <= 0 {
			return qerr.Wrap("FromJSON", qerr.ErrInvalidFormat)
		}
		name := key[:eq]
		coords := coordset.ParseSlashJoined(key[eq+1:])

		id, err := a.CreateChild(parent, name, coords)
		if err != nil {
			return err
		}
		if err := buildTreeObject(a, id, children); err != nil {
			return err
		}
	}
	return nil
}
