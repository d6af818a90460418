// Package datacube converts between a Qube tree and the flat,
// MARS-style "datacube" view of §4.7: an ordered list of dimensions,
// each carrying the full set of values it takes across a dense
// combination of every other dimension's values.
//
// A single datacube is dense by construction — every combination of
// its dimensions' values is implicitly present — so it maps onto a
// Qube as one straight chain, one node per dimension, each holding
// that dimension's whole value set. A Qube in general holds many such
// chains fanned out from shared prefixes; ToDatacubes recovers one
// dense datacube per root-to-leaf path.
package datacube

import (
	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/coordset"
)

// Cube is one dense combination: Dims gives the column order, Values
// holds each dimension's value set rendered as strings (the canonical
// token form used by the ASCII/JSON round trip).
type Cube struct {
	Dims   []string
	Values map[string][]string
}

// FromCube builds a fresh arena containing the single chain
// Dims[0] -> Dims[1] -> ... -> Dims[len-1], each node holding the
// corresponding coordinate set from Values.
func FromCube(c Cube) *arena.Arena {
	a := arena.New()
	parent := a.Root()
	for _, dim := range c.Dims {
		coords := coordset.FromTokens(c.Values[dim])
		child, err := a.CreateChild(parent, dim, coords)
		if err != nil {
			// CreateChild only fails on an invalid parent, which
			// cannot happen while walking our own freshly built chain.
			panic(err)
		}
		parent = child
	}
	return a
}

// ToCubes enumerates every root-to-leaf path in a as one Cube each,
// in dimension order as encountered along that path. A dimension
// repeated more than once along a single path gets one Dims entry per
// occurrence, but Values holds a single set per name: the set of the
// occurrence nearest the leaf. The others are not kept.
func ToCubes(a *arena.Arena) []Cube {
	var out []Cube
	walk(a, a.Root(), nil, map[string][]string{}, &out)
	return out
}

func walk(a *arena.Arena, id arena.NodeID, dims []string, values map[string][]string, out *[]Cube) {
	n, ok := a.Get(id)
	if !ok {
		return
	}

	kids := n.AllChildren()
	if len(kids) == 0 {
		if len(dims) > 0 {
			cp := make(map[string][]string, len(values))
			for k, v := range values {
				cp[k] = append([]string(nil), v...)
			}
			*out = append(*out, Cube{Dims: append([]string(nil), dims...), Values: cp})
		}
		return
	}

	for _, child := range n.OrderedChildren() {
		cn, ok := a.Get(child)
		if !ok {
			continue
		}
		name, ok := a.Interner().Resolve(cn.Dim())
		if !ok {
			continue
		}
		prev, had := values[name]
		values[name] = toStrings(cn.Coords())
		walk(a, child, append(dims, name), values, out)
		if had {
			values[name] = prev
		} else {
			delete(values, name)
		}
	}
}

func toStrings(s *coordset.Set) []string {
	if s.IsEmpty() {
		return nil
	}
	return splitCanonical(s.String())
}

func splitCanonical(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
