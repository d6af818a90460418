// Package query implements the select/prune operation of §4.6: given a
// set of per-dimension constraints, build the sub-Qube of tuples that
// satisfy every constrained dimension, leaving unconstrained
// dimensions untouched wherever they occur in the tree.
package query

import (
	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/coordset"
)

// Mode selects between the two behaviours §4.6 names for what happens
// to a branch whose deeper constraints eliminate every descendant:
// Default keeps the branch as a shallower partial match, Prune drops
// it entirely.
type Mode int

const (
	// Default keeps every branch whose own dimension satisfies its
	// constraint (if any), even if recursion below it eliminates all
	// of its descendants — the result may have uneven depth.
	Default Mode = iota

	// Prune additionally removes any node whose subtree's set of
	// dimension names does not include every constrained dimension,
	// whether that is because filtering emptied the branch or because
	// the branch never touched the constrained dimension at all.
	Prune
)

// Select walks src, filtering every node whose dimension name appears
// in constraints down to the intersection with the constraint's
// coordinate set, and copying every other node unchanged. It returns
// a new, independent arena.
func Select(src *arena.Arena, constraints map[string]*coordset.Set, mode Mode) (*arena.Arena, error) {
	dst := arena.New()
	if err := selectInto(dst, dst.Root(), src, src.Root(), constraints); err != nil {
		return nil, err
	}
	if mode == Prune {
		required := make([]string, 0, len(constraints))
		for name := range constraints {
			required = append(required, name)
		}
		if _, err := pruneMissingDimensions(dst, dst.Root(), required); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func selectInto(dst *arena.Arena, dstParent arena.NodeID, src *arena.Arena, srcNode arena.NodeID, constraints map[string]*coordset.Set) error {
	sn, ok := src.Get(srcNode)
	if !ok {
		return nil
	}

	for _, child := range sn.OrderedChildren() {
		cn, ok := src.Get(child)
		if !ok {
			continue
		}
		name, ok := src.Interner().Resolve(cn.Dim())
		if !ok {
			continue
		}

		coords := cn.Coords()
		if constraint, ok := constraints[name]; ok {
			inter, _, _, err := coords.Intersect(constraint)
			if err != nil {
				return err
			}
			if inter.IsEmpty() {
				continue
			}
			coords = inter
		}

		newChild, err := dst.CreateChild(dstParent, name, coords.Clone())
		if err != nil {
			return err
		}
		if err := selectInto(dst, newChild, src, child, constraints); err != nil {
			return err
		}
	}
	return nil
}

// pruneMissingDimensions walks dst post-order, deleting any node whose
// subtree's set of dimension names does not include every name in
// required (§4.6's Prune semantics: a branch that never touches a
// constrained dimension at all is dropped, not just one emptied by
// filtering). It returns the set of dimension names present in id's
// own (possibly now-pruned) subtree, for the parent call to fold in.
func pruneMissingDimensions(dst *arena.Arena, id arena.NodeID, required []string) (map[string]bool, error) {
	n, ok := dst.Get(id)
	if !ok {
		return nil, nil
	}

	dims := make(map[string]bool)
	if id != dst.Root() {
		if name, ok := dst.Interner().Resolve(n.Dim()); ok {
			dims[name] = true
		}
	}

	for _, child := range append([]arena.NodeID(nil), n.OrderedChildren()...) {
		childDims, err := pruneMissingDimensions(dst, child, required)
		if err != nil {
			return nil, err
		}
		if !hasAll(childDims, required) {
			if err := dst.RemoveNode(child); err != nil {
				return nil, err
			}
			continue
		}
		for d := range childDims {
			dims[d] = true
		}
	}
	return dims, nil
}

func hasAll(have map[string]bool, required []string) bool {
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}

// ConstraintsFromStrings builds a constraints map from plain string
// values per dimension, the shape produced by the MARS-list and
// DSS-constraints adapters (§4.8, §4.9). Each value is parsed the same
// way a coordinate token is (int, then float, then string).
func ConstraintsFromStrings(raw map[string][]string) map[string]*coordset.Set {
	out := make(map[string]*coordset.Set, len(raw))
	for dim, vals := range raw {
		out[dim] = coordset.FromTokens(vals)
	}
	return out
}
