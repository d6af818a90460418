// Package compressengine restores a Qube tree to canonical form after
// a union, per §4.5: a bottom-up compression made of three passes —
// coordinate merge (siblings along the same dimension whose subtrees
// are otherwise identical collapse into one, their own coordinates
// unioned), empty-node pruning (dead leaves with no coordinates and no
// children are removed), and hash dedup (any remaining siblings that
// are now fully identical, coordinates included, collapse to one).
//
// The three passes run in sequence, each bottom-up, and the whole
// sequence repeats until a full round makes no further change — a
// single round can expose new merge opportunities one level up that
// the next round needs to catch.
package compressengine

import (
	"sort"

	"github.com/scigolib/qubed/internal/arena"
)

// PruneEmpty runs the empty-node pruning pass alone, repeating until a
// full pass makes no further change, without the coordinate-merge and
// hash-dedup passes of Compress.
func PruneEmpty(a *arena.Arena) error {
	for {
		changed, err := pruneEmpty(a, a.Root())
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
}

// Compress mutates a in place until it reaches a fixed point under the
// three passes below.
func Compress(a *arena.Arena) error {
	for {
		changed := false

		c, err := mergeCoordinates(a, a.Root())
		if err != nil {
			return err
		}
		changed = changed || c

		c, err = pruneEmpty(a, a.Root())
		if err != nil {
			return err
		}
		changed = changed || c

		c, err = dedupByHash(a, a.Root())
		if err != nil {
			return err
		}
		changed = changed || c

		if !changed {
			return nil
		}
	}
}

// mergeCoordinates groups, for every dimension the node branches on,
// its children by the structural hash of their *subtree shape* —
// their own descendants, ignoring their own coordinate set. Children
// that share a shape collapse into one, with their coordinate sets
// unioned (§4.5 "coordinate merge"): two siblings whose descendants
// are identical represent the same sub-structure reached through
// different coordinate values, so there is no reason to keep them
// apart.
func mergeCoordinates(a *arena.Arena, id arena.NodeID) (bool, error) {
	n, ok := a.Get(id)
	if !ok {
		return false, nil
	}
	changed := false
	for _, d := range n.ChildDims() {
		for _, child := range n.Children(d) {
			c, err := mergeCoordinates(a, child)
			if err != nil {
				return false, err
			}
			changed = changed || c
		}
	}

	for _, d := range n.ChildDims() {
		kids := n.Children(d)
		if len(kids) < 2 {
			continue
		}
		groups := make(map[uint64][]arena.NodeID)
		var order []uint64
		for _, kid := range kids {
			shape, err := shapeHash(a, kid)
			if err != nil {
				return false, err
			}
			if _, seen := groups[shape]; !seen {
				order = append(order, shape)
			}
			groups[shape] = append(groups[shape], kid)
		}
		for _, shape := range order {
			group := groups[shape]
			if len(group) < 2 {
				continue
			}
			if err := mergeGroup(a, group); err != nil {
				return false, err
			}
			changed = true
		}
	}
	return changed, nil
}

// mergeGroup folds every node in group after the first into the
// first: unions their coordinate sets onto the survivor and removes
// the rest (their subtrees are shape-identical to the survivor's, so
// nothing of substance is lost).
func mergeGroup(a *arena.Arena, group []arena.NodeID) error {
	survivor := group[0]
	sn, ok := a.Get(survivor)
	if !ok {
		return nil
	}
	merged := sn.Coords().Clone()
	for _, dup := range group[1:] {
		dn, ok := a.Get(dup)
		if !ok {
			continue
		}
		merged.Extend(dn.Coords())
	}
	if err := a.SetCoords(survivor, merged); err != nil {
		return err
	}
	for _, dup := range group[1:] {
		if err := a.RemoveNode(dup); err != nil {
			return err
		}
	}
	return nil
}

// shapeHash hashes a node's descendant structure only, not its own
// coordinate set: two leaves (no children at all) always share the
// same shape hash, since there is nothing to distinguish their
// structure beyond the coordinates mergeCoordinates is about to fold.
func shapeHash(a *arena.Arena, id arena.NodeID) (uint64, error) {
	n, ok := a.Get(id)
	if !ok {
		return 0, nil
	}
	dims := n.ChildDims()
	if len(dims) == 0 {
		return 0, nil
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })

	var subHashes []uint64
	for _, d := range dims {
		for _, child := range n.Children(d) {
			h, err := a.StructuralHash(child)
			if err != nil {
				return 0, err
			}
			subHashes = append(subHashes, h)
		}
	}
	sort.Slice(subHashes, func(i, j int) bool { return subHashes[i] < subHashes[j] })

	var acc uint64 = 1469598103934665603 // FNV offset basis, plenty for a shape fingerprint
	for _, h := range subHashes {
		acc ^= h
		acc *= 1099511628211 // FNV prime
	}
	return acc, nil
}

// pruneEmpty removes leaves with an empty coordinate set and no
// children — dead weight such as a node that a set_split left with an
// empty leftover partition and nothing under it (§4.5 "empty-node
// pruning"). An empty node that still has children is kept. The root
// is never pruned.
func pruneEmpty(a *arena.Arena, id arena.NodeID) (bool, error) {
	n, ok := a.Get(id)
	if !ok {
		return false, nil
	}
	changed := false
	for _, d := range n.ChildDims() {
		for _, child := range append([]arena.NodeID(nil), n.Children(d)...) {
			cn, ok := a.Get(child)
			if !ok {
				continue
			}
			c, err := pruneEmpty(a, child)
			if err != nil {
				return false, err
			}
			changed = changed || c

			if cn.Coords().IsEmpty() && len(cn.AllChildren()) == 0 {
				if err := a.RemoveNode(child); err != nil {
					return false, err
				}
				changed = true
			}
		}
	}
	return changed, nil
}

// dedupByHash collapses any remaining siblings (along the same
// dimension) whose full structural hash — coordinates included — now
// matches exactly, a residue mergeCoordinates and pruneEmpty can leave
// behind across more than one fixed-point round (§4.5 "hash dedup").
func dedupByHash(a *arena.Arena, id arena.NodeID) (bool, error) {
	n, ok := a.Get(id)
	if !ok {
		return false, nil
	}
	changed := false
	for _, d := range n.ChildDims() {
		for _, child := range n.Children(d) {
			c, err := dedupByHash(a, child)
			if err != nil {
				return false, err
			}
			changed = changed || c
		}
	}

	for _, d := range n.ChildDims() {
		kids := n.Children(d)
		if len(kids) < 2 {
			continue
		}
		seen := make(map[uint64]arena.NodeID)
		var dupes []arena.NodeID
		for _, kid := range kids {
			h, err := a.StructuralHash(kid)
			if err != nil {
				return false, err
			}
			if _, ok := seen[h]; ok {
				dupes = append(dupes, kid)
				continue
			}
			seen[h] = kid
		}
		for _, dup := range dupes {
			if err := a.RemoveNode(dup); err != nil {
				return false, err
			}
			changed = true
		}
	}
	return changed, nil
}
