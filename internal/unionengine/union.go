// Package unionengine implements the recursive node_union / set_split
// algorithm of §4.4: merging two Qube trees dimension by dimension,
// splitting sibling coordinate sets on their overlap so the combined
// tree represents exactly the union of the two input tuple sets.
//
// Union mutates both input arenas — per §5, cross-Qube operations take
// the source by exclusive access because set_split reassigns the
// leftover partitions directly onto the original nodes' coordinate
// sets. Callers that need to keep an input untouched should clone it
// first.
package unionengine

import (
	"sort"

	"github.com/scigolib/qubed/internal/arena"
)

// Compressor is the narrow interface the union engine needs from the
// compression engine, satisfied by compressengine.Compress. Declared
// here rather than imported to avoid a import cycle; the root package
// wires the concrete implementation in.
type Compressor func(a *arena.Arena) error

// Union merges b's tuple set into a in place, then restores canonical
// form by invoking compress. b is left in a partially-consumed,
// unspecified state and should not be reused afterward.
func Union(a, b *arena.Arena, compress Compressor) error {
	if err := nodeUnion(a, b, a.Root(), b.Root()); err != nil {
		return err
	}
	if compress == nil {
		return nil
	}
	return compress(a)
}

// Many folds every Qube in bs into a in sequence, recompressing every
// batchSize folds (and once more at the end) instead of after each one
// (§4.4's union_many batching policy, default K=500 — see
// unionengine.DefaultBatchSize).
func Many(a *arena.Arena, bs []*arena.Arena, batchSize int, compress Compressor) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	since := 0
	for _, b := range bs {
		if err := nodeUnion(a, b, a.Root(), b.Root()); err != nil {
			return err
		}
		since++
		if since >= batchSize && compress != nil {
			if err := compress(a); err != nil {
				return err
			}
			since = 0
		}
	}
	if compress != nil {
		return compress(a)
	}
	return nil
}

// DefaultBatchSize is union_many's periodic-compression interval.
const DefaultBatchSize = 500

// nodeUnion merges the subtree rooted at b (node b) into the subtree
// rooted at a (node a), both already known to represent the same path
// from their respective roots. Dimensions are matched by name, not by
// token, since DimTokens are never comparable across arenas (§3).
func nodeUnion(a, b *arena.Arena, nodeA, nodeB arena.NodeID) error {
	an, ok := a.Get(nodeA)
	if !ok {
		return nil
	}
	bn, ok := b.Get(nodeB)
	if !ok {
		return nil
	}

	names := collectDimNames(a, an, b, bn)
	for _, name := range names {
		aKids := childrenByName(a, an, name)
		bKids := childrenByName(b, bn, name)
		if err := setSplit(a, b, nodeA, nodeB, name, aKids, bKids); err != nil {
			return err
		}
	}
	return nil
}

// collectDimNames returns the sorted union of dimension names branched
// on by an (in a) and bn (in b).
func collectDimNames(a *arena.Arena, an *arena.Node, b *arena.Arena, bn *arena.Node) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, d := range an.ChildDims() {
		if name, ok := a.Interner().Resolve(d); ok {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	for _, d := range bn.ChildDims() {
		if name, ok := b.Interner().Resolve(d); ok {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func childrenByName(a *arena.Arena, n *arena.Node, name string) []arena.NodeID {
	tok, ok := a.Interner().Lookup(name)
	if !ok {
		return nil
	}
	return n.Children(tok)
}

// setSplit implements §4.4's set_split for one dimension shared by
// parentA's and parentB's children: every (α, β) pair is intersected;
// the overlap becomes a new shared child (recursively unioned), and
// each side keeps only its leftover coordinates. When one side has no
// children along this dimension at all, the other side's subtrees are
// imported wholesale (a degenerate split against an empty set).
func setSplit(a, b *arena.Arena, parentA, parentB arena.NodeID, dim string, aKids, bKids []arena.NodeID) error {
	if len(aKids) == 0 {
		for _, beta := range bKids {
			if err := importWholesale(a, b, parentA, beta); err != nil {
				return err
			}
		}
		return nil
	}
	if len(bKids) == 0 {
		return nil
	}

	for _, alpha := range aKids {
		alphaNode, ok := a.Get(alpha)
		if !ok {
			continue
		}
		for _, beta := range bKids {
			betaNode, ok := b.Get(beta)
			if !ok {
				continue
			}

			inter, onlyA, onlyB, err := alphaNode.Coords().Intersect(betaNode.Coords())
			if err != nil {
				return err
			}

			// selfA/selfB: CreateChildWithInfo dedups against the
			// existing child whose coords already equal inter — when
			// alpha (or beta) is itself that match, it is serving as
			// the shared/merged node for this split, and its leftover
			// partition (which dedup having matched means is empty)
			// must not overwrite the coords it was just matched on.
			selfA, selfB := false, false
			if !inter.IsEmpty() {
				newA, createdA, err := a.CreateChildWithInfo(parentA, dim, inter.Clone())
				if err != nil {
					return err
				}
				newB, createdB, err := b.CreateChildWithInfo(parentB, dim, inter.Clone())
				if err != nil {
					return err
				}
				if createdA {
					if err := arena.CopyChildren(a, a, alpha, newA); err != nil {
						return err
					}
				}
				if createdB {
					if err := arena.CopyChildren(b, b, beta, newB); err != nil {
						return err
					}
				}
				if err := nodeUnion(a, b, newA, newB); err != nil {
					return err
				}
				selfA = newA == alpha
				selfB = newB == beta
			}

			if !selfA {
				if err := a.SetCoords(alpha, onlyA); err != nil {
					return err
				}
			}
			if !selfB {
				if err := b.SetCoords(beta, onlyB); err != nil {
					return err
				}
			}

			if !onlyB.IsEmpty() {
				newR, createdR, err := a.CreateChildWithInfo(parentA, dim, onlyB.Clone())
				if err != nil {
					return err
				}
				if createdR {
					if err := arena.CopyChildren(a, b, beta, newR); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// importWholesale clones beta's whole subtree (coordinates and
// descendants) into a new child of parentA, under whatever dimension
// beta itself branches on — used when a has no existing children to
// split against.
func importWholesale(a, b *arena.Arena, parentA arena.NodeID, beta arena.NodeID) error {
	if _, ok := b.Get(beta); !ok {
		return nil
	}
	_, err := arena.CopySubtree(a, b, beta, parentA)
	return err
}
