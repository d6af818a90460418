// Package qubed implements the Qube: a compressed, content-addressed
// prefix tree over multi-dimensional categorical coordinate sets,
// built for cataloguing meteorological data requests.
//
// A Qube is a tree whose nodes branch on a named dimension and carry a
// set of coordinate values along it; a root-to-leaf path is a request
// tuple, and the whole tree is the set of every tuple it contains,
// compressed by folding identical subtrees together. See the internal
// arena, coordset, unionengine, compressengine, and query packages for
// the primitives this type composes.
package qubed

import (
	"go.uber.org/zap"

	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/coordset"
)

// NodeID identifies one node of a Qube. It is only ever valid against
// the Qube it came from; using it against a different Qube is
// undefined (it will either resolve to an unrelated node or fail
// lookup, depending on slot reuse — never cross Qubes).
type NodeID = arena.NodeID

// Qube is a compressed, content-addressed prefix tree (§3).
type Qube struct {
	arena  *arena.Arena
	logger *zap.Logger
	cfg    config
}

// New creates an empty Qube: a single sentinel root with no children.
func New(opts ...Option) *Qube {
	cfg := newConfig(opts)
	return &Qube{arena: arena.New(), logger: cfg.logger, cfg: cfg}
}

func wrap(a *arena.Arena, cfg config) *Qube {
	return &Qube{arena: a, logger: cfg.logger, cfg: cfg}
}

// Root returns the sentinel root node's id.
func (q *Qube) Root() NodeID { return q.arena.Root() }

// CreateChild creates (or finds, by coordinate-set dedup) a child of
// parent along dimName, holding values parsed the usual way: each
// tried as int32, then float64, else kept as a string (§4.3).
func (q *Qube) CreateChild(parent NodeID, dimName string, values []string) (NodeID, error) {
	id, err := q.arena.CreateChild(parent, dimName, coordset.FromTokens(values))
	if err != nil {
		return arena.Invalid, err
	}
	return id, nil
}

// RemoveNode removes the subtree rooted at id (§4.3).
func (q *Qube) RemoveNode(id NodeID) error {
	return q.arena.RemoveNode(id)
}

// CopySubtree clones src's subtree rooted at srcID under dstParent
// (§4.3). src may be q itself or another Qube.
func (q *Qube) CopySubtree(src *Qube, srcID NodeID, dstParent NodeID) (NodeID, error) {
	return arena.CopySubtree(q.arena, src.arena, srcID, dstParent)
}

// StructuralHash returns id's structural hash (§4.2): two nodes hash
// equal iff their subtrees are structurally equivalent, regardless of
// which Qube (or which arena slot) they live in.
func (q *Qube) StructuralHash(id NodeID) (uint64, error) {
	return q.arena.StructuralHash(id)
}

// Coordinates returns id's coordinate set, or nil if id is invalid.
func (q *Qube) Coordinates(id NodeID) *coordset.Set {
	n, ok := q.arena.Get(id)
	if !ok {
		return nil
	}
	return n.Coords()
}

// Dimension returns id's dimension name, or "" if id is invalid or its
// token was never interned (should not happen for a live node).
func (q *Qube) Dimension(id NodeID) string {
	n, ok := q.arena.Get(id)
	if !ok {
		return ""
	}
	name, _ := q.arena.Interner().Resolve(n.Dim())
	return name
}

// Children returns id's direct children in creation order.
func (q *Qube) Children(id NodeID) []NodeID {
	n, ok := q.arena.Get(id)
	if !ok {
		return nil
	}
	return n.OrderedChildren()
}
