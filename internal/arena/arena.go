// Package arena implements the node model and arena ownership of §3:
// a stable-index slot map of nodes, referenced only by opaque
// NodeID handles, plus the structural hasher of §4.2 and the
// create/remove/copy primitives of §4.3.
package arena

import (
	"sync/atomic"

	"github.com/scigolib/qubed/internal/coordset"
	"github.com/scigolib/qubed/internal/qerr"
)

// NodeID is the sole externally visible handle to a node (§3, §9's
// "node references" design note). idx is the slot index; gen guards
// against a stale NodeID resolving to a slot that was freed and
// reallocated — slots are reused, identifiers never are (§3 lifecycle).
type NodeID struct {
	idx uint32
	gen uint32
}

// Invalid is the zero NodeID; never returned by a successful
// CreateChild/root lookup.
var Invalid = NodeID{}

// Node is one node of the Qube tree (§3).
type Node struct {
	dim        DimToken
	coords     *coordset.Set
	parent     NodeID
	hasOwner   bool // false only for the root
	children   map[DimToken][]NodeID
	childOrder []NodeID // creation order, spanning every dimension
	hash       atomic.Uint64 // 0 = invalid, per §4.2
}

// Dim returns the node's dimension token.
func (n *Node) Dim() DimToken { return n.dim }

// Coords returns the node's coordinate set.
func (n *Node) Coords() *coordset.Set { return n.coords }

// Parent returns the node's parent and whether it has one (false
// only for the root).
func (n *Node) Parent() (NodeID, bool) { return n.parent, n.hasOwner }

// ChildDims returns the dimension tokens the node branches on, in no
// particular order (a node may branch across several dimensions
// simultaneously — §9's open question on mixed-dimension branching).
func (n *Node) ChildDims() []DimToken {
	dims := make([]DimToken, 0, len(n.children))
	for d := range n.children {
		dims = append(dims, d)
	}
	return dims
}

// Children returns the ordered child list for dimension d (creation
// order), or nil if the node has no children along d.
func (n *Node) Children(d DimToken) []NodeID {
	return n.children[d]
}

// AllChildren returns every child id across all dimensions, in no
// particular order. Use OrderedChildren where creation order matters
// (serialization, the MARS-list adapter's chain building).
func (n *Node) AllChildren() []NodeID {
	var out []NodeID
	for _, ids := range n.children {
		out = append(out, ids...)
	}
	return out
}

// OrderedChildren returns every child id in creation order, spanning
// every dimension the node branches on — the sibling order the ASCII
// and JSON serializers round-trip on (§4.10).
func (n *Node) OrderedChildren() []NodeID {
	return n.childOrder
}

type slot struct {
	node  *Node
	gen   uint32
	alive bool
}

// Arena owns every node of one Qube; nodes are referenced only by
// NodeID (§3 ownership & lifecycle).
type Arena struct {
	slots    []slot
	free     []uint32
	interner *Interner
	root     NodeID
}

// New creates an arena containing only the sentinel root node: dim
// "root", empty coordinates, no parent (§3).
func New() *Arena {
	a := &Arena{interner: NewInterner()}
	root := &Node{dim: DimToken(0), coords: coordset.Empty(), children: make(map[DimToken][]NodeID)}
	a.root = a.alloc(root)
	return a
}

// Root returns the root node's id.
func (a *Arena) Root() NodeID { return a.root }

// Interner returns the arena's dimension-name interner.
func (a *Arena) Interner() *Interner { return a.interner }

func (a *Arena) alloc(n *Node) NodeID {
	if len(a.free) > 0 {
		idx := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.slots[idx].gen++
		a.slots[idx].node = n
		a.slots[idx].alive = true
		return NodeID{idx: idx, gen: a.slots[idx].gen}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{node: n, gen: 1, alive: true})
	return NodeID{idx: idx, gen: 1}
}

// Get resolves id to its node, or ok=false if id is stale or unknown.
func (a *Arena) Get(id NodeID) (*Node, bool) {
	if int(id.idx) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[id.idx]
	if !s.alive || s.gen != id.gen {
		return nil, false
	}
	return s.node, true
}

func (a *Arena) mustGet(op string, id NodeID) (*Node, error) {
	n, ok := a.Get(id)
	if !ok {
		return nil, qerr.Wrap(op, qerr.ErrInvalidParent)
	}
	return n, nil
}

// invalidate walks id and every ancestor, storing 0 into each node's
// cached hash (§4.2 invalidation, O(depth)).
func (a *Arena) invalidate(id NodeID) {
	for {
		n, ok := a.Get(id)
		if !ok {
			return
		}
		n.hash.Store(0)
		if !n.hasOwner {
			return
		}
		id = n.parent
	}
}

// CreateChild interns dimName, dedup-scans parent.children[dim] for
// an existing node with equal coords, and returns it if found —
// otherwise allocates a new node, appends it, and invalidates parent
// and ancestors (§4.3).
func (a *Arena) CreateChild(parent NodeID, dimName string, coords *coordset.Set) (NodeID, error) {
	id, _, err := a.CreateChildWithInfo(parent, dimName, coords)
	return id, err
}

// CreateChildWithInfo is CreateChild plus a created flag, true when no
// dedup match was found and a new node was actually allocated. The
// union engine needs this to know whether a freshly split-off node
// still needs its subtree cloned into it (§4.4).
func (a *Arena) CreateChildWithInfo(parent NodeID, dimName string, coords *coordset.Set) (NodeID, bool, error) {
	p, err := a.mustGet("CreateChild", parent)
	if err != nil {
		return Invalid, false, err
	}
	if coords == nil {
		coords = coordset.Empty()
	}
	tok := a.interner.Intern(dimName)

	for _, existingID := range p.children[tok] {
		existing, ok := a.Get(existingID)
		if ok && existing.coords.Equal(coords) {
			return existingID, false, nil
		}
	}

	child := &Node{dim: tok, coords: coords, parent: parent, hasOwner: true, children: make(map[DimToken][]NodeID)}
	id := a.alloc(child)
	p.children[tok] = append(p.children[tok], id)
	p.childOrder = append(p.childOrder, id)
	a.invalidate(parent)
	return id, true, nil
}

// SetCoords replaces id's coordinate set in place and invalidates its
// ancestor chain — used by the union engine to reassign the leftover
// partitions of a set_split (§4.4).
func (a *Arena) SetCoords(id NodeID, coords *coordset.Set) error {
	n, err := a.mustGet("SetCoords", id)
	if err != nil {
		return err
	}
	n.coords = coords
	a.invalidate(id)
	return nil
}

// RemoveNode recursively removes the subtree rooted at id (post-order
// descendant removal first), detaches it from its parent, and
// invalidates the parent's ancestor chain (§4.3).
func (a *Arena) RemoveNode(id NodeID) error {
	n, err := a.mustGet("RemoveNode", id)
	if err != nil {
		return err
	}
	for _, d := range n.ChildDims() {
		for _, child := range append([]NodeID(nil), n.children[d]...) {
			if err := a.RemoveNode(child); err != nil {
				return err
			}
		}
	}
	if n.hasOwner {
		parent, ok := a.Get(n.parent)
		if ok {
			siblings := parent.children[n.dim]
			for i, sid := range siblings {
				if sid == id {
					siblings = append(siblings[:i], siblings[i+1:]...)
					break
				}
			}
			if len(siblings) == 0 {
				delete(parent.children, n.dim)
			} else {
				parent.children[n.dim] = siblings
			}
			for i, sid := range parent.childOrder {
				if sid == id {
					parent.childOrder = append(parent.childOrder[:i], parent.childOrder[i+1:]...)
					break
				}
			}
		}
		a.invalidate(n.parent)
	}
	a.freeSlot(id)
	return nil
}

func (a *Arena) freeSlot(id NodeID) {
	if int(id.idx) >= len(a.slots) {
		return
	}
	a.slots[id.idx].alive = false
	a.slots[id.idx].node = nil
	a.free = append(a.free, id.idx)
}

// CopySubtree clones the subtree rooted at src (in srcArena) into a
// into dstParent's (in a) children, resolving dimension names through
// srcArena's interner and re-interning them in a. Coordinate sets are
// deep-cloned; CreateChild's dedup may still fold the copy into an
// existing equal sibling (§4.3).
func CopySubtree(a, srcArena *Arena, src, dstParent NodeID) (NodeID, error) {
	srcNode, err := srcArena.mustGet("CopySubtree", src)
	if err != nil {
		return Invalid, err
	}
	name, ok := srcArena.interner.Resolve(srcNode.dim)
	if !ok {
		return Invalid, qerr.Wrap("CopySubtree", qerr.ErrNotFound)
	}
	newID, err := a.CreateChild(dstParent, name, srcNode.coords.Clone())
	if err != nil {
		return Invalid, err
	}
	for _, childID := range srcNode.OrderedChildren() {
		if _, err := CopySubtree(a, srcArena, childID, newID); err != nil {
			return Invalid, err
		}
	}
	return newID, nil
}

// CopyChildren clones every child subtree of src (in srcArena) under
// dst (in a), without touching dst's own coordinates or identity —
// the half of CopySubtree the union engine needs when a split-off
// node already exists and only its descendants must be imported
// (§4.4 "clone its subtree under the newly created node").
func CopyChildren(a, srcArena *Arena, src, dst NodeID) error {
	srcNode, err := srcArena.mustGet("CopyChildren", src)
	if err != nil {
		return err
	}
	for _, childID := range srcNode.OrderedChildren() {
		if _, err := CopySubtree(a, srcArena, childID, dst); err != nil {
			return err
		}
	}
	return nil
}
