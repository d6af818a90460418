package arena

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/scigolib/qubed/internal/qerr"
)

// StructuralHash computes the deterministic, cache-coherent hash of
// §4.2: two nodes (possibly in different arenas) hash equal iff their
// subtrees are structurally equivalent — same dimension *name* (not
// token), same coordinate hash, same multiset of child subtrees.
//
// The recursion seeds a hasher with the node's dimension name, folds
// in coords.hash for leaves, or folds each child's finalized
// (coords.hash, structural_hash) pair, sorted, for internal nodes —
// the sort is what makes sibling order irrelevant. 0 is reserved for
// "invalid"; an accidental 0 result is remapped to 1 before caching.
func (a *Arena) StructuralHash(id NodeID) (uint64, error) {
	n, err := a.mustGet("StructuralHash", id)
	if err != nil {
		return 0, err
	}
	return a.structuralHash(n)
}

func (a *Arena) structuralHash(n *Node) (uint64, error) {
	if cached := n.hash.Load(); cached != 0 {
		return cached, nil
	}

	name, ok := a.interner.Resolve(n.dim)
	if !ok {
		return 0, qerr.Wrap("structuralHash", qerr.ErrNotFound)
	}

	h := xxhash.New()
	_, _ = h.WriteString(name)

	dims := n.ChildDims()
	if len(dims) == 0 {
		var buf [8]byte
		putUint64(buf[:], n.coords.Hash())
		_, _ = h.Write(buf[:])
	} else {
		sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
		var subHashes []uint64
		for _, d := range dims {
			for _, childID := range n.children[d] {
				child, ok := a.Get(childID)
				if !ok {
					return 0, qerr.Wrap("structuralHash", qerr.ErrInvalidParent)
				}
				childStruct, err := a.structuralHash(child)
				if err != nil {
					return 0, err
				}
				sub := xxhash.New()
				var buf [8]byte
				putUint64(buf[:], child.coords.Hash())
				_, _ = sub.Write(buf[:])
				putUint64(buf[:], childStruct)
				_, _ = sub.Write(buf[:])
				subHashes = append(subHashes, sub.Sum64())
			}
		}
		sort.Slice(subHashes, func(i, j int) bool { return subHashes[i] < subHashes[j] })
		for _, sh := range subHashes {
			var buf [8]byte
			putUint64(buf[:], sh)
			_, _ = h.Write(buf[:])
		}
	}

	result := h.Sum64()
	if result == 0 {
		result = 1
	}
	n.hash.Store(result)
	return result, nil
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * (7 - i)))
	}
}
