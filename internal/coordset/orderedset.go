// Package coordset implements the typed coordinate sets a Qube node
// carries along its dimension: Empty, Integers, Floats, Strings and
// Mixed, each with the set operations spec'd for §4.1.
package coordset

import (
	"cmp"

	"github.com/google/btree"
)

// inlineCapacity is the number of elements an orderedSet keeps in a
// flat sorted slice before promoting to a btree.BTreeG ordered set.
// The promotion is one-way: once promoted, an orderedSet never
// demotes back to the inline representation.
const inlineCapacity = 16

const btreeDegree = 32

// orderedSet is the adaptive integer/string set representation spec'd
// in §4.1: "inline sorted array up to a small capacity, promoting to
// a balanced ordered set beyond it". The balanced ordered set is
// github.com/google/btree's generic BTreeG, the pack's own ordered-set
// library (erigon keeps state indices in btree.BTreeG throughout its
// commitment and state packages).
type orderedSet[T cmp.Ordered] struct {
	inline []T
	tree   *btree.BTreeG[T]
}

func newOrderedSet[T cmp.Ordered]() *orderedSet[T] {
	return &orderedSet[T]{}
}

func less[T cmp.Ordered](a, b T) bool { return a < b }

func (s *orderedSet[T]) promoted() bool { return s.tree != nil }

// Len returns the number of elements in the set.
func (s *orderedSet[T]) Len() int {
	if s.promoted() {
		return s.tree.Len()
	}
	return len(s.inline)
}

func (s *orderedSet[T]) contains(v T) bool {
	if s.promoted() {
		_, ok := s.tree.Get(v)
		return ok
	}
	for _, e := range s.inline {
		if e == v {
			return true
		}
		if e > v {
			break
		}
	}
	return false
}

// Append inserts v, keeping uniqueness and order. Returns false if v
// was already present (idempotent per §4.1).
func (s *orderedSet[T]) Append(v T) bool {
	if s.contains(v) {
		return false
	}
	if !s.promoted() && len(s.inline) >= inlineCapacity {
		s.promote()
	}
	if s.promoted() {
		s.tree.ReplaceOrInsert(v)
		return true
	}
	// insertion sort into the inline slice
	i := 0
	for i < len(s.inline) && s.inline[i] < v {
		i++
	}
	s.inline = append(s.inline, v)
	copy(s.inline[i+1:], s.inline[i:])
	s.inline[i] = v
	return true
}

func (s *orderedSet[T]) promote() {
	s.tree = btree.NewG[T](btreeDegree, less[T])
	for _, v := range s.inline {
		s.tree.ReplaceOrInsert(v)
	}
	s.inline = nil
}

// ToSlice returns the elements in ascending order.
func (s *orderedSet[T]) ToSlice() []T {
	if !s.promoted() {
		out := make([]T, len(s.inline))
		copy(out, s.inline)
		return out
	}
	out := make([]T, 0, s.tree.Len())
	s.tree.Ascend(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// intersectSlices performs the two-pointer sweep of §4.1: linear in
// the sum of input sizes, producing the three disjoint partitions.
func intersectSlices[T cmp.Ordered](a, b []T) (inter, onlyA, onlyB []T) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			onlyA = append(onlyA, a[i])
			i++
		case a[i] > b[j]:
			onlyB = append(onlyB, b[j])
			j++
		default:
			inter = append(inter, a[i])
			i++
			j++
		}
	}
	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)
	return
}

func fromSlice[T cmp.Ordered](vals []T) *orderedSet[T] {
	s := newOrderedSet[T]()
	for _, v := range vals {
		s.Append(v)
	}
	return s
}
