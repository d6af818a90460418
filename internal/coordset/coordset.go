package coordset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/scigolib/qubed/internal/qerr"
)

// Kind tags the variant a Set currently holds, per §3: Empty, Integers,
// Floats, Strings, Mixed.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindString
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Set is the tagged union over {Empty, Integers, Floats, Strings,
// Mixed} spec'd in §3/§4.1. A Mixed set carries non-nil/non-empty
// sub-sets in more than one of ints/floats/strs simultaneously.
type Set struct {
	kind   Kind
	ints   *orderedSet[int32]
	strs   *orderedSet[string]
	floats []float64
}

// Empty returns the distinguished zero coordinate set.
func Empty() *Set { return &Set{kind: KindEmpty} }

func (s *Set) Kind() Kind { return s.kind }

// IsEmpty reports whether the set holds no elements.
func (s *Set) IsEmpty() bool { return s.Len() == 0 }

// Len returns the total number of elements across sub-sets.
func (s *Set) Len() int {
	n := 0
	if s.ints != nil {
		n += s.ints.Len()
	}
	if s.strs != nil {
		n += s.strs.Len()
	}
	n += len(s.floats)
	return n
}

func (s *Set) recomputeKind() {
	kinds := 0
	if s.ints != nil && s.ints.Len() > 0 {
		kinds++
	}
	if s.strs != nil && s.strs.Len() > 0 {
		kinds++
	}
	if len(s.floats) > 0 {
		kinds++
	}
	switch {
	case kinds == 0:
		s.kind = KindEmpty
	case kinds > 1:
		s.kind = KindMixed
	case s.ints != nil && s.ints.Len() > 0:
		s.kind = KindInt
	case s.strs != nil && s.strs.Len() > 0:
		s.kind = KindString
	case len(s.floats) > 0:
		s.kind = KindFloat
	}
}

// AppendInt appends an integer value, promoting Empty to Integers (or
// to Mixed if the set already holds a different concrete kind).
func (s *Set) AppendInt(v int32) {
	if s.ints == nil {
		s.ints = newOrderedSet[int32]()
	}
	s.ints.Append(v)
	s.recomputeKind()
}

// AppendString appends a string value.
func (s *Set) AppendString(v string) {
	if s.strs == nil {
		s.strs = newOrderedSet[string]()
	}
	s.strs.Append(v)
	s.recomputeKind()
}

// AppendFloat appends a float value. Floats are append-only: no
// dedup, no ordering (§4.1 — "Floats: ordered list only").
func (s *Set) AppendFloat(v float64) {
	s.floats = append(s.floats, v)
	s.recomputeKind()
}

// Clone deep-copies the set (used by copy_subtree, §4.3).
func (s *Set) Clone() *Set {
	out := &Set{kind: s.kind}
	if s.ints != nil {
		out.ints = fromSlice(s.ints.ToSlice())
	}
	if s.strs != nil {
		out.strs = fromSlice(s.strs.ToSlice())
	}
	if len(s.floats) > 0 {
		out.floats = append([]float64(nil), s.floats...)
	}
	return out
}

// Equal reports structural equality: same variant, same content.
// Used for dedup-by-(dim,coords) at node creation (§4.3, I2).
func (s *Set) Equal(o *Set) bool {
	return s.kind == o.kind &&
		equalInts(s.intsSlice(), o.intsSlice()) &&
		equalStrings(s.strsSlice(), o.strsSlice()) &&
		equalFloatsOrdered(s.floats, o.floats)
}

func equalInts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloatsOrdered(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

func (s *Set) intsSlice() []int32 {
	if s.ints == nil {
		return nil
	}
	return s.ints.ToSlice()
}

func (s *Set) strsSlice() []string {
	if s.strs == nil {
		return nil
	}
	return s.strs.ToSlice()
}

// Extend unions other into s in place, promoting to Mixed if the
// variants differ (§4.1 extend).
func (s *Set) Extend(other *Set) {
	if other == nil {
		return
	}
	for _, v := range other.intsSlice() {
		s.AppendInt(v)
	}
	for _, v := range other.strsSlice() {
		s.AppendString(v)
	}
	for _, v := range other.floats {
		s.AppendFloat(v)
	}
}

// Intersect returns the three-way split {intersection, only_a,
// only_b} per §4.1. Returns ErrUnsupportedKindPair if either operand
// carries Float content (floats have no set operations, §4.1/§9).
func (s *Set) Intersect(o *Set) (inter, onlyA, onlyB *Set, err error) {
	if len(s.floats) > 0 || len(o.floats) > 0 {
		return nil, nil, nil, qerr.Wrap("coordset.Intersect", qerr.ErrUnsupportedKindPair)
	}

	inter, onlyA, onlyB = &Set{}, &Set{}, &Set{}

	ia, oa, ob := intersectSlices(s.intsSlice(), o.intsSlice())
	if len(ia) > 0 {
		inter.ints = fromSlice(ia)
	}
	if len(oa) > 0 {
		onlyA.ints = fromSlice(oa)
	}
	if len(ob) > 0 {
		onlyB.ints = fromSlice(ob)
	}

	is, os, ob2 := intersectSlices(s.strsSlice(), o.strsSlice())
	if len(is) > 0 {
		inter.strs = fromSlice(is)
	}
	if len(os) > 0 {
		onlyA.strs = fromSlice(os)
	}
	if len(ob2) > 0 {
		onlyB.strs = fromSlice(ob2)
	}

	inter.recomputeKind()
	onlyA.recomputeKind()
	onlyB.recomputeKind()
	return inter, onlyA, onlyB, nil
}

// Hash returns the deterministic hash of the set's variant tag and
// sorted element content (§3, §4.2). Floats hash by raw bit pattern
// in input order; the rest hash by ascending sorted content.
func (s *Set) Hash() uint64 {
	h := xxhash.New()
	s.writeHash(h)
	return h.Sum64()
}

func (s *Set) writeHash(h *xxhash.Digest) {
	_, _ = h.Write([]byte{byte(s.kind)})
	if ints := s.intsSlice(); len(ints) > 0 {
		_, _ = h.Write([]byte{byte(KindInt)})
		var buf [4]byte
		for _, v := range ints {
			buf[0], buf[1], buf[2], buf[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
			_, _ = h.Write(buf[:])
		}
	}
	if strs := s.strsSlice(); len(strs) > 0 {
		_, _ = h.Write([]byte{byte(KindString)})
		for _, v := range strs {
			var lbuf [8]byte
			n := len(v)
			for i := 0; i < 8; i++ {
				lbuf[i] = byte(n >> (8 * (7 - i)))
			}
			_, _ = h.Write(lbuf[:])
			_, _ = h.WriteString(v)
		}
	}
	if len(s.floats) > 0 {
		_, _ = h.Write([]byte{byte(KindFloat)})
		var buf [8]byte
		for _, v := range s.floats {
			bits := math.Float64bits(v)
			for i := 0; i < 8; i++ {
				buf[i] = byte(bits >> (8 * (7 - i)))
			}
			_, _ = h.Write(buf[:])
		}
	}
}

// String renders the canonical form: values joined by "/" in
// ascending order for Integer/String, input order for Float (§4.1,
// §6). Mixed sets render ints, then strings, then floats, each
// section separated by "/" as well — mirroring the single-kind join
// so a Mixed coordinate set still prints as one slash-joined list.
func (s *Set) String() string {
	var parts []string
	for _, v := range s.intsSlice() {
		parts = append(parts, strconv.FormatInt(int64(v), 10))
	}
	for _, v := range s.strsSlice() {
		parts = append(parts, v)
	}
	for _, v := range s.floats {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, "/")
}

// ParseSlashJoined parses the canonical "/"-joined form used by the
// ASCII and JSON serializers (§6): each token tries int32, then
// float64, else string, in the order encountered (so sibling order
// from the original set is preserved for floats, and dedup/sort is
// re-applied for ints/strings via Append).
func ParseSlashJoined(s string) *Set {
	out := &Set{}
	if s == "" {
		return out
	}
	for _, tok := range strings.Split(s, "/") {
		appendToken(out, tok)
	}
	return out
}

// FromString parses the pipe-separated token form named in §4.1
// ("from_string parses a|b|c"), distinct from the slash-joined
// canonical form used by the ASCII/JSON round trip.
func FromString(s string) *Set {
	out := &Set{}
	if s == "" {
		return out
	}
	for _, tok := range strings.Split(s, "|") {
		appendToken(out, tok)
	}
	return out
}

// FromTokens builds a set by appending each raw token in order, each
// tried as int32, then float64, else kept as a string — the same
// coercion the adapters and serializers use for a single value. A
// numeric reading is used only when it renders back to the same token.
func FromTokens(tokens []string) *Set {
	out := &Set{}
	for _, tok := range tokens {
		appendToken(out, tok)
	}
	return out
}

// appendToken keeps a numeric reading only when it renders back to the
// exact token, so "0001" stays the string "0001" rather than int 1.
func appendToken(s *Set, tok string) {
	if iv, err := strconv.ParseInt(tok, 10, 32); err == nil && strconv.FormatInt(iv, 10) == tok {
		s.AppendInt(int32(iv))
		return
	}
	if fv, err := strconv.ParseFloat(tok, 64); err == nil && strconv.FormatFloat(fv, 'g', -1, 64) == tok {
		s.AppendFloat(fv)
		return
	}
	s.AppendString(tok)
}

// SortUint64 sorts a slice of uint64 in place. Nothing in the module
// calls it; the structural hasher sorts its sub-hashes with sort.Slice.
func SortUint64(vals []uint64) {
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
}
