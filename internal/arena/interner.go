package arena

// DimToken is a dimension name interned to a small integer, per §3.
// Tokens are write-once per Qube and are not comparable across
// Qubes — always resolve through the owning Interner before crossing
// a Qube boundary.
type DimToken uint16

// RootDim is the reserved dimension name of the sentinel root node.
const RootDim = "root"

// Interner interns dimension names to DimTokens, write-once per Qube.
// Ordering of tokens is arbitrary but total and stable within one
// Qube (§3).
type Interner struct {
	names []string
	index map[string]DimToken
}

// NewInterner creates an interner seeded with the reserved root
// dimension at token 0.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]DimToken)}
	in.Intern(RootDim)
	return in
}

// Intern returns the token for name, allocating a new one if name has
// not been seen before in this Qube.
func (in *Interner) Intern(name string) DimToken {
	if tok, ok := in.index[name]; ok {
		return tok
	}
	tok := DimToken(len(in.names))
	in.names = append(in.names, name)
	in.index[name] = tok
	return tok
}

// Resolve returns the dimension name for tok, and false if tok was
// never interned in this Qube (qerr.ErrNotFound at the call site).
func (in *Interner) Resolve(tok DimToken) (string, bool) {
	if int(tok) >= len(in.names) {
		return "", false
	}
	return in.names[tok], true
}

// Lookup returns the token for name without interning it, and false
// if name is not present.
func (in *Interner) Lookup(name string) (DimToken, bool) {
	tok, ok := in.index[name]
	return tok, ok
}
