// Package serialize implements the ASCII and JSON round-trip formats
// of §6: a human-readable indented tree and a structurally equivalent
// JSON document, each recoverable back into an identical Qube tree.
package serialize

import (
	"strings"

	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/bufpool"
	"github.com/scigolib/qubed/internal/coordset"
	"github.com/scigolib/qubed/internal/qerr"
)

// rootLine is the literal first line of every ASCII tree.
const rootLine = "root"

// prefixChars is the alphabet an indentation prefix is built from;
// each depth level is exactly one 4-rune group drawn from it.
const prefixChars = "├└│─ "

// ToASCII renders a as a box-drawing tree in the style of the unix
// `tree` command: "root" on the first line, then one line per
// descendant, indented one 4-rune group per depth level, children in
// creation order. Each line after the first is "key=values", values
// being the coordinate set's canonical slash-joined form (empty for
// an empty set).
func ToASCII(a *arena.Arena) string {
	buf := bufpool.Get(256)
	buf = append(buf, rootLine...)
	buf = append(buf, '\n')
	buf = writeChildren(buf, a, a.Root(), "")
	out := string(buf)
	bufpool.Release(buf)
	return out
}

func writeChildren(buf []byte, a *arena.Arena, id arena.NodeID, prefix string) []byte {
	n, ok := a.Get(id)
	if !ok {
		return buf
	}
	kids := n.OrderedChildren()
	for i, child := range kids {
		cn, ok := a.Get(child)
		if !ok {
			continue
		}
		name, ok := a.Interner().Resolve(cn.Dim())
		if !ok {
			continue
		}
		last := i == len(kids)-1
		branch := "├── "
		next := prefix + "│   "
		if last {
			branch = "└── "
			next = prefix + "    "
		}
		buf = append(buf, prefix...)
		buf = append(buf, branch...)
		buf = append(buf, name...)
		buf = append(buf, '=')
		buf = append(buf, cn.Coords().String()...)
		buf = append(buf, '\n')
		buf = writeChildren(buf, a, child, next)
	}
	return buf
}

// FromASCII parses the tree ToASCII produces back into a fresh arena.
func FromASCII(s string) (*arena.Arena, error) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) == 0 || lines[0] != rootLine {
		return nil, qerr.Wrap("FromASCII", qerr.ErrInvalidFormat)
	}

	a := arena.New()
	stack := []arena.NodeID{a.Root()}
	prevDepth := 0

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth, rest, ok := countPrefix(line)
		if !ok || depth < 1 || depth > prevDepth+1 {
			return nil, qerr.Wrap("FromASCII", qerr.ErrInvalidFormat)
		}
		stack = stack[:depth]

		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, qerr.Wrap("FromASCII", qerr.ErrInvalidFormat)
		}
		name := rest[:eq]
		coords := coordset.ParseSlashJoined(rest[eq+1:])

		id, err := a.CreateChild(stack[len(stack)-1], name, coords)
		if err != nil {
			return nil, err
		}
		stack = append(stack, id)
		prevDepth = depth
	}
	return a, nil
}

// countPrefix consumes the leading run of prefixChars runes, requires
// its length to be a multiple of 4, and returns the quotient as depth
// plus the remaining "key=values" text.
func countPrefix(line string) (depth int, rest string, ok bool) {
	runes := []rune(line)
	i := 0
	for i < len(runes) && strings.ContainsRune(prefixChars, runes[i]) {
		i++
	}
	if i%4 != 0 {
		return 0, "", false
	}
	return i / 4, string(runes[i:]), true
}
