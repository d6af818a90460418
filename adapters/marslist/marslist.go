// Package marslist parses the MARS-list text convention into a Qube
// (§4.8): an indented, comma-separated listing where deeper lines
// narrow the request started by the line above them.
package marslist

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/scigolib/qubed"
)

// Parse reads a MARS-list document and returns the Qube it describes,
// compressed once at the end.
func Parse(r io.Reader, opts ...qubed.Option) (*qubed.Qube, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	q := qubed.New(opts...)
	root := q.Root()

	type frame struct {
		indent int
		node   qubed.NodeID
	}
	stack := []frame{{0, root}}
	prevIndent := 0
	var lastLineLastCreated *qubed.NodeID

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for lineNo, rawLine := range lines {
		raw := strings.ReplaceAll(rawLine, "\r", "")
		indent := leadingWhitespace(raw)
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			prevIndent = indent
			continue
		}

		var tokens []string
		for _, t := range strings.Split(trimmed, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tokens = append(tokens, t)
			}
		}
		if len(tokens) == 0 {
			prevIndent = indent
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		stackParent := root
		if len(stack) > 0 {
			stackParent = stack[len(stack)-1].node
		}

		var lastCreated *qubed.NodeID
		switch {
		case indent > prevIndent && lastLineLastCreated != nil:
			// Deeper than the previous line: extend its chain.
			parent := *lastLineLastCreated
			for _, tok := range tokens {
				child, err := createFromToken(q, tok, parent, lineNo)
				if err != nil {
					return nil, err
				}
				parent = child
			}
			lastCreated = &parent
		case indent > prevIndent:
			// Deeper, but nothing above to extend: fan out under the
			// nearest shallower stack parent instead.
			for _, tok := range tokens {
				child, err := createFromToken(q, tok, stackParent, lineNo)
				if err != nil {
					return nil, err
				}
				c := child
				lastCreated = &c
			}
		default:
			// Same depth or shallower: build a fresh chain under the
			// nearest shallower stack parent.
			current := stackParent
			for _, tok := range tokens {
				child, err := createFromToken(q, tok, current, lineNo)
				if err != nil {
					return nil, err
				}
				current = child
			}
			lastCreated = &current
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if lastCreated != nil {
			stack = append(stack, frame{indent, *lastCreated})
		}

		lastLineLastCreated = lastCreated
		prevIndent = indent
	}

	if err := q.Compress(); err != nil {
		return nil, err
	}
	return q, nil
}

// createFromToken creates one child under parent from a single
// comma-separated token: "key=v1/v2/..." splits values on "/", each
// parsed as int32, then float64, else kept as a string; a bare token
// with no "=" creates a child with empty coordinates.
func createFromToken(q *qubed.Qube, tok string, parent qubed.NodeID, lineNo int) (qubed.NodeID, error) {
	key, val, hasEq := strings.Cut(tok, "=")
	if !hasEq {
		return q.CreateChild(parent, tok, nil)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return qubed.NodeID{}, fmt.Errorf("marslist: line %d: %w", lineNo+1, qubed.ErrInvalidFormat)
	}
	if strings.Contains(val, "=") {
		return qubed.NodeID{}, fmt.Errorf("marslist: line %d: %w", lineNo+1, qubed.ErrInvalidFormat)
	}

	var vals []string
	for _, v := range strings.Split(val, "/") {
		v = strings.TrimSpace(v)
		if v != "" {
			vals = append(vals, v)
		}
	}
	return q.CreateChild(parent, key, vals)
}

func leadingWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
