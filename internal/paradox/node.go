// Package paradox parses Paradox/Clausewitz script files into definition
// trees. The grammar covers assignments (key = value, key >= 10, key ?= x),
// nested blocks, plain arrays ({ a b c }), tagged arrays (hsv{ 0.1 0.2 0.3 })
// and bare values inside blocks (event lists).
package paradox

import (
	"fmt"
	"io"
	"strings"
)

// Kind classifies a parsed node.
type Kind int

const (
	// KindFile is the root node of a parsed file.
	KindFile Kind = iota
	// KindBlock is a nested { key = value ... } map.
	KindBlock
	// KindValue is a scalar assignment or a bare value inside a block.
	KindValue
	// KindArray is a { v1 v2 v3 } list.
	KindArray
	// KindTagged is a tag{ v1 v2 v3 } list such as hsv{ 0.5 0.5 0.5 }.
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBlock:
		return "block"
	case KindValue:
		return "value"
	case KindArray:
		return "array"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Node is one parsed definition. Children keep insertion order; duplicate
// keys are all kept (the engine's last-wins override happens later, during
// index aggregation).
type Node struct {
	Kind   Kind
	Name   string   // assignment key, or the literal text of a bare value
	Op     string   // assignment operator; empty for bare values
	Value  string   // scalar value
	Values []string // array / tagged-array elements
	Tag    string   // tagged-array tag (hsv, hex, rgb, ...)
	Line   int      // 1-based source line of the key token

	Children []*Node

	index map[string]int
}

func (n *Node) add(child *Node) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[child.Name] = len(n.Children)
	n.Children = append(n.Children, child)
}

// Child returns the last child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n.index == nil {
		return nil
	}
	i, ok := n.index[name]
	if !ok {
		return nil
	}
	return n.Children[i]
}

// Render returns a compact textual form of the node's value, matching how
// conflict reports display definitions.
func (n *Node) Render() string {
	switch n.Kind {
	case KindValue:
		return n.Value
	case KindArray:
		return "{ " + strings.Join(n.Values, " ") + " }"
	case KindTagged:
		return n.Tag + "{" + strings.Join(n.Values, ", ") + "}"
	default:
		return fmt.Sprintf("{ %d entries }", len(n.Children))
	}
}

// PrettyPrint writes an indented dump of the tree, for debugging.
func (n *Node) PrettyPrint(w io.Writer) {
	n.prettyPrint(w, 0)
}

func (n *Node) prettyPrint(w io.Writer, indent int) {
	pad := strings.Repeat("    ", indent)
	switch n.Kind {
	case KindFile, KindBlock:
		if n.Name != "" {
			fmt.Fprintf(w, "%s%s:\n", pad, n.Name)
		}
		for _, c := range n.Children {
			c.prettyPrint(w, indent+1)
		}
	default:
		fmt.Fprintf(w, "%s%s: %s\n", pad, n.Name, n.Render())
	}
}
