// Package parse contains the classic grammar parsing algorithms — the
// top-down and bottom-up backtrack configuration machines, the
// Cocke-Younger-Kasami table parser, and Earley's algorithm — along with the
// parse tree and derivation value types they produce.
package parse

import (
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
)

// Tree is an immutable n-ary parse tree over grammar symbols. Each node is
// labelled by a symbol and carries an ordered list of child trees.
type Tree struct {
	// Value is the symbol at this node.
	Value grammar.Symbol

	// Children is the ordered subtrees under this node. It is empty for
	// leaves.
	Children []*Tree
}

// NewTree creates a tree node with the given value and children.
func NewTree(value grammar.Symbol, children ...*Tree) *Tree {
	return &Tree{Value: value, Children: children}
}

// Leaf creates a childless tree node.
func Leaf(value grammar.Symbol) *Tree {
	return &Tree{Value: value}
}

// Equal returns whether the tree equals another Tree or *Tree with the exact
// same structure and symbols.
func (t Tree) Equal(o any) bool {
	other, ok := o.(Tree)
	if !ok {
		otherPtr, ok := o.(*Tree)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if t.Value != other.Value {
		return false
	}
	if len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// IterLeaves calls fn on each leaf value of the tree from left to right,
// stopping early if fn returns false.
func (t Tree) IterLeaves(fn func(leaf grammar.Symbol) bool) bool {
	if len(t.Children) == 0 {
		return fn(t.Value)
	}
	for _, c := range t.Children {
		if !c.IterLeaves(fn) {
			return false
		}
	}
	return true
}

// Leaves returns the leaf symbols of the tree from left to right.
func (t Tree) Leaves() []grammar.Symbol {
	var leaves []grammar.Symbol
	t.IterLeaves(func(leaf grammar.Symbol) bool {
		leaves = append(leaves, leaf)
		return true
	})
	return leaves
}

// String renders the tree on one line, with each node's children in
// parentheses after its symbol.
func (t Tree) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Tree) writeTo(sb *strings.Builder) {
	sb.WriteString(t.Value.String())
	if len(t.Children) > 0 {
		sb.WriteRune('(')
		for _, c := range t.Children {
			c.writeTo(sb)
		}
		sb.WriteRune(')')
	}
}
