package parse

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
)

// LeftParse is a leftmost derivation of an input string with respect to a
// grammar, represented as the sequence of applied production numbers in
// derivation order. Production numbers are 1-based positions in the grammar's
// rule list.
type LeftParse struct {
	g       grammar.Grammar
	indices []int
}

// NewLeftParse creates a left parse over the given grammar from production
// numbers in derivation order.
func NewLeftParse(g grammar.Grammar, indices []int) LeftParse {
	ind := make([]int, len(indices))
	copy(ind, indices)
	return LeftParse{g: g, indices: ind}
}

// Indices returns the production numbers of the derivation in order.
func (lp LeftParse) Indices() []int {
	ind := make([]int, len(lp.indices))
	copy(ind, lp.indices)
	return ind
}

// Grammar returns the reference grammar of the parse.
func (lp LeftParse) Grammar() grammar.Grammar {
	return lp.g
}

// Tree generates the parse tree described by the derivation.
func (lp LeftParse) Tree() (*Tree, error) {
	result, next, err := lp.subtree(0)
	if err != nil {
		return nil, err
	}
	if result.Value != lp.g.Start() {
		return nil, cfgerrors.Parsef("left parse does not begin at the start symbol")
	}
	if next != len(lp.indices) {
		return nil, cfgerrors.Parsef("left parse has %d unused production numbers", len(lp.indices)-next)
	}
	return result, nil
}

func (lp LeftParse) subtree(i int) (*Tree, int, error) {
	if i >= len(lp.indices) {
		return nil, i, cfgerrors.Parsef("left parse ends before the derivation is complete")
	}
	n := lp.indices[i]
	if n < 1 || n > lp.g.NumProductions() {
		return nil, i, cfgerrors.Parsef("left parse refers to production %d which is not in the grammar", n)
	}
	rule := lp.g.Production(n)
	i++

	var children []*Tree
	for _, c := range rule.RHS {
		if c.IsNonterminal() {
			sub, next, err := lp.subtree(i)
			if err != nil {
				return nil, i, err
			}
			if sub.Value != c {
				return nil, i, cfgerrors.Parsef("left parse derives %s where %s is required", sub.Value, c)
			}
			children = append(children, sub)
			i = next
		} else {
			children = append(children, Leaf(c))
		}
	}
	return NewTree(rule.LHS, children...), i, nil
}

func (lp LeftParse) String() string {
	return parseString(lp.indices)
}

// RightParse is a rightmost derivation of an input string with respect to a
// grammar. The production numbers are stored in reduction order: the last
// element is the first production of the derivation, as produced by the
// bottom-up parsers. Production numbers are 1-based.
type RightParse struct {
	g       grammar.Grammar
	indices []int
}

// NewRightParse creates a right parse over the given grammar from production
// numbers in reduction order (the reverse of derivation order).
func NewRightParse(g grammar.Grammar, indices []int) RightParse {
	ind := make([]int, len(indices))
	copy(ind, indices)
	return RightParse{g: g, indices: ind}
}

// Indices returns the production numbers in reduction order.
func (rp RightParse) Indices() []int {
	ind := make([]int, len(rp.indices))
	copy(ind, rp.indices)
	return ind
}

// Reversed returns the production numbers in derivation order.
func (rp RightParse) Reversed() []int {
	ind := make([]int, len(rp.indices))
	for i := range rp.indices {
		ind[i] = rp.indices[len(rp.indices)-1-i]
	}
	return ind
}

// Grammar returns the reference grammar of the parse.
func (rp RightParse) Grammar() grammar.Grammar {
	return rp.g
}

// Tree generates the parse tree described by the derivation.
func (rp RightParse) Tree() (*Tree, error) {
	result, next, err := rp.subtree(len(rp.indices) - 1)
	if err != nil {
		return nil, err
	}
	if result.Value != rp.g.Start() {
		return nil, cfgerrors.Parsef("right parse does not begin at the start symbol")
	}
	if next != -1 {
		return nil, cfgerrors.Parsef("right parse has %d unused production numbers", next+1)
	}
	return result, nil
}

func (rp RightParse) subtree(i int) (*Tree, int, error) {
	if i < 0 {
		return nil, i, cfgerrors.Parsef("right parse ends before the derivation is complete")
	}
	n := rp.indices[i]
	if n < 1 || n > rp.g.NumProductions() {
		return nil, i, cfgerrors.Parsef("right parse refers to production %d which is not in the grammar", n)
	}
	rule := rp.g.Production(n)
	i--

	var children []*Tree
	for ci := len(rule.RHS) - 1; ci >= 0; ci-- {
		c := rule.RHS[ci]
		if c.IsNonterminal() {
			sub, next, err := rp.subtree(i)
			if err != nil {
				return nil, i, err
			}
			if sub.Value != c {
				return nil, i, cfgerrors.Parsef("right parse derives %s where %s is required", sub.Value, c)
			}
			children = append([]*Tree{sub}, children...)
			i = next
		} else {
			children = append([]*Tree{Leaf(c)}, children...)
		}
	}
	return NewTree(rule.LHS, children...), i, nil
}

func (rp RightParse) String() string {
	return parseString(rp.indices)
}

func parseString(indices []int) string {
	strs := make([]string, len(indices))
	for i := range indices {
		strs[i] = fmt.Sprintf("%d", indices[i])
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// checkInput verifies that every input symbol is a terminal declared in the
// grammar.
func checkInput(g grammar.Grammar, w []grammar.Symbol) error {
	for _, ai := range w {
		if !ai.IsTerminal() {
			return cfgerrors.Inputf("input symbol %s is not a terminal", ai)
		}
		if !g.IsTerminal(ai) {
			return cfgerrors.Inputf("input terminal %s is not in the grammar's alphabet", ai)
		}
	}
	return nil
}
