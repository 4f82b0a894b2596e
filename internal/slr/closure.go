package slr

import (
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/util"
)

// IsKernelItem returns whether an item is a kernel item of the given grammar:
// its dot is past the first position, or its production is a start
// production.
func IsKernelItem(item Item, g grammar.Grammar) bool {
	return item.DotPos() > 0 || item.Production().LHS == g.Start()
}

// Closure is a set of kernel items of a grammar together with the items
// implied by them: whenever the symbol after an item's dot is a nonterminal
// X, the closure contains X → ·γ for every X-production. Closures are the
// states of the LR(0) automaton.
type Closure struct {
	kernelItems []Item
	g           grammar.Grammar
}

// NewClosure creates a closure from its kernel items.
func NewClosure(kernelItems []Item, g grammar.Grammar) Closure {
	items := make([]Item, len(kernelItems))
	copy(items, kernelItems)
	return Closure{kernelItems: items, g: g}
}

// KernelItems returns the kernel items of the closure.
func (c Closure) KernelItems() []Item {
	items := make([]Item, len(c.kernelItems))
	copy(items, c.kernelItems)
	return items
}

// Empty returns whether the closure has no kernel items.
func (c Closure) Empty() bool {
	return len(c.kernelItems) == 0
}

// closureNonterminals returns the nonterminals whose productions belong to
// the closure: those after a dot in a kernel item, expanded transitively
// through nonterminals at the start of their rules.
func (c Closure) closureNonterminals() []grammar.Symbol {
	var result []grammar.Symbol
	seen := util.NewKeySet[grammar.Symbol]()

	for _, item := range c.kernelItems {
		if X, ok := item.AfterDot(); ok && X.IsNonterminal() && !seen.Has(X) {
			result = append(result, X)
			seen.Add(X)
		}
	}

	for i := 0; i < len(result); i++ {
		for _, p := range c.g.ProductionsFor(result[i]) {
			if len(p.RHS) > 0 && p.RHS[0].IsNonterminal() && !seen.Has(p.RHS[0]) {
				result = append(result, p.RHS[0])
				seen.Add(p.RHS[0])
			}
		}
	}

	return result
}

// ClosureItems enumerates the non-kernel items of the closure, in the order
// their nonterminals are discovered.
func (c Closure) ClosureItems() []Item {
	var items []Item
	for _, A := range c.closureNonterminals() {
		for _, p := range c.g.ProductionsFor(A) {
			items = append(items, NewItem(p, 0))
		}
	}
	return items
}

// Items enumerates all items of the closure, kernel items first.
func (c Closure) Items() []Item {
	return append(c.KernelItems(), c.ClosureItems()...)
}

// GotoKernelItems enumerates the kernel items of the closure reached from
// this one on the given symbol: every item with X after the dot, advanced.
func (c Closure) GotoKernelItems(X grammar.Symbol) []Item {
	var items []Item
	for _, item := range c.Items() {
		if after, ok := item.AfterDot(); ok && after == X {
			items = append(items, item.Advanced())
		}
	}
	return items
}

// Goto returns the closure this closure transitions to on the given symbol.
// The result is empty when there is no transition.
func (c Closure) Goto(X grammar.Symbol) Closure {
	return NewClosure(c.GotoKernelItems(X), c.g)
}

// GotoSymbols enumerates the symbols on which this closure has transitions to
// non-empty closures, in item order.
func (c Closure) GotoSymbols() []grammar.Symbol {
	var symbols []grammar.Symbol
	seen := util.NewKeySet[grammar.Symbol]()
	for _, item := range c.Items() {
		if X, ok := item.AfterDot(); ok && !seen.Has(X) {
			symbols = append(symbols, X)
			seen.Add(X)
		}
	}
	return symbols
}

// Equal returns whether the closure equals another Closure or *Closure, which
// holds when their kernel item sets are equal regardless of order.
func (c Closure) Equal(o any) bool {
	other, ok := o.(Closure)
	if !ok {
		otherPtr, ok := o.(*Closure)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	mine := util.NewSVSet[Item]()
	for _, item := range c.kernelItems {
		mine.Set(item.String(), item)
	}
	theirs := util.NewSVSet[Item]()
	for _, item := range other.kernelItems {
		theirs.Set(item.String(), item)
	}
	return mine.Equal(theirs)
}

// String lists all items of the closure, one per line.
func (c Closure) String() string {
	items := c.Items()
	strs := make([]string, len(items))
	for i := range items {
		strs[i] = items[i].String()
	}
	return strings.Join(strs, "\n")
}
