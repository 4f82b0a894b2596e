package grammar

import (
	"github.com/ashware/chomsky/internal/util"
)

// LeftRecursive returns whether the grammar is left-recursive. Detection is
// by the simple first-symbol dependency graph: an edge lhs → X is added
// whenever X is the first right-side symbol of a rule and is a nonterminal,
// and the grammar is left-recursive when that graph has a cycle. Hidden left
// recursion reachable only through nullable prefixes is not detected.
func (g Grammar) LeftRecursive() bool {
	return g.detectCycle(func(rhs []Symbol) bool {
		return len(rhs) >= 1
	})
}

// Cyclic returns whether the grammar has a cycle, i.e. some A with A ⇒+ A.
// Detection is by the unit-rule dependency graph: an edge lhs → X is added
// whenever a rule's right side is exactly the nonterminal X. Hidden cycles
// through nullable siblings are not detected.
func (g Grammar) Cyclic() bool {
	return g.detectCycle(func(rhs []Symbol) bool {
		return len(rhs) == 1
	})
}

// detectCycle builds the derivation-dependency digraph over nonterminals,
// adding an edge from each rule's left side to its first right-side symbol
// when the given condition holds for the right side and the first symbol is a
// nonterminal, then checks the graph for a cycle.
func (g Grammar) detectCycle(condition func(rhs []Symbol) bool) bool {
	dg := util.NewDigraph[Symbol]()
	for _, rule := range g.productions {
		if condition(rule.RHS) && len(rule.RHS) > 0 && rule.RHS[0].IsNonterminal() {
			dg.AddEdge(rule.LHS, rule.RHS[0])
		}
	}
	return dg.Cyclic()
}
